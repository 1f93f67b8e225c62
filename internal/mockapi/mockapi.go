// Package mockapi hosts an in-process stand-in for the ThreatSense backend:
// the real HTTP contract (login, assets, scans, findings) over in-memory
// state, with HS256 bearer tokens. It backs integration tests and the
// `tsense mock` development command. It never runs real scans; launched scans
// walk the queued/running/done lifecycle one step per status read.
package mockapi

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bassette/tsense/internal/api"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Options configures the mock server.
type Options struct {
	// Secret signs issued tokens. Required.
	Secret string
	// Email/Password form the single seeded account.
	Email    string
	Password string
	// TokenTTL defaults to one hour.
	TokenTTL time.Duration
}

// Server holds the mock state. All maps and slices are guarded by mu; gin
// handlers run concurrently.
type Server struct {
	opts   Options
	engine *gin.Engine

	mu       sync.Mutex
	nextID   int
	assets   []api.Asset
	scans    []api.ScanRun
	findings []api.Finding
}

const tenantID = "tenant-demo"

// New builds a mock server. The seeded account defaults to
// admin@example.com / admin when Email/Password are empty.
func New(opts Options) (*Server, error) {
	if strings.TrimSpace(opts.Secret) == "" {
		return nil, fmt.Errorf("mockapi: secret is required")
	}
	if opts.Email == "" {
		opts.Email = "admin@example.com"
	}
	if opts.Password == "" {
		opts.Password = "admin"
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = time.Hour
	}

	gin.SetMode(gin.ReleaseMode)
	s := &Server{opts: opts, nextID: 1}
	e := gin.New()
	e.Use(gin.Recovery())

	e.GET("/health", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	e.POST("/auth/login", s.handleLogin)

	protected := e.Group("/", s.bearerAuth())
	protected.GET("/assets", s.handleListAssets)
	protected.POST("/assets", s.handleCreateAsset)
	protected.GET("/scans", s.handleListScans)
	protected.POST("/scans", s.handleLaunchScan)
	protected.GET("/scans/:id", s.handleGetScan)
	protected.GET("/findings", s.handleListFindings)

	s.engine = e
	return s, nil
}

// Handler exposes the underlying engine for httptest servers.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves the mock API on addr until the process exits.
func (s *Server) Run(addr string) error { return s.engine.Run(addr) }

func (s *Server) issueToken(email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":    email,
		"tenant": tenantID,
		"iat":    now.Unix(),
		"exp":    now.Add(s.opts.TokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.opts.Secret))
}

func (s *Server) bearerAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(h, prefix) {
			c.String(http.StatusUnauthorized, "unauthorized")
			c.Abort()
			return
		}
		tok, err := jwt.Parse(strings.TrimPrefix(h, prefix), func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(s.opts.Secret), nil
		})
		if err != nil || !tok.Valid {
			c.String(http.StatusUnauthorized, "unauthorized")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) handleLogin(c *gin.Context) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.String(http.StatusBadRequest, "invalid login payload")
		return
	}
	if creds.Email != s.opts.Email || creds.Password != s.opts.Password {
		c.String(http.StatusUnauthorized, "invalid credentials")
		return
	}
	tok, err := s.issueToken(creds.Email)
	if err != nil {
		c.String(http.StatusInternalServerError, "token issuance failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": tok, "token_type": "bearer"})
}

func (s *Server) handleListAssets(c *gin.Context) {
	s.mu.Lock()
	out := make([]api.Asset, len(s.assets))
	copy(out, s.assets)
	s.mu.Unlock()
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleCreateAsset(c *gin.Context) {
	var in struct {
		Kind  string `json:"kind"`
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Value) == "" {
		c.String(http.StatusBadRequest, "kind and value are required")
		return
	}
	s.mu.Lock()
	a := api.Asset{
		ID:       fmt.Sprintf("asset-%d", s.nextID),
		TenantID: tenantID,
		Kind:     in.Kind,
		Value:    in.Value,
	}
	s.nextID++
	s.assets = append(s.assets, a)
	s.mu.Unlock()
	c.JSON(http.StatusOK, a)
}

func (s *Server) handleListScans(c *gin.Context) {
	s.mu.Lock()
	out := make([]api.ScanRun, len(s.scans))
	copy(out, s.scans)
	s.mu.Unlock()
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleLaunchScan(c *gin.Context) {
	var req api.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "invalid scan payload")
		return
	}
	if !api.IsKnownPlugin(req.Plugin) {
		c.String(http.StatusBadRequest, fmt.Sprintf("unknown plugin: %s", req.Plugin))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var assetOK bool
	for _, a := range s.assets {
		if a.ID == req.AssetID {
			assetOK = true
			break
		}
	}
	if !assetOK {
		c.String(http.StatusNotFound, "asset not found")
		return
	}
	scan := api.ScanRun{
		ID:               fmt.Sprintf("scan-%d", s.nextID),
		TenantID:         tenantID,
		AssetID:          req.AssetID,
		ScanType:         req.ScanType,
		Status:           "queued",
		Plugin:           req.Plugin,
		RequiresApproval: req.RequiresApproval,
	}
	s.nextID++
	s.scans = append(s.scans, scan)
	c.JSON(http.StatusOK, scan)
}

func (s *Server) handleGetScan(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.scans {
		if s.scans[i].ID != id {
			continue
		}
		s.advanceScan(&s.scans[i])
		c.JSON(http.StatusOK, s.scans[i])
		return
	}
	c.String(http.StatusNotFound, "scan not found")
}

// advanceScan walks a scan one lifecycle step per observation so polling
// clients see queued, then running, then done with a synthesized finding.
// Caller must hold mu.
func (s *Server) advanceScan(scan *api.ScanRun) {
	now := time.Now().UTC().Format(time.RFC3339)
	switch scan.Status {
	case "queued":
		scan.Status = "running"
		scan.StartedAt = &now
	case "running":
		scan.Status = "done"
		scan.FinishedAt = &now
		f := api.Finding{
			ID:          fmt.Sprintf("finding-%d", s.nextID),
			ScanRunID:   scan.ID,
			AssetID:     scan.AssetID,
			Title:       "Example exposure detected",
			Severity:    "low",
			Category:    "general",
			Evidence:    fmt.Sprintf("synthesized by %s", scan.Plugin),
			Remediation: "Review the reported surface",
		}
		s.nextID++
		s.findings = append(s.findings, f)
	}
}

func (s *Server) handleListFindings(c *gin.Context) {
	scanID := c.Query("scan_id")
	s.mu.Lock()
	out := make([]api.Finding, 0)
	for _, f := range s.findings {
		if scanID == "" || f.ScanRunID == scanID {
			out = append(out, f)
		}
	}
	s.mu.Unlock()
	c.JSON(http.StatusOK, out)
}
