package commands

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
)

// sessionInfo is the whoami output shape.
type sessionInfo struct {
	Endpoint string `json:"endpoint"`
	Subject  string `json:"subject,omitempty"`
	Tenant   string `json:"tenant,omitempty"`
	Expires  string `json:"expires,omitempty"`
	Expired  bool   `json:"expired"`
}

var WhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session and its token claims",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := NewRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		cred := rt.Service.Credential
		if cred == "" {
			return fmt.Errorf("no session; run `tsense login` first")
		}

		info := sessionInfo{Endpoint: rt.Service.Client.BaseURL()}

		// Claims are read without signature verification: the CLI holds the
		// token but not the server's signing secret.
		parser := jwt.NewParser()
		claims := jwt.MapClaims{}
		if _, _, err := parser.ParseUnverified(cred, claims); err == nil {
			if sub, _ := claims["sub"].(string); sub != "" {
				info.Subject = sub
			}
			if tenant, _ := claims["tenant"].(string); tenant != "" {
				info.Tenant = tenant
			}
			if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
				info.Expires = exp.UTC().Format(time.RFC3339)
				info.Expired = exp.Before(time.Now())
			}
		}
		return printResult(info)
	},
}
