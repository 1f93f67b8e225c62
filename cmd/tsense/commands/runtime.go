package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/bassette/tsense/cmd/tsense/config"
	"github.com/bassette/tsense/internal/api"
	"github.com/bassette/tsense/internal/auth"
	"github.com/bassette/tsense/internal/common"
	"github.com/bassette/tsense/internal/history"
	"github.com/spf13/viper"
	"github.com/tidwall/gjson"
)

// sessionTokenName is the logical name the CLI stores its login token under.
const sessionTokenName = "session"

// Runtime carries everything a command needs: resolved config, the API
// service and the (possibly nil) history store.
type Runtime struct {
	Doc     *config.Doc
	Service *api.Service
	Store   *history.Store
}

// Close releases the history store if one was opened.
func (r *Runtime) Close() {
	if r.Store != nil {
		_ = r.Store.Close()
	}
}

// NewRuntime loads config, applies logging, opens the history store and
// resolves a credential for the service. Credential precedence: TSENSE_TOKEN
// env (via viper), the in-memory token store, a configured auth provider,
// then the persisted session.
func NewRuntime() (*Runtime, error) {
	v := viper.GetViper()
	doc, err := config.Load(v, v.GetString("config"))
	if err != nil {
		return nil, err
	}
	if e := strings.TrimSpace(v.GetString("endpoint")); e != "" {
		doc.Endpoint = e
	}
	doc.ApplyLogging()

	store, err := doc.OpenHistory()
	if err != nil {
		return nil, err
	}

	cred := resolveCredential(v, doc, store)
	rt := &Runtime{
		Doc:     doc,
		Service: api.New(doc.NewClient(), cred),
		Store:   store,
	}
	return rt, nil
}

func resolveCredential(v *viper.Viper, doc *config.Doc, store *history.Store) string {
	if tok := strings.TrimSpace(v.GetString("token")); tok != "" {
		return tok
	}
	if tok, ok := auth.GetToken(sessionTokenName); ok {
		return tok
	}
	logger := common.GetLogger().WithComponent("auth")
	for _, ac := range doc.Auth {
		name := ac.Name
		if name == "" {
			name = sessionTokenName
		}
		tok, err := auth.AcquireWithName(context.Background(), ac.Type, name, ac.Config)
		if err != nil {
			logger.Warn("credential provider failed", "type", ac.Type, "error", err)
			continue
		}
		if tok != "" {
			return tok
		}
	}
	if store != nil {
		if sess, err := store.LoadSession(""); err == nil && sess != nil {
			return sess.Token
		}
	}
	return ""
}

// printResult renders v as indented JSON on stdout, applying the global
// --query gjson path when set.
func printResult(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if q := strings.TrimSpace(viper.GetString("query")); q != "" {
		res := gjson.GetBytes(b, q)
		if !res.Exists() {
			return fmt.Errorf("query %q matched nothing", q)
		}
		fmt.Fprintln(os.Stdout, res.String())
		return nil
	}
	fmt.Fprintln(os.Stdout, string(b))
	return nil
}
