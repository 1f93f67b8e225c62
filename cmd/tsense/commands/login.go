package commands

import (
	"fmt"
	"time"

	"github.com/bassette/tsense/internal/auth"
	"github.com/bassette/tsense/internal/common"
	"github.com/bassette/tsense/internal/history"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the API and persist the session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := NewRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		email := viper.GetString("email")
		password := viper.GetString("password")
		if email == "" || password == "" {
			return fmt.Errorf("email and password are required (flags or TSENSE_EMAIL/TSENSE_PASSWORD)")
		}

		tok, err := rt.Service.Login(cmd.Context(), email, password)
		if err != nil {
			return err
		}
		auth.SetToken(sessionTokenName, tok.AccessToken)

		if rt.Store != nil {
			sess := history.Session{
				Endpoint:   rt.Service.Client.BaseURL(),
				Email:      email,
				Token:      tok.AccessToken,
				AcquiredAt: time.Now().UTC().Format(time.RFC3339),
			}
			if err := rt.Store.SaveSession(sess); err != nil {
				common.LogWarn("failed to persist session", "error", err)
			}
		}

		common.LogInfo("login succeeded", "email", email, "endpoint", rt.Service.Client.BaseURL())
		fmt.Println("Logged in.")
		return nil
	},
}

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop the persisted session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := NewRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		auth.ClearTokens()
		if rt.Store != nil {
			if err := rt.Store.DeleteSession(""); err != nil {
				return err
			}
		}
		fmt.Println("Logged out.")
		return nil
	},
}
