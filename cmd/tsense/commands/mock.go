package commands

import (
	"fmt"

	"github.com/bassette/tsense/internal/common"
	"github.com/bassette/tsense/internal/mockapi"
	"github.com/spf13/cobra"
)

var MockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Run an in-memory mock of the ThreatSense API for local development",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		secret, _ := cmd.Flags().GetString("secret")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		srv, err := mockapi.New(mockapi.Options{Secret: secret, Email: email, Password: password})
		if err != nil {
			return err
		}
		common.LogInfo("mock API listening", "addr", addr)
		fmt.Printf("Mock ThreatSense API on %s (login: %s)\n", addr, email)
		return srv.Run(addr)
	},
}

func init() {
	MockCmd.Flags().String("addr", "127.0.0.1:8000", "listen address")
	MockCmd.Flags().String("secret", "dev-secret", "HS256 signing secret for issued tokens")
	MockCmd.Flags().String("email", "admin@example.com", "seeded account email")
	MockCmd.Flags().String("password", "admin", "seeded account password")
}
