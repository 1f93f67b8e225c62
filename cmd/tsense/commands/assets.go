package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var AssetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Manage attack-surface assets",
}

var assetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the tenant's assets",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := NewRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		assets, err := rt.Service.ListAssets(cmd.Context())
		if err != nil {
			return err
		}
		return printResult(assets)
	},
}

var assetsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a new asset",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := NewRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		kind, _ := cmd.Flags().GetString("kind")
		value, _ := cmd.Flags().GetString("value")
		if value == "" {
			return fmt.Errorf("--value is required")
		}
		asset, err := rt.Service.CreateAsset(cmd.Context(), kind, value)
		if err != nil {
			return err
		}
		return printResult(asset)
	},
}

func init() {
	assetsAddCmd.Flags().String("kind", "domain", "asset kind: domain, ip, url or log_source")
	assetsAddCmd.Flags().String("value", "", "asset value, e.g. example.com")
	AssetsCmd.AddCommand(assetsListCmd)
	AssetsCmd.AddCommand(assetsAddCmd)
}
