package main

import (
	"os"
	"path/filepath"

	"github.com/bassette/tsense/cmd/tsense/commands"
	"github.com/bassette/tsense/internal/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "tsense",
	Short: "Command-line client for the ThreatSense security-scan API",
	Long: "tsense talks to a ThreatSense deployment: authenticate, manage assets,\n" +
		"launch scans and read findings. Configure the endpoint via --endpoint,\n" +
		"TSENSE_ENDPOINT or a config file.",
	SilenceUsage: true,
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tsense", "config.yaml")
}

func init() {
	// Defaults
	v := viper.GetViper()
	v.SetDefault("config", defaultConfigPath())
	v.SetDefault("endpoint", "")
	v.SetDefault("token", "")
	v.SetDefault("query", "")
	v.SetDefault("email", "")
	v.SetDefault("password", "")

	// Environment variables support: TSENSE_ENDPOINT, TSENSE_TOKEN, ...
	v.SetEnvPrefix("TSENSE")
	v.AutomaticEnv()

	// Bind flags via Cobra and then bind to Viper
	rootCmd.PersistentFlags().String("config", v.GetString("config"), "path to a config yaml")
	rootCmd.PersistentFlags().String("endpoint", v.GetString("endpoint"), "API base URL (default http://localhost:8000)")
	rootCmd.PersistentFlags().String("token", v.GetString("token"), "bearer token, bypassing the stored session")
	rootCmd.PersistentFlags().String("query", v.GetString("query"), "gjson path applied to JSON output")
	commands.LoginCmd.Flags().String("email", v.GetString("email"), "account email")
	commands.LoginCmd.Flags().String("password", v.GetString("password"), "account password")

	_ = v.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = v.BindPFlag("endpoint", rootCmd.PersistentFlags().Lookup("endpoint"))
	_ = v.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))
	_ = v.BindPFlag("query", rootCmd.PersistentFlags().Lookup("query"))
	_ = v.BindPFlag("email", commands.LoginCmd.Flags().Lookup("email"))
	_ = v.BindPFlag("password", commands.LoginCmd.Flags().Lookup("password"))

	rootCmd.AddCommand(commands.LoginCmd)
	rootCmd.AddCommand(commands.LogoutCmd)
	rootCmd.AddCommand(commands.WhoamiCmd)
	rootCmd.AddCommand(commands.AssetsCmd)
	rootCmd.AddCommand(commands.ScansCmd)
	rootCmd.AddCommand(commands.FindingsCmd)
	rootCmd.AddCommand(commands.HealthCmd)
	rootCmd.AddCommand(commands.MockCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		common.LogError("command execution failed", err)
		os.Exit(1)
	}
}
