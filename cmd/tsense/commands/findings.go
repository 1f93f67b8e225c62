package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var FindingsCmd = &cobra.Command{
	Use:   "findings",
	Short: "List findings produced by a scan",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := NewRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		scanID, _ := cmd.Flags().GetString("scan")
		if scanID == "" {
			return fmt.Errorf("--scan is required")
		}
		findings, err := rt.Service.ListFindings(cmd.Context(), scanID)
		if err != nil {
			return err
		}
		return printResult(findings)
	},
}

func init() {
	FindingsCmd.Flags().String("scan", "", "scan run id")
}
