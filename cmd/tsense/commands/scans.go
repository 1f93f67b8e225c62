package commands

import (
	"fmt"
	"strings"

	"github.com/bassette/tsense/internal/api"
	"github.com/bassette/tsense/internal/common"
	"github.com/bassette/tsense/internal/history"
	"github.com/bassette/tsense/internal/scanspec"
	"github.com/spf13/cobra"
)

var ScansCmd = &cobra.Command{
	Use:   "scans",
	Short: "List, inspect and launch scans",
}

var scansListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the tenant's scan runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := NewRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		scans, err := rt.Service.ListScans(cmd.Context())
		if err != nil {
			return err
		}
		return printResult(scans)
	},
}

var scansGetCmd = &cobra.Command{
	Use:   "get <scan-id>",
	Short: "Show a single scan run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := NewRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		scan, err := rt.Service.GetScan(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printResult(scan)
	},
}

var scansLaunchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Queue a scan for an asset",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := NewRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		req, err := launchRequestFromFlags(cmd)
		if err != nil {
			return err
		}

		scan, err := rt.Service.LaunchScan(cmd.Context(), req)
		if err != nil {
			return err
		}

		if rt.Store != nil {
			rec := history.Launch{
				ScanID:     scan.ID,
				AssetID:    scan.AssetID,
				Plugin:     scan.Plugin,
				ScanType:   scan.ScanType,
				StatusCode: 200,
			}
			if err := rt.Store.RecordLaunch(rec); err != nil {
				common.LogWarn("failed to record launch", "error", err)
			}
		}
		return printResult(scan)
	},
}

// launchRequestFromFlags builds the launch payload from -f (YAML spec) or the
// individual flags. Flags override file values so a spec can be a template.
func launchRequestFromFlags(cmd *cobra.Command) (api.ScanRequest, error) {
	var req api.ScanRequest

	if file, _ := cmd.Flags().GetString("file"); file != "" {
		var spec scanspec.Spec
		if err := spec.LoadFromFile(file); err != nil {
			return req, err
		}
		if err := spec.Validate(); err != nil {
			return req, err
		}
		req = spec.ToRequest()
	}

	if v, _ := cmd.Flags().GetString("asset"); v != "" {
		req.AssetID = v
	}
	if v, _ := cmd.Flags().GetString("type"); v != "" {
		req.ScanType = v
	}
	if v, _ := cmd.Flags().GetString("plugin"); v != "" {
		req.Plugin = v
	}
	if cmd.Flags().Changed("approve") {
		v, _ := cmd.Flags().GetBool("approve")
		req.RequiresApproval = v
	}
	params, _ := cmd.Flags().GetStringArray("param")
	for _, p := range params {
		k, v, found := strings.Cut(p, "=")
		if !found || k == "" {
			return req, fmt.Errorf("invalid --param %q, expected key=value", p)
		}
		if req.Parameters == nil {
			req.Parameters = map[string]any{}
		}
		req.Parameters[k] = v
	}

	if req.AssetID == "" {
		return req, fmt.Errorf("an asset is required (--asset or -f spec)")
	}
	if req.Plugin == "" {
		return req, fmt.Errorf("a plugin is required (--plugin or -f spec); known: %s", strings.Join(api.KnownPlugins, ", "))
	}
	return req, nil
}

var scansHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show locally recorded scan launches",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := NewRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		if rt.Store == nil {
			return fmt.Errorf("history store is disabled")
		}
		limit, _ := cmd.Flags().GetInt("limit")
		launches, err := rt.Store.ListLaunches(limit)
		if err != nil {
			return err
		}
		return printResult(launches)
	},
}

func init() {
	scansLaunchCmd.Flags().StringP("file", "f", "", "YAML scan spec file")
	scansLaunchCmd.Flags().String("asset", "", "asset id to scan")
	scansLaunchCmd.Flags().String("type", "", "scan type, e.g. passive or active")
	scansLaunchCmd.Flags().String("plugin", "", "scan plugin: "+strings.Join(api.KnownPlugins, ", "))
	scansLaunchCmd.Flags().Bool("approve", false, "mark the scan as approved for execution")
	scansLaunchCmd.Flags().StringArray("param", nil, "plugin parameter key=value (repeatable)")
	scansHistoryCmd.Flags().Int("limit", 20, "maximum entries to show (0 = all)")

	ScansCmd.AddCommand(scansListCmd)
	ScansCmd.AddCommand(scansGetCmd)
	ScansCmd.AddCommand(scansLaunchCmd)
	ScansCmd.AddCommand(scansHistoryCmd)
}
