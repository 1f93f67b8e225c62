package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/bassette/tsense/internal/common"
	"github.com/spf13/cobra"
)

const (
	defaultHealthTimeout  = 60 * time.Second
	defaultHealthInterval = 2 * time.Second
)

var HealthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check API readiness, optionally polling until it responds",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := NewRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		wait, _ := cmd.Flags().GetBool("wait")
		if !wait {
			if err := rt.Service.Health(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("API is healthy.")
			return nil
		}

		timeout, _ := cmd.Flags().GetDuration("timeout")
		interval, _ := cmd.Flags().GetDuration("interval")
		if timeout <= 0 {
			timeout = defaultHealthTimeout
		}
		if interval <= 0 {
			interval = defaultHealthInterval
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		logger := common.GetLogger().WithComponent("health")
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			err := rt.Service.Health(ctx)
			if err == nil {
				fmt.Println("API is healthy.")
				return nil
			}
			logger.Debug("API not ready yet", "error", err)
			select {
			case <-ctx.Done():
				return fmt.Errorf("API did not become healthy within %s: last error: %w", timeout, err)
			case <-ticker.C:
			}
		}
	},
}

func init() {
	HealthCmd.Flags().Bool("wait", false, "poll until the API responds or the timeout elapses")
	HealthCmd.Flags().Duration("timeout", defaultHealthTimeout, "total time to wait with --wait")
	HealthCmd.Flags().Duration("interval", defaultHealthInterval, "poll interval with --wait")
}
