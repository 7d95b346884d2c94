package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/vanam-labs/plantation-cli/internal/model"
	"github.com/vanam-labs/plantation-cli/internal/store"
)

var runsFlags struct {
	status string
	limit  int
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect recorded analysis runs",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := initApp(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		runs, err := env.Store.ListRuns(ctx, store.RunFilter{
			Status: model.RunStatus(runsFlags.status),
			Limit:  runsFlags.limit,
		})
		if err != nil {
			return err
		}

		if len(runs) == 0 {
			cmd.Println("No runs recorded.")
			return nil
		}
		for _, r := range runs {
			points := 0
			if r.Result != nil {
				points = len(r.Result.Points)
			}
			cmd.Printf("%s  %-8s  %s  lat=%.4f lon=%.4f  points=%d\n",
				r.ID, r.Status, r.CreatedAt.Format("2006-01-02 15:04:05"),
				r.Request.Latitude, r.Request.Longitude, points)
		}
		return nil
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a run as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := initApp(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		run, err := env.Store.GetRun(ctx, args[0])
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(run, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(out))
		return nil
	},
}

func init() {
	runsListCmd.Flags().StringVar(&runsFlags.status, "status", "", "filter by status (queued, complete, failed)")
	runsListCmd.Flags().IntVar(&runsFlags.limit, "limit", 20, "maximum runs to list")
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}
