// ABOUTME: jobs subcommand: shows the history of background jobs finished in earlier sessions
// ABOUTME: Reads the JSON-lines history file the job manager appends to

package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mauromedda/tfm/internal/config"
	"github.com/mauromedda/tfm/internal/jobs"
)

func newJobsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Inspect background jobs",
	}
	cmd.AddCommand(newJobsHistoryCmd())
	return cmd
}

func newJobsHistoryCmd() *cobra.Command {
	var limit int
	var verbose bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show finished jobs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := jobs.History(config.JobHistoryFile(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No job history.")
				return nil
			}
			for _, r := range records {
				fmt.Fprintf(out, "#%d %-8s exit=%d %8s  %s  %s\n",
					r.ID, r.Status, r.ExitCode,
					r.Duration().Round(time.Millisecond),
					humanize.Time(r.Started()), r.Name)
				if verbose {
					fmt.Fprintf(out, "    $ %s  (in %s)\n", r.Command, r.Dir)
					for _, line := range r.Tail {
						fmt.Fprintf(out, "    %s\n", line)
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of jobs to show (0 for all)")
	cmd.Flags().BoolVarP(&verbose, "long", "l", false, "Include command and output tail")
	return cmd
}
