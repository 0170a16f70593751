package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func jobsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "jobs [keywords...]",
		Short: "Search the job feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.requireAccess(ctx, "/jobs"); err != nil {
				return err
			}

			jobs, err := a.jobs.Search(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			if len(jobs) == 0 {
				fmt.Println("No jobs found")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SCORE\tSTATUS\tTITLE\tLINK")
			for _, j := range jobs {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", j.Score, j.Status, j.Title, j.Link)
			}
			return w.Flush()
		},
	}
}
