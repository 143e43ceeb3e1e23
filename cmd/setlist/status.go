package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

type statusReport struct {
	State               string  `json:"state"`
	Label               string  `json:"label"`
	API                 string  `json:"api"`
	CheckedAt           string  `json:"checked_at,omitempty"`
	Error               string  `json:"error,omitempty"`
	ConsecutiveFailures int     `json:"consecutive_failures"`
	PendingBands        int     `json:"pending_bands"`
	PendingReviews      int     `json:"pending_reviews"`
	LatencyMillis       float64 `json:"latency_ms"`
}

func (c *cli) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Probe the show service and report local records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			snap := c.app.Monitor.Check(cmd.Context())
			report := statusReport{
				State:               snap.State.String(),
				Label:               snap.Label(),
				API:                 c.app.Remote.BaseURL(),
				ConsecutiveFailures: snap.ConsecutiveFailures,
				PendingBands:        len(c.app.Data.PendingBands()),
				PendingReviews:      len(c.app.Data.PendingReviews()),
				LatencyMillis:       float64(time.Since(start).Microseconds()) / 1000,
			}
			if !snap.LastChecked.IsZero() {
				report.CheckedAt = snap.LastChecked.Format(time.RFC3339)
			}
			if snap.LastError != nil {
				report.Error = snap.LastError.Error()
			}

			if c.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s (%s)\n", report.Label, report.API)
			if report.Error != "" {
				fmt.Fprintf(w, "Error:   %s\n", report.Error)
			}
			fmt.Fprintf(w, "Pending: %d band(s), %d review(s)\n", report.PendingBands, report.PendingReviews)
			return nil
		},
	}
}
