package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/setlist/internal/logging"
	"github.com/five82/setlist/internal/logtail"
)

func (c *cli) logsCmd() *cobra.Command {
	var lines int
	var level string
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the tail of the browser log",
		Long: `Print the last lines of the log written by the terminal browser.
The browser only logs when log_file is set in the config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.app.Config.LogFile
			if path == "" {
				return errors.New("no log_file configured")
			}
			raw, err := logtail.Read(path, lines)
			if err != nil {
				return err
			}
			entries := logtail.Parse(raw)
			if level != "" {
				entries = logtail.Filter(entries, logging.ParseLevel(level))
			}

			if c.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), entries)
			}
			if len(entries) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No log entries in %s.\n", path)
				return nil
			}
			for _, e := range entries {
				fmt.Fprintln(cmd.OutOrStdout(), e.String())
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 200, "number of lines to read, 0 for all")
	cmd.Flags().StringVar(&level, "level", "", "minimum level: debug, info, warn or error")
	return cmd
}
