package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/setlist/internal/query"
)

func (c *cli) showsCmd() *cobra.Command {
	var q query.ShowQuery
	var sortKey string
	cmd := &cobra.Command{
		Use:   "shows",
		Short: "List shows",
		Long: `List shows, optionally filtered and sorted.

The search term matches titles and descriptions; --genre matches any band
on the bill; --venue matches the venue name exactly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := query.ParseSortKey(sortKey)
			if err != nil {
				return err
			}
			q.Sort = key

			shows := query.FilterShows(c.app.Data.ListShows(cmd.Context()), q)
			if c.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), shows)
			}
			printShows(cmd.OutOrStdout(), shows)
			return nil
		},
	}
	cmd.Flags().StringVarP(&q.Term, "search", "s", "", "match title or description")
	cmd.Flags().StringVar(&q.Genre, "genre", "", "only shows with a band of this genre")
	cmd.Flags().StringVar(&q.Venue, "venue", "", "only shows at this venue")
	cmd.Flags().StringVar(&sortKey, "sort", "date", "sort by date, title or price")
	return cmd
}

func (c *cli) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one show with its bands and reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			show, ok := c.app.Data.GetShow(cmd.Context(), id)
			if !ok {
				return fmt.Errorf("show %d not found", id)
			}
			if c.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), show)
			}
			printShow(cmd.OutOrStdout(), show)
			return nil
		},
	}
}
