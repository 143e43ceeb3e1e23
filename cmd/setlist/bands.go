package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/setlist/internal/catalog"
	"github.com/five82/setlist/internal/query"
)

func (c *cli) bandsCmd() *cobra.Command {
	var q query.BandQuery
	var pending bool
	cmd := &cobra.Command{
		Use:   "bands",
		Short: "List bands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var bands []catalog.Band
			if pending {
				bands = c.app.Data.PendingBands()
			} else {
				bands = c.app.Data.ListBands(cmd.Context())
			}
			bands = query.FilterBands(bands, q)
			if c.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), bands)
			}
			printBands(cmd.OutOrStdout(), bands)
			return nil
		},
	}
	cmd.Flags().StringVarP(&q.Term, "search", "s", "", "match name or description")
	cmd.Flags().StringVar(&q.Genre, "genre", "", "only bands of this genre")
	cmd.Flags().BoolVar(&pending, "pending", false, "only bands saved locally")
	return cmd
}

func (c *cli) bandCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "band <id>",
		Short: "Show one band, or create one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			band, ok := c.app.Data.GetBand(cmd.Context(), id)
			if !ok {
				return fmt.Errorf("band %d not found", id)
			}
			if c.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), band)
			}
			printBand(cmd.OutOrStdout(), band)
			return nil
		},
	}
	cmd.AddCommand(c.bandCreateCmd())
	return cmd
}

func (c *cli) bandCreateCmd() *cobra.Command {
	var in catalog.BandInput
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a band",
		Long: `Create a band. When the show service cannot be reached the band is
saved locally and listed alongside the catalog until the service takes it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.app.Data.CreateBand(cmd.Context(), in)
			if err != nil {
				return err
			}
			if c.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			printWrite(cmd.OutOrStdout(), "band", res.Record.ID, res)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "band name")
	cmd.Flags().StringVar(&in.Genre, "genre", "", "genre, e.g. Rock or Jazz")
	cmd.Flags().StringVar(&in.Description, "description", "", "short description")
	cmd.Flags().IntVar(&in.FormedYear, "formed-year", 0, "year the band formed")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("genre")
	return cmd
}
