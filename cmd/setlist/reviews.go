package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/setlist/internal/catalog"
	"github.com/five82/setlist/internal/fallback"
)

func (c *cli) reviewsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reviews <show-id>",
		Short: "List the reviews of a show",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			showID, err := parseID(args[0])
			if err != nil {
				return err
			}
			reviews := c.app.Data.ListReviews(cmd.Context(), showID)
			if c.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), reviews)
			}
			printReviews(cmd.OutOrStdout(), reviews)
			return nil
		},
	}
}

func (c *cli) reviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Create, edit or delete reviews",
		Long: `Create, edit or delete reviews. Changes the show service cannot take
right now are kept locally and reported as saved locally.`,
	}
	cmd.AddCommand(c.reviewCreateCmd(), c.reviewUpdateCmd(), c.reviewDeleteCmd())
	return cmd
}

func reviewFlags(cmd *cobra.Command, in *catalog.ReviewInput) {
	cmd.Flags().IntVar(&in.Rating, "rating", 0, "rating from 1 to 5")
	cmd.Flags().StringVar(&in.Comment, "comment", "", "review text")
	cmd.Flags().StringVar(&in.UserName, "name", "", "your name (optional)")
	_ = cmd.MarkFlagRequired("rating")
	_ = cmd.MarkFlagRequired("comment")
}

func (c *cli) reviewCreateCmd() *cobra.Command {
	var in catalog.ReviewInput
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Review a show",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.app.Data.CreateReview(cmd.Context(), in)
			if err != nil {
				return err
			}
			if c.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			printWrite(cmd.OutOrStdout(), "review", res.Record.ID, res)
			return nil
		},
	}
	cmd.Flags().Int64Var(&in.ShowID, "show", 0, "id of the show being reviewed")
	_ = cmd.MarkFlagRequired("show")
	reviewFlags(cmd, &in)
	return cmd
}

func (c *cli) reviewUpdateCmd() *cobra.Command {
	var in catalog.ReviewInput
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			res, err := c.app.Data.UpdateReview(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			if c.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			printWrite(cmd.OutOrStdout(), "review", res.Record.ID, res)
			return nil
		},
	}
	reviewFlags(cmd, &in)
	return cmd
}

func (c *cli) reviewDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			res, err := c.app.Data.DeleteReview(cmd.Context(), id)
			if err != nil {
				return err
			}
			if c.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			switch res.State {
			case fallback.PendingLocal:
				fmt.Fprintf(cmd.OutOrStdout(), "review %d hidden locally; the show service was unavailable\n", id)
			case fallback.Unsaved:
				fmt.Fprintf(cmd.OutOrStdout(), "review %d was not deleted; the show service and the local store both failed\n", id)
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "review %d deleted\n", id)
			}
			return nil
		},
	}
}
