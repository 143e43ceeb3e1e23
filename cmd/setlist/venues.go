package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) venuesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "venues",
		Short: "List venues",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			venues := c.app.Data.ListVenues(cmd.Context())
			if c.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), venues)
			}
			printVenues(cmd.OutOrStdout(), venues)
			return nil
		},
	}
}

func (c *cli) venueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "venue <id>",
		Short: "Show one venue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			v, ok := c.app.Data.GetVenue(cmd.Context(), id)
			if !ok {
				return fmt.Errorf("venue %d not found", id)
			}
			if c.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), v)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s\n", v.Name)
			fmt.Fprintf(w, "City:     %s\n", v.City)
			if v.Address != "" {
				fmt.Fprintf(w, "Address:  %s\n", v.Address)
			}
			fmt.Fprintf(w, "Capacity: %d\n", v.Capacity)
			if v.Phone != "" {
				fmt.Fprintf(w, "Phone:    %s\n", v.Phone)
			}
			return nil
		},
	}
}
