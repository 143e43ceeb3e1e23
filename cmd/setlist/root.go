package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/setlist/internal/app"
)

// cli carries the flag values and the application shared by every command.
type cli struct {
	configPath string
	prefsPath  string
	jsonOutput bool
	ephemeral  bool

	app *app.App
}

// newRootCmd builds the command tree. The returned cli must be closed once
// the command finishes, whether or not it succeeded.
func newRootCmd() (*cobra.Command, *cli) {
	c := &cli{}
	root := &cobra.Command{
		Use:   "setlist",
		Short: "Browse a live-music show catalog, online or offline",
		Long: `setlist reads shows, bands, venues and reviews from the show service.
When the service is slow or unreachable it serves a built-in catalog plus
everything you created locally, and keeps your new bands and reviews until
the service can take them.

Run without a subcommand to open the terminal browser.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(app.Options{
				ConfigPath:  c.configPath,
				PrefsPath:   c.prefsPath,
				Ephemeral:   c.ephemeral,
				Interactive: cmd.Annotations["interactive"] == "true",
			})
			if err != nil {
				return err
			}
			c.app = a
			return nil
		},
		Annotations: map[string]string{"interactive": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Browse(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ~/.config/setlist/config.toml)")
	root.PersistentFlags().StringVar(&c.prefsPath, "prefs", "", "preferences file (default: ~/.config/setlist/prefs.toml)")
	root.PersistentFlags().BoolVar(&c.jsonOutput, "json", false, "output as JSON")
	root.PersistentFlags().BoolVar(&c.ephemeral, "ephemeral", false, "keep local records in memory for this run only")

	root.AddCommand(
		c.browseCmd(),
		c.showsCmd(),
		c.showCmd(),
		c.bandsCmd(),
		c.bandCmd(),
		c.venuesCmd(),
		c.venueCmd(),
		c.reviewsCmd(),
		c.reviewCmd(),
		c.statusCmd(),
		c.logsCmd(),
	)
	return root, c
}

func (c *cli) browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "browse",
		Short:       "Open the terminal browser",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"interactive": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Browse(cmd.Context())
		},
	}
}

func (c *cli) close() error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close()
	c.app = nil
	if err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}
