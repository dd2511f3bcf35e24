package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-save-sync/internal/client"
)

// Sides accepted by resolve --take.
const (
	takeCloud = "cloud"
	takeLocal = "local"
)

// ResolveOptions holds flags for the resolve command.
type ResolveOptions struct {
	*RootOptions
	Take string
}

// NewPushCommand creates the push command.
func NewPushCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Upload the local save to the cloud",
		Long: `Upload the local save against the last known cloud revision. When the
cloud copy moved on since then the upload is refused and the conflict is
reported; settle it with "resolve".`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withStartedApp(cmd, func(ctx context.Context, app *client.App) error {
				if err := app.Controller().ForceOverwriteCloud(ctx); err != nil {
					return err
				}
				printState(cmd.OutOrStdout(), app.Controller().State(), app.SaveFile())
				return nil
			})
		},
	}
}

// NewPullCommand creates the pull command.
func NewPullCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "pull",
		Short:        "Replace the local save with the cloud save",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withStartedApp(cmd, func(ctx context.Context, app *client.App) error {
				if err := app.Controller().ForceLoadCloud(ctx); err != nil {
					return err
				}
				printState(cmd.OutOrStdout(), app.Controller().State(), app.SaveFile())
				return nil
			})
		},
	}
}

// NewResolveCommand creates the resolve command.
func NewResolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ResolveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Settle a save conflict by picking one side",
		Long: `Settle a conflict found while reconciling with the cloud.

  --take cloud   load the cloud save, dropping local changes
  --take local   overwrite the cloud save with the local save

Example:
  save-sync resolve --take cloud`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// after cobra's required-flag check
			if opts.Take != takeCloud && opts.Take != takeLocal {
				return fmt.Errorf("invalid --take %q: must be %q or %q", opts.Take, takeCloud, takeLocal)
			}
			return rootOpts.withStartedApp(cmd, func(ctx context.Context, app *client.App) error {
				resolve := app.Controller().ResolveConflictByLoading
				if opts.Take == takeLocal {
					resolve = app.Controller().ResolveConflictByOverwriting
				}
				if err := resolve(ctx); err != nil {
					return err
				}
				printState(cmd.OutOrStdout(), app.Controller().State(), app.SaveFile())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&opts.Take, "take", "", "side to keep (cloud|local)")
	_ = cmd.MarkFlagRequired("take")

	return cmd
}

// NewAutoSyncCommand creates the autosync command.
func NewAutoSyncCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "autosync on|off",
		Short:        "Turn automatic sync on or off",
		Args:         cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs:    []string{"on", "off"},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			enabled := args[0] == "on"
			return rootOpts.withStartedApp(cmd, func(ctx context.Context, app *client.App) error {
				app.Controller().SetAutoSyncEnabled(ctx, enabled)
				printState(cmd.OutOrStdout(), app.Controller().State(), app.SaveFile())
				return nil
			})
		},
	}
}
