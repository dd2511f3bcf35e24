// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cli holds the save-sync client commands.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-save-sync/internal/client"
	"github.com/MKhiriev/go-save-sync/internal/config"
	"github.com/MKhiriev/go-save-sync/internal/logger"
	"github.com/MKhiriev/go-save-sync/models"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	flags     *config.Flags
	buildInfo models.AppBuildInfo
}

// NewRootCommand creates the root command of the save-sync client.
func NewRootCommand(buildInfo models.AppBuildInfo) *cobra.Command {
	opts := &RootOptions{buildInfo: buildInfo}

	cmd := &cobra.Command{
		Use:   "save-sync",
		Short: "Keep a game save in step with the cloud",
		Long: `save-sync mirrors a local game save file to a cloud account.

Changes are pushed after each auto-sync period and when the game goes to the
background. A cloud copy written by another device is never overwritten
silently: the conflict waits until one side is picked with "resolve".`,
		Version:       buildInfo.BuildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	opts.flags = config.BindClientFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewRegisterCommand(opts))
	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewLogoutCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))
	cmd.AddCommand(NewPushCommand(opts))
	cmd.AddCommand(NewPullCommand(opts))
	cmd.AddCommand(NewResolveCommand(opts))
	cmd.AddCommand(NewAutoSyncCommand(opts))
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewWatchCommand(opts))

	return cmd
}

// openApp builds the client from the merged flag, env and file config.
// The caller closes the returned app.
func (o *RootOptions) openApp(ctx context.Context) (*client.App, *logger.Logger, error) {
	cfg, err := config.GetClientConfig(o.flags.Config())
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.NewClientLogger("save-sync-client")
	log.Debug().Any("config", cfg).Msg("received configs")

	app, err := client.NewApp(ctx, cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("init client: %w", err)
	}
	return app, log, nil
}

// withStartedApp runs fn against a client whose session has been restored.
func (o *RootOptions) withStartedApp(cmd *cobra.Command, fn func(ctx context.Context, app *client.App) error) error {
	ctx := commandContext(cmd)

	app, log, err := o.openApp(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("close local store")
		}
	}()

	app.Start(ctx)
	return fn(ctx, app)
}
