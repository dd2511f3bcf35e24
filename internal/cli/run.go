// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-save-sync/internal/tui"
)

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Keep syncing in the background until stopped",
		Long: `Keep auto-sync running without a screen: the save is pushed every
auto-sync period while it changes. SIGINT or SIGTERM stops the loop after
one last push of pending changes.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, log, err := rootOpts.openApp(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := app.Close(); closeErr != nil {
					log.Error().Err(closeErr).Msg("close local store")
				}
			}()

			log.Info().Str("save_file", app.SaveFile()).Msg("auto-sync running")
			return app.Run(ctx)
		},
	}
}

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Show a live status screen while syncing",
		Long: `Show the sync state on a full-screen view and keep auto-sync running.
Losing terminal focus counts as the game going to the background.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, log, err := rootOpts.openApp(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := app.Close(); closeErr != nil {
					log.Error().Err(closeErr).Msg("close local store")
				}
			}()

			syncCtx, cancelSync := context.WithCancel(ctx)
			synced := make(chan error, 1)
			go func() {
				synced <- app.Run(syncCtx)
			}()

			uiErr := tui.New(app.Controller(), app.SaveFile(), rootOpts.buildInfo, log).Run(ctx)

			cancelSync()
			if err = <-synced; err != nil {
				return err
			}
			return uiErr
		},
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
