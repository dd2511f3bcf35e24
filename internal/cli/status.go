package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-save-sync/internal/client"
	"github.com/MKhiriev/go-save-sync/models"
)

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the account and sync state",
		Long: `Show the account and sync state. With auto-sync on, the local and cloud
saves are reconciled first, so a pending conflict shows up here.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withStartedApp(cmd, func(_ context.Context, app *client.App) error {
				printState(cmd.OutOrStdout(), app.Controller().State(), app.SaveFile())
				return nil
			})
		},
	}
}

// printState writes a two-column summary of s.
func printState(w io.Writer, s models.SyncState, saveFile string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	account := "not logged in"
	if s.Authenticated {
		account = orDash(s.Email)
	}
	autoSync := "off"
	if s.AutoSyncEnabled {
		autoSync = "on (" + string(s.AutoSync) + ")"
	}

	fmt.Fprintf(tw, "account:\t%s\n", account)
	fmt.Fprintf(tw, "status:\t%s\n", s.Status)
	fmt.Fprintf(tw, "auto-sync:\t%s\n", autoSync)
	fmt.Fprintf(tw, "save file:\t%s\n", orDash(saveFile))
	if s.Watermark != nil {
		fmt.Fprintf(tw, "synced revision:\t%s\n", revision(s.Watermark.CloudRevision))
	}
	if s.CloudMeta != nil {
		fmt.Fprintf(tw, "cloud revision:\t%s\n", revision(s.CloudMeta.Revision))
		fmt.Fprintf(tw, "cloud updated:\t%s\n", timestamp(s.CloudMeta.UpdatedAt))
	}
	if s.LastSync != nil {
		fmt.Fprintf(tw, "last sync:\t%s\n", timestamp(s.LastSync))
	}
	if s.RetryAt != nil {
		fmt.Fprintf(tw, "retry at:\t%s\n", timestamp(s.RetryAt))
	}
	if s.Message != "" {
		fmt.Fprintf(tw, "message:\t%s\n", s.Message)
	}
	if s.Conflict != nil {
		fmt.Fprintf(tw, "conflict:\t%s\n", orDash(s.Conflict.Message))
		fmt.Fprintf(tw, "conflict revision:\t%s\n", revision(s.Conflict.Meta.Revision))
		fmt.Fprintln(tw, "\trun \"save-sync resolve --take cloud|local\"")
	}

	_ = tw.Flush()
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

func revision(rev *int64) string {
	if rev == nil {
		return "-"
	}
	return strconv.FormatInt(*rev, 10)
}

func timestamp(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format(time.RFC3339)
}
