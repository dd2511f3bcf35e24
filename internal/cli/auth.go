package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-save-sync/internal/client"
	"github.com/MKhiriev/go-save-sync/models"
)

var errEmailRequired = errors.New("--email is required")

// CredentialsOptions holds flags for register and login.
type CredentialsOptions struct {
	*RootOptions
	Email    string
	Password string
}

// NewRegisterCommand creates the register command.
func NewRegisterCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CredentialsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a cloud account and log in",
		Long: `Create a cloud account and keep its session for later commands.

Without --password the password is read from the first line of stdin.

Example:
  save-sync register --email me@example.com
  echo "$PASS" | save-sync register --email me@example.com`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthenticate(opts, cmd, "registered", func(ctx context.Context, app *client.App, creds models.Credentials) error {
				return app.Controller().Register(ctx, creds)
			})
		},
	}
	bindCredentialsFlags(cmd, opts)

	return cmd
}

// NewLoginCommand creates the login command.
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CredentialsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to a cloud account",
		Long: `Log in and keep the session for later commands. When auto-sync is on
the local and cloud saves are reconciled right away.

Without --password the password is read from the first line of stdin.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthenticate(opts, cmd, "logged in", func(ctx context.Context, app *client.App, creds models.Credentials) error {
				return app.Controller().Login(ctx, creds)
			})
		},
	}
	bindCredentialsFlags(cmd, opts)

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "logout",
		Short:        "End the session and forget the last sync point",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withStartedApp(cmd, func(ctx context.Context, app *client.App) error {
				if !app.Controller().State().Authenticated {
					fmt.Fprintln(cmd.OutOrStdout(), "not logged in")
					return nil
				}
				app.Controller().Logout(ctx)
				fmt.Fprintln(cmd.OutOrStdout(), "logged out")
				return nil
			})
		},
	}
}

func bindCredentialsFlags(cmd *cobra.Command, opts *CredentialsOptions) {
	cmd.Flags().StringVarP(&opts.Email, "email", "e", "", "account email (required)")
	cmd.Flags().StringVarP(&opts.Password, "password", "p", "", "account password (read from stdin when empty)")
	_ = cmd.MarkFlagRequired("email")
}

func runAuthenticate(
	opts *CredentialsOptions,
	cmd *cobra.Command,
	done string,
	authenticate func(ctx context.Context, app *client.App, creds models.Credentials) error,
) error {
	creds, err := readCredentials(cmd.InOrStdin(), opts.Email, opts.Password)
	if err != nil {
		return err
	}

	return opts.withStartedApp(cmd, func(ctx context.Context, app *client.App) error {
		if err := authenticate(ctx, app, creds); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s as %s\n", done, creds.Email)
		return nil
	})
}

// readCredentials fills in the password from the first line of in when the
// flag was left empty.
func readCredentials(in io.Reader, email, password string) (models.Credentials, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return models.Credentials{}, errEmailRequired
	}

	if password == "" {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return models.Credentials{}, fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		return models.Credentials{}, errors.New("password is required")
	}

	return models.Credentials{Email: email, Password: password}, nil
}
