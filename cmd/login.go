package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zamvr/vrcswitch/internal/application"
	"github.com/zamvr/vrcswitch/internal/domain"
)

func newLoginCmd(app *app) *cobra.Command {
	var username, password, code string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against VRChat and save the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			var err error
			if username == "" {
				if username, err = promptLine(cmd, "Username", false); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = promptLine(cmd, "Password", true); err != nil {
					return err
				}
			}

			flow := application.NewLoginFlow(app.client)
			stage := flow.SubmitCredentials(ctx, username, password)
			if stage == domain.StageAwaitingCredentials {
				return errors.New("username and password are required")
			}

			if stage == domain.StageAwaitingTwoFactor {
				if code == "" {
					if code, err = promptLine(cmd, "Two-factor code", false); err != nil {
						return err
					}
				}
				stage = flow.SubmitTwoFactorCode(ctx, code)
			}

			if stage != domain.StageSucceeded {
				return fmt.Errorf("login failed: %s", flow.FailureReason())
			}

			cred, ok := flow.Credential()
			if !ok {
				return errors.New("login flow ended without a credential")
			}

			if err := app.session.Establish(ctx, cred); err != nil {
				return err
			}

			name := cred.DisplayName
			if name == "" {
				name = cred.UserID
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "VRChat username (prompted when omitted)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "VRChat password (prompted when omitted)")
	cmd.Flags().StringVar(&code, "code", "", "Two-factor code (prompted when required)")

	return cmd
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the saved session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.session.Logout(cmd.Context()); err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}
