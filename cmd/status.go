package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	presencerender "github.com/zamvr/vrcswitch/internal/adapters/render/presence"
	"github.com/zamvr/vrcswitch/internal/domain"
)

type statusReport struct {
	User     statusReportUser     `json:"user"`
	Presence statusReportPresence `json:"presence"`
}

type statusReportUser struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name,omitempty"`
}

type statusReportPresence struct {
	Status    string    `json:"status"`
	Location  string    `json:"location,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the saved session and current presence",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cred, err := app.session.Restore(ctx)
			if err != nil {
				return describeRestoreError(err)
			}

			// The saved file carries no display name and may predate the
			// user id; the who-am-I lookup fills both in.
			if !cred.HasIdentity() || cred.DisplayName == "" {
				if user, err := app.client.CurrentUser(ctx, cred.AuthToken); err == nil {
					cred.UserID = user.ID
					cred.DisplayName = user.DisplayName
				}
			}

			var result domain.LocationResult
			fetch := func(ctx context.Context) error {
				result = app.client.FetchLocation(ctx, cred.AuthToken, cred.UserID)
				return nil
			}

			if asJSON {
				if err := fetch(ctx); err != nil {
					return err
				}
			} else if err := runFetchSpinner(ctx, cmd.ErrOrStderr(), "Checking presence...", fetch); err != nil {
				return err
			}

			state := presenceStateFromResult(result, app.now())

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(statusReport{
					User: statusReportUser{ID: cred.UserID, DisplayName: cred.DisplayName},
					Presence: statusReportPresence{
						Status:    string(state.Status),
						Location:  state.Location,
						CheckedAt: state.CheckedAt,
					},
				})
			}

			rendered, err := app.presenceRenderer(presencerender.Card{
				DisplayName: cred.DisplayName,
				UserID:      cred.UserID,
				State:       state,
			}, presencerender.RenderOptions{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render presence: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the status as JSON")

	return cmd
}

func presenceStateFromResult(result domain.LocationResult, now time.Time) domain.PresenceState {
	state := domain.PresenceState{CheckedAt: now}
	switch result.Status {
	case domain.LocationKnown:
		state.Status = domain.FetchReady
		state.Location = result.Location
	case domain.LocationUnknown:
		state.Status = domain.FetchReady
	default:
		state.Status = domain.FetchUnreachable
	}

	return state
}
