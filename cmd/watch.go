package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zamvr/vrcswitch/internal/application"
	"github.com/zamvr/vrcswitch/internal/domain"
)

func newWatchCmd(app *app) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll presence in the foreground until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cred, err := app.session.Restore(ctx)
			if err != nil {
				return describeRestoreError(err)
			}
			if !cred.HasIdentity() {
				user, err := app.client.CurrentUser(ctx, cred.AuthToken)
				if err != nil {
					return fmt.Errorf("resolve user identity: %w", err)
				}
				cred.UserID = user.ID
				cred.DisplayName = user.DisplayName
			}

			out := cmd.OutOrStdout()
			poller := application.NewPresencePoller(app.client, app.store, application.PollerOptions{
				Credential: cred,
				Interval:   interval,
				Logger:     app.logger,
				OnChange: func(state domain.PresenceState) {
					_, _ = fmt.Fprintf(out, "%s %s\n", state.CheckedAt.Format("15:04:05"), describePresence(state))
				},
			})
			defer poller.Close()

			poller.Refresh()
			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", app.config.PollInterval, "Delay between presence fetch retries")

	return cmd
}

func describePresence(state domain.PresenceState) string {
	switch {
	case state.Status == domain.FetchUnreachable:
		return "unreachable (will retry)"
	case state.InInstance():
		return "ready location=" + state.Location
	default:
		return "ready (not in any instance)"
	}
}
