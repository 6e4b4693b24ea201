package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zamvr/vrcswitch/internal/domain"
)

func newLaunchCmd(app *app) *cobra.Command {
	var (
		desktop bool
		vr      bool
		here    bool
		exe     string
	)

	cmd := &cobra.Command{
		Use:   "launch",
		Short: "Launch the companion executable",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if vr {
				outcome := <-app.launch.LaunchVR(ctx)
				if outcome.Err != nil {
					return outcome.Err
				}
				_, _ = fmt.Fprintf(out, "Launched %s\n", domain.SteamLaunchURI)
				return nil
			}

			if exe == "" {
				exe = app.config.Executable
			}
			if exe == "" {
				return errors.New("no companion executable configured; set launch.executable or pass --exe")
			}

			target := ""
			if here {
				location, err := currentLocation(cmd, app)
				if err != nil {
					return err
				}
				target = location
			}

			outcome := <-app.launch.Launch(ctx, domain.LaunchSpec{
				ExecutablePath: exe,
				DesktopMode:    desktop,
				TargetLocation: target,
			})
			if outcome.Err != nil {
				return outcome.Err
			}

			_, _ = fmt.Fprintf(out, "Launched %s\n", strings.Join(outcome.Command, " "))
			return nil
		},
	}

	cmd.Flags().BoolVar(&desktop, "desktop", app.config.DesktopMode, "Start without VR hardware (appends --no-vr)")
	cmd.Flags().BoolVar(&vr, "vr", false, "Start through Steam for the VR runtime instead of the executable")
	cmd.Flags().BoolVar(&here, "here", false, "Embed the current instance in the launch arguments")
	cmd.Flags().StringVar(&exe, "exe", "", "Companion executable path (default from config)")
	cmd.MarkFlagsMutuallyExclusive("desktop", "vr")
	cmd.MarkFlagsMutuallyExclusive("here", "vr")

	return cmd
}

// currentLocation fetches the user's instance once for a --here launch. No
// retry loop: a launch either targets where the user is right now or fails.
func currentLocation(cmd *cobra.Command, app *app) (string, error) {
	ctx := cmd.Context()

	cred, err := app.session.Restore(ctx)
	if err != nil {
		return "", describeRestoreError(err)
	}
	if !cred.HasIdentity() {
		user, err := app.client.CurrentUser(ctx, cred.AuthToken)
		if err != nil {
			return "", fmt.Errorf("resolve user identity: %w", err)
		}
		cred.UserID = user.ID
	}

	var result domain.LocationResult
	err = runFetchSpinner(ctx, cmd.ErrOrStderr(), "Locating current instance...", func(ctx context.Context) error {
		result = app.client.FetchLocation(ctx, cred.AuthToken, cred.UserID)
		return nil
	})
	if err != nil {
		return "", err
	}

	if result.Status != domain.LocationKnown {
		return "", errors.New("could not determine the current instance; try again once presence is ready")
	}

	return result.Location, nil
}
