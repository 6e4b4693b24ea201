package presence

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/zamvr/vrcswitch/internal/domain"
)

// Card is everything the presence view needs: who the session belongs to and
// the poller's latest state snapshot.
type Card struct {
	DisplayName string
	UserID      string
	State       domain.PresenceState
}

type RenderOptions struct {
	Now time.Time
}

func renderView(card Card, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("VRChat Presence"),
		s.header.Render(userTitle(card)),
		indicatorLine(card.State, s),
		locationLine(card.State, s),
	}

	if checked := checkedLine(card.State, opts, s); checked != "" {
		lines = append(lines, checked)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func userTitle(card Card) string {
	switch {
	case card.DisplayName != "" && card.UserID != "":
		return fmt.Sprintf("%s (%s)", card.DisplayName, card.UserID)
	case card.DisplayName != "":
		return card.DisplayName
	case card.UserID != "":
		return card.UserID
	default:
		return "unknown user"
	}
}

func indicatorLine(state domain.PresenceState, s styles) string {
	label := s.fieldKey.Render("presence:")
	if state.Ready() {
		return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", s.ready.Render("ready"))
	}

	indicator := s.notReady.Render("not ready")
	if state.Status == domain.FetchPending {
		indicator = s.empty.Render("pending")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", indicator)
}

func locationLine(state domain.PresenceState, s styles) string {
	label := s.fieldKey.Render("location:")
	if !state.InInstance() {
		return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", s.empty.Render("not in any instance"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", s.location.Render(state.Location))
}

func checkedLine(state domain.PresenceState, opts RenderOptions, s styles) string {
	if state.CheckedAt.IsZero() {
		return ""
	}

	label := s.fieldKey.Render("checked:")
	value := s.fieldMeta.Render(formatCheckedAt(state.CheckedAt, opts.Now))

	line := lipgloss.JoinHorizontal(lipgloss.Top, label, " ", value)
	if state.ConsecutiveEmptyFetches > 0 {
		line += " " + s.fieldMeta.Render(fmt.Sprintf("(%d empty fetches)", state.ConsecutiveEmptyFetches))
	}

	return line
}

func formatCheckedAt(checkedAt, now time.Time) string {
	if now.IsZero() {
		return checkedAt.Format(time.RFC3339)
	}

	elapsed := now.Sub(checkedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	switch {
	case elapsed < time.Second:
		return "just now"
	case elapsed < time.Minute:
		return fmt.Sprintf("%ds ago", int(elapsed.Seconds()))
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	default:
		return checkedAt.Format(time.RFC3339)
	}
}
