package styles

import (
	"fmt"
	"time"
)

// AccentBadge renders a badge with accent color.
func (t *Theme) AccentBadge(text string) string {
	return t.Badge.Render(text)
}

// MutedBadge renders a badge with muted colors.
func (t *Theme) MutedBadge(text string) string {
	return t.BadgeMuted.Render(text)
}

// CountBadge renders "n entries" with singular handling.
func (t *Theme) CountBadge(n int) string {
	if n == 1 {
		return t.BadgeMuted.Render("1 entry")
	}
	return t.BadgeMuted.Render(fmt.Sprintf("%d entries", n))
}

// TimeUntil formats the remaining lifetime of an entry relative to now.
func TimeUntil(exp, now time.Time) string {
	if exp.IsZero() {
		return "-"
	}
	diff := exp.Sub(now)
	if diff <= 0 {
		return "expired"
	}

	switch {
	case diff < time.Minute:
		return fmt.Sprintf("%ds", int(diff.Seconds()))
	case diff < time.Hour:
		return fmt.Sprintf("%dm", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh", int(diff.Hours()))
	default:
		return fmt.Sprintf("%dd", int(diff.Hours()/24))
	}
}

// RelativeTime formats a past time as a short "ago" string.
func RelativeTime(tm, now time.Time) string {
	diff := now.Sub(tm)

	switch {
	case diff < 5*time.Second:
		return "just now"
	case diff < time.Minute:
		return fmt.Sprintf("%ds ago", int(diff.Seconds()))
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	}
}
