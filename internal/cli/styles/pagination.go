package styles

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// NoDataText is shown in place of rows when the current page window is empty.
const NoDataText = "No data"

// RenderPageSelector renders one button per page with the current page highlighted.
// A current page beyond the last page highlights nothing.
func (t *Theme) RenderPageSelector(pages []int, current int) string {
	if len(pages) == 0 {
		return ""
	}
	buttons := make([]string, 0, len(pages))
	for _, p := range pages {
		style := t.InactiveButton
		if p == current {
			style = t.ActiveButton
		}
		buttons = append(buttons, style.Render(strconv.Itoa(p)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(buttons, " "))
}

// RenderNoData renders the empty-page placeholder.
func (t *Theme) RenderNoData() string {
	return t.Subtle.Italic(true).Render(NoDataText)
}
