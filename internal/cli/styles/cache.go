package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/lruconsole/internal/domain/entity"
)

// CacheRenderer renders results of the non-interactive cache commands.
type CacheRenderer struct {
	theme *Theme
}

// NewCacheRenderer creates a new cache renderer with the given theme.
func NewCacheRenderer(theme *Theme) *CacheRenderer {
	return &CacheRenderer{theme: theme}
}

// RenderLookup renders a single-key lookup outcome.
func (r *CacheRenderer) RenderLookup(res entity.LookupResult) string {
	keyStyle := r.theme.Highlight
	if !res.Found {
		return fmt.Sprintf("  %s %s %s",
			r.theme.ErrorStyle.Render(IconX),
			keyStyle.Render(res.Key),
			r.theme.Subtle.Render("not found"),
		)
	}
	return fmt.Sprintf("  %s %s %s",
		lipgloss.NewStyle().Foreground(r.theme.Accent).Render(IconKey),
		keyStyle.Render(res.Key),
		r.theme.Normal.Render(res.Value),
	)
}

// RenderSet renders the confirmation for a successful upsert.
func (r *CacheRenderer) RenderSet(key string, ttlSeconds int64) string {
	return fmt.Sprintf("  %s %s %s",
		r.theme.SuccessStyle.Render(IconCheck),
		r.theme.Highlight.Render(key),
		r.theme.Subtle.Render(fmt.Sprintf("set (ttl %ds)", ttlSeconds)),
	)
}

// RenderDeleted renders the confirmation for a removed key.
func (r *CacheRenderer) RenderDeleted(key string) string {
	return fmt.Sprintf("  %s %s %s",
		r.theme.SuccessStyle.Render(IconTrash),
		r.theme.Highlight.Render(key),
		r.theme.Subtle.Render("deleted"),
	)
}

// RenderFailure renders a per-key failure line.
func (r *CacheRenderer) RenderFailure(key string, err error) string {
	return fmt.Sprintf("  %s %s %s",
		r.theme.ErrorStyle.Render(IconX),
		r.theme.Highlight.Render(key),
		r.theme.ErrorStyle.Render(err.Error()),
	)
}

// RenderHeader renders the title line above an entry table.
func (r *CacheRenderer) RenderHeader(baseURL string, total, page, pageCount int) string {
	parts := []string{
		lipgloss.NewStyle().Foreground(r.theme.Accent).Render(IconDatabase),
		r.theme.Title.Render(baseURL),
		r.theme.CountBadge(total),
	}
	if pageCount > 0 {
		parts = append(parts, r.theme.Subtle.Render(fmt.Sprintf("page %d/%d", page, pageCount)))
	}
	return strings.Join(parts, " ")
}
