//go:build !unix

package cli

// TerminalWidth returns fallback on platforms without TIOCGWINSZ.
func TerminalWidth(_ uintptr, fallback int) int {
	return fallback
}
