//go:build unix

package cli

import "golang.org/x/sys/unix"

// TerminalWidth returns the column count of the terminal behind fd,
// or fallback when fd is not a terminal.
func TerminalWidth(fd uintptr, fallback int) int {
	ws, err := unix.IoctlGetWinsize(int(fd), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return fallback
	}
	return int(ws.Col)
}
