package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const fetchTimeout = 30 * time.Second

// fetch runs fn off the event loop with a bounded context and delivers its
// result as a message.
func fetch(fn func(ctx context.Context) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return fn(ctx)
	}
}

func reportError(source string, err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Source: source, Err: err}
	}
}
