package render

import (
	"strings"

	statepkg "github.com/kk-code-lab/rpick/internal/state"
)

// buildFooterHelpText returns the key hint string with leading/trailing padding.
func buildFooterHelpText(state *statepkg.AppState) string {
	parts := buildFooterHelpSegments(state)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

// buildFooterHelpSegments assembles help hints for the footer. History hints
// only appear when the move is possible.
func buildFooterHelpSegments(state *statepkg.AppState) []string {
	if state == nil {
		return nil
	}

	segments := []string{"↵: enter/open", "alt-↵: open"}

	if state.History.CanBack() {
		segments = append(segments, "alt-←: back")
	}
	if state.History.CanForward() {
		segments = append(segments, "alt-→: forward")
	}
	if state.FilterQuery != "" {
		segments = append(segments, "^U: clear")
	}
	if state.ClipboardAvailable {
		segments = append(segments, "^Y: yank path")
	}

	return append(segments, "esc: quit")
}
