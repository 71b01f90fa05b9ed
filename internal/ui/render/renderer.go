package render

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	searchpkg "github.com/kk-code-lab/rpick/internal/search"
	statepkg "github.com/kk-code-lab/rpick/internal/state"
)

// YankFlashDuration is how long the status line confirms a clipboard copy.
const YankFlashDuration = 1500 * time.Millisecond

// Renderer handles all UI rendering
type Renderer struct {
	screen           tcell.Screen
	theme            ColorTheme
	runeWidthCache   [128]int // ASCII cache (0-127)
	runeWidthCacheMu sync.RWMutex
	runeWidthWide    sync.Map // For non-ASCII runes
	now              func() time.Time
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
		now:    time.Now,
	}
}

// SetTheme replaces the palette.
func (r *Renderer) SetTheme(theme ColorTheme) {
	r.theme = theme
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.AppState) {
	r.screen.Clear()

	w, h := r.screen.Size()
	if w <= 0 || h <= 0 {
		return
	}

	r.drawHeader(state, w)
	if h > 1 {
		r.drawFilterLine(state, w)
	}
	r.drawFileList(state, w, h)
	if h > statepkg.ListStartY {
		r.drawStatusLine(state, w, h)
	}

	r.screen.Show()
}

// drawHeader renders the top bar with title and breadcrumb
func (r *Renderer) drawHeader(state *statepkg.AppState, w int) {
	headerStyle := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)

	endX := r.drawStyledStringClipped(0, 0, w, "rpick ", headerStyle.Bold(true))

	segments := formatBreadcrumbSegments(state.CurrentPath)
	lastIdx := len(segments) - 1
	last := sanitizeLine(segments[lastIdx])
	prefix := ""
	if lastIdx > 0 {
		prefix = sanitizeLine(strings.Join(segments[:lastIdx], " › ")) + " › "
	}

	available := w - endX
	lastWidth := r.measureTextWidth(last)
	if lastWidth >= available {
		last = r.truncateLeft(last, available)
		prefix = ""
	} else {
		prefix = r.truncateLeft(prefix, available-lastWidth)
	}

	endX = r.drawStyledStringClipped(endX, 0, w, prefix, headerStyle)
	endX = r.drawStyledStringClipped(endX, 0, w, last, headerStyle.Bold(true))
	r.fillRow(endX, 0, w, headerStyle)
}

// formatBreadcrumbSegments splits a path into display segments, keeping the
// root as its own segment.
func formatBreadcrumbSegments(path string) []string {
	if path == "" {
		return []string{"/"}
	}

	cleanPath := filepath.Clean(path)
	volume := filepath.VolumeName(cleanPath)
	rest := filepath.ToSlash(strings.TrimPrefix(cleanPath, volume))

	var segments []string
	if strings.HasPrefix(rest, "/") {
		segments = append(segments, volume+"/")
		rest = strings.TrimPrefix(rest, "/")
	} else if volume != "" {
		segments = append(segments, volume)
	}

	for _, part := range strings.Split(rest, "/") {
		if part == "" {
			continue
		}
		segments = append(segments, part)
	}

	if len(segments) == 0 {
		return []string{cleanPath}
	}
	return segments
}

// drawFilterLine renders the query prompt with a block cursor and the match
// count on the right.
func (r *Renderer) drawFilterLine(state *statepkg.AppState, w int) {
	const y = 1
	style := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	cursorStyle := style.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)

	counter := fmt.Sprintf(" %d/%d", countEntries(state.Visible), len(state.Files))
	counterX := w - r.measureTextWidth(counter)
	maxX := w
	if counterX > w/2 {
		maxX = counterX
	} else {
		counter = ""
	}

	x := r.drawStyledStringClipped(0, y, maxX, "> ", style)

	query := sanitizeLine(state.FilterQuery)
	// Keep the cursor on screen by scrolling long queries to the left.
	query = r.truncateLeft(query, maxX-x-1)
	x = r.drawStyledStringClipped(x, y, maxX, query, style)
	x = r.drawStyledRune(x, y, maxX, '█', cursorStyle)
	if state.FilterQuery == "" {
		x = r.drawStyledStringClipped(x, y, maxX, " type to filter", style.Dim(true))
	}
	r.fillRow(x, y, maxX, style)

	if counter != "" {
		r.drawStyledStringClipped(counterX, y, w, counter, style.Dim(true))
	}
}

// countEntries counts visible rows that are listed entries, excluding "..".
func countEntries(visible []statepkg.VisibleEntry) int {
	n := len(visible)
	if n > 0 && visible[0].IsParent() {
		n--
	}
	return n
}

// drawFileList renders the visible entries from state.ScrollOffset.
func (r *Renderer) drawFileList(state *statepkg.AppState, w, h int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background)
	bottomLimit := h - 1
	if bottomLimit <= statepkg.ListStartY {
		return
	}

	displayY := statepkg.ListStartY
	for idx := state.ScrollOffset; idx < len(state.Visible) && displayY < bottomLimit; idx++ {
		r.drawEntry(state.Visible[idx], idx == state.SelectedIndex, displayY, w, baseStyle)
		displayY++
	}

	for y := displayY; y < bottomLimit; y++ {
		r.fillRow(0, y, w, baseStyle)
	}
}

func (r *Renderer) drawEntry(row statepkg.VisibleEntry, selected bool, y, w int, baseStyle tcell.Style) {
	f := row.Entry

	var rowStyle tcell.Style
	switch {
	case selected:
		rowStyle = tcell.StyleDefault.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
	case f.IsSymlink:
		rowStyle = baseStyle.Foreground(r.theme.SymlinkFg)
	case f.IsDir:
		rowStyle = baseStyle.Foreground(r.theme.DirectoryFg)
	default:
		rowStyle = baseStyle.Foreground(r.theme.FileFg)
	}
	if f.Hidden && !selected {
		rowStyle = rowStyle.Foreground(r.theme.HiddenFg)
	}
	matchStyle := rowStyle.Foreground(r.theme.MatchFg).Bold(true).Underline(true)
	if selected {
		matchStyle = rowStyle.Bold(true).Underline(true)
	}

	// Icon: @ for symlinks, / for directories, space for files
	icon := ' '
	if f.IsSymlink {
		icon = '@'
	} else if f.IsDir {
		icon = '/'
	}

	x := r.drawStyledRune(0, y, w, ' ', rowStyle)
	x = r.drawStyledRune(x, y, w, icon, rowStyle)
	x = r.drawStyledRune(x, y, w, ' ', rowStyle)

	segments := row.Runs.Segments()
	if len(segments) == 0 {
		segments = []searchpkg.Segment{{Text: f.Name}}
	}
	x = r.drawSegments(x, y, w, segments, rowStyle, matchStyle)
	r.fillRow(x, y, w, rowStyle)
}

// drawSegments draws highlighted name segments, ending with an ellipsis when
// the name does not fit before maxX.
func (r *Renderer) drawSegments(x, y, maxX int, segments []searchpkg.Segment, baseStyle, matchStyle tcell.Style) int {
	texts := make([]string, len(segments))
	total := 0
	for i, seg := range segments {
		texts[i] = sanitizeLine(seg.Text)
		total += r.measureTextWidth(texts[i])
	}

	limit := maxX
	truncated := x+total > maxX
	if truncated {
		limit = maxX - r.cachedRuneWidth('…')
	}

	lastStyle := baseStyle
	for i, text := range texts {
		style := baseStyle
		if segments[i].Matched {
			style = matchStyle
		}
		for _, ru := range text {
			if x+r.cachedRuneWidth(ru) > limit {
				break
			}
			x = r.drawStyledRune(x, y, limit, ru, style)
			lastStyle = style
		}
	}

	if truncated {
		x = r.drawStyledRune(x, y, maxX, '…', lastStyle)
	}
	return x
}

// drawStatusLine renders the bottom row: the selected path (or the last
// listing error) on the left, key hints on the right.
func (r *Renderer) drawStatusLine(state *statepkg.AppState, w, h int) {
	y := h - 1
	normalStyle := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	flashStyle := tcell.StyleDefault.Background(tcell.ColorGreen).Foreground(tcell.ColorBlack)

	style := normalStyle
	var text string
	switch {
	case state.LastError != nil:
		text = state.LastError.Error()
		style = normalStyle.Foreground(r.theme.ErrorFg)
	case !state.LastYankTime.IsZero() && r.now().Sub(state.LastYankTime) < YankFlashDuration:
		text = "copied " + state.CurrentFilePath()
		style = flashStyle
	default:
		text = state.CurrentFilePath()
		if entry := state.CurrentEntry(); entry != nil && entry.Entry.IsSymlink && !entry.IsParent() {
			text += " @"
		}
	}
	text = " " + sanitizeLine(text)

	help := buildFooterHelpText(state)
	helpWidth := r.measureTextWidth(help)
	pathMax := w
	if helpWidth > 0 && w-helpWidth >= w/2 {
		pathMax = w - helpWidth
	} else {
		help = ""
	}

	x := r.drawStyledStringClipped(0, y, pathMax, r.truncateLeft(text, pathMax), style)
	r.fillRow(x, y, pathMax, style)
	if help != "" {
		r.drawStyledStringClipped(pathMax, y, w, help, normalStyle.Dim(true))
	}
}
