package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

func (r *Renderer) cachedRuneWidth(ru rune) int {
	if ru < 128 {
		r.runeWidthCacheMu.RLock()
		width := r.runeWidthCache[ru]
		r.runeWidthCacheMu.RUnlock()

		if width == 0 && ru != 0 {
			actualWidth := runewidth.RuneWidth(ru)
			if actualWidth < 0 {
				actualWidth = 0
			}
			r.runeWidthCacheMu.Lock()
			r.runeWidthCache[ru] = actualWidth + 1
			r.runeWidthCacheMu.Unlock()
			return actualWidth
		}
		return width - 1
	}

	if cached, ok := r.runeWidthWide.Load(ru); ok {
		return cached.(int)
	}

	width := runewidth.RuneWidth(ru)
	if width < 0 {
		width = 0
	}
	r.runeWidthWide.Store(ru, width)
	return width
}

func (r *Renderer) measureTextWidth(text string) int {
	width := 0
	for _, ru := range text {
		width += r.cachedRuneWidth(ru)
	}
	return width
}

const ellipsis = "…"

// truncateLeft keeps the end of text (the most useful part of a path),
// replacing the dropped prefix with an ellipsis.
func (r *Renderer) truncateLeft(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if r.measureTextWidth(text) <= width {
		return text
	}

	ellipsisWidth := r.cachedRuneWidth('…')
	if ellipsisWidth <= 0 {
		ellipsisWidth = 1
	}
	if width <= ellipsisWidth {
		return ellipsis
	}

	available := width - ellipsisWidth
	runes := []rune(text)
	start := len(runes)
	currentWidth := 0
	for start > 0 {
		ruWidth := r.cachedRuneWidth(runes[start-1])
		if currentWidth+ruWidth > available {
			break
		}
		currentWidth += ruWidth
		start--
	}

	return ellipsis + string(runes[start:])
}

func (r *Renderer) drawStyledRune(x, y, maxX int, ru rune, style tcell.Style) int {
	if x >= maxX {
		return x
	}

	width := r.cachedRuneWidth(ru)
	if width <= 0 {
		width = 1
	}
	if x+width > maxX {
		// A wide rune that does not fit is replaced by padding.
		for ; x < maxX; x++ {
			r.screen.SetContent(x, y, ' ', nil, style)
		}
		return maxX
	}

	r.screen.SetContent(x, y, ru, nil, style)
	for w := 1; w < width; w++ {
		r.screen.SetContent(x+w, y, ' ', nil, style)
	}
	return x + width
}

func (r *Renderer) drawStyledStringClipped(startX, y, maxX int, text string, style tcell.Style) int {
	if maxX <= startX {
		return startX
	}

	x := startX
	for _, ru := range text {
		if x >= maxX {
			break
		}
		x = r.drawStyledRune(x, y, maxX, ru, style)
	}
	return x
}

func (r *Renderer) fillRow(startX, y, maxX int, style tcell.Style) {
	for x := startX; x < maxX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}
