package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rpick/internal/config"
)

// ColorTheme defines application colors.
type ColorTheme struct {
	Background  tcell.Color
	Foreground  tcell.Color
	SelectionBg tcell.Color
	SelectionFg tcell.Color
	DirectoryFg tcell.Color
	SymlinkFg   tcell.Color
	FileFg      tcell.Color
	HiddenFg    tcell.Color
	MatchFg     tcell.Color
	FooterBg    tcell.Color
	FooterFg    tcell.Color
	ErrorFg     tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:  tcell.ColorDefault,
		Foreground:  tcell.ColorDefault,
		SelectionBg: tcell.Color33,
		SelectionFg: tcell.ColorWhite,
		DirectoryFg: tcell.Color33,
		SymlinkFg:   tcell.Color51,
		FileFg:      tcell.ColorDefault,
		HiddenFg:    tcell.ColorLightSlateGray,
		MatchFg:     tcell.Color214, // orange, readable on both selection and plain rows
		FooterBg:    tcell.ColorDefault,
		FooterFg:    tcell.ColorDefault,
		ErrorFg:     tcell.ColorRed,
	}
}

// ApplyTheme overrides the palette with the colors set in cfg. Empty or
// unknown names keep the built-in color; "default" selects the terminal's.
func (t ColorTheme) ApplyTheme(cfg config.ThemeConfig) ColorTheme {
	override := func(dst *tcell.Color, name string) {
		if name == "" {
			return
		}
		if strings.EqualFold(name, "default") {
			*dst = tcell.ColorDefault
			return
		}
		if c := tcell.GetColor(name); c != tcell.ColorDefault {
			*dst = c
		}
	}
	override(&t.DirectoryFg, cfg.Directory)
	override(&t.FileFg, cfg.File)
	override(&t.SymlinkFg, cfg.Symlink)
	override(&t.SelectionBg, cfg.SelectionBg)
	override(&t.SelectionFg, cfg.SelectionFg)
	override(&t.MatchFg, cfg.Match)
	return t
}
