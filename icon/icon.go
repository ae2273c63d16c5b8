// Package icon provides a flexible multi-variant rendering engine for UI symbols and feedback indicators.
//
// Icons can be displayed as emoji, nerd-font glyphs, plain ASCII, kaomoji,
// or Unicode squares depending on user preference.
package icon

import (
	"github.com/spf13/viper"
	"github.com/vidqueue/vidqueue/key"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants returns a slice of all registered icon style identifiers.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Warn
	Video
	Audio
	Finish
	Skip
)

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

var icons = map[Icon]*iconDef{
	Success:  {emoji: "✅", nerd: "\uf00c", plain: "✓", kaomoji: "(ᵔ◡ᵔ)", squares: "🟩"},
	Fail:     {emoji: "❌", nerd: "\uf00d", plain: "✗", kaomoji: "(╥﹏╥)", squares: "🟥"},
	Progress: {emoji: "⏳", nerd: "\uf110", plain: "...", kaomoji: "(・_・;)", squares: "🟦"},
	Warn:     {emoji: "⚠️", nerd: "\uf071", plain: "!", kaomoji: "(°ロ°)", squares: "🟨"},
	Video:    {emoji: "🎞️", nerd: "\uf03d", plain: "video", kaomoji: "(⌐■_■)", squares: "🟪"},
	Audio:    {emoji: "🎧", nerd: "\uf025", plain: "audio", kaomoji: "(♪♫)", squares: "🟫"},
	Finish:   {emoji: "🏁", nerd: "\uf11e", plain: "done", kaomoji: "\\(^o^)/", squares: "⬛"},
	Skip:     {emoji: "⏭️", nerd: "\uf051", plain: "skip", kaomoji: "(￣ー￣)", squares: "⬜"},
}

// Get retrieves the representation for the receiver based on the icons variant configuration.
func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Get returns the rendered string for a specified Icon identifier from the global registry.
func Get(i Icon) string {
	return icons[i].Get()
}
