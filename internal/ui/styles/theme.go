package styles

import (
	"image/color"
	"os"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/raphi011/gitoverit/internal/config"
)

// Theme is the palette the table and progress output are drawn with.
type Theme struct {
	Primary color.Color // diff totals, submodules
	Accent  color.Color // untracked files
	Success color.Color // staged files, ahead, clean
	Error   color.Color // conflicts, alerts, failed analyses
	Muted   color.Color // behind, legend, fetch errors
	Normal  color.Color
	Info    color.Color
	Warning color.Color // modified files
}

// palette builds a Theme from colors in field order.
func palette(primary, accent, success, errc, muted, normal, info, warning string) Theme {
	return Theme{
		Primary: lipgloss.Color(primary),
		Accent:  lipgloss.Color(accent),
		Success: lipgloss.Color(success),
		Error:   lipgloss.Color(errc),
		Muted:   lipgloss.Color(muted),
		Normal:  lipgloss.Color(normal),
		Info:    lipgloss.Color(info),
		Warning: lipgloss.Color(warning),
	}
}

// DefaultTheme is used when no theme is configured.
var DefaultTheme = palette("62", "212", "82", "196", "240", "252", "244", "214")

// noneTheme leaves every color to the terminal; bold and italic remain.
var noneTheme = Theme{
	Primary: lipgloss.NoColor{},
	Accent:  lipgloss.NoColor{},
	Success: lipgloss.NoColor{},
	Error:   lipgloss.NoColor{},
	Muted:   lipgloss.NoColor{},
	Normal:  lipgloss.NoColor{},
	Info:    lipgloss.NoColor{},
	Warning: lipgloss.NoColor{},
}

// variants holds the dark and light palette of a theme. A nil variant
// falls back to the other one.
type variants struct {
	dark, light *Theme
}

func dark(t Theme) variants { return variants{dark: &t} }

func darkLight(d, l Theme) variants { return variants{dark: &d, light: &l} }

func (v variants) pick(isDark bool) Theme {
	if v.light == nil || (isDark && v.dark != nil) {
		return *v.dark
	}
	return *v.light
}

// themes is keyed by the names in config.ValidThemeNames.
var themes = map[string]variants{
	"default": dark(DefaultTheme),
	"none":    darkLight(noneTheme, noneTheme),
	"dracula": dark(palette("#bd93f9", "#ff79c6", "#50fa7b", "#ff5555", "#6272a4", "#f8f8f2", "#8be9fd", "#ffb86c")),
	"nord": darkLight(
		palette("#88c0d0", "#b48ead", "#a3be8c", "#bf616a", "#4c566a", "#eceff4", "#81a1c1", "#ebcb8b"),
		palette("#5e81ac", "#b48ead", "#a3be8c", "#bf616a", "#9a9a9a", "#2e3440", "#81a1c1", "#d08770"),
	),
	"gruvbox": darkLight(
		palette("#83a598", "#d3869b", "#b8bb26", "#fb4934", "#665c54", "#ebdbb2", "#8ec07c", "#fabd2f"),
		palette("#076678", "#8f3f71", "#79740e", "#9d0006", "#928374", "#3c3836", "#427b58", "#b57614"),
	),
	"catppuccin": darkLight(
		palette("#89b4fa", "#f5c2e7", "#a6e3a1", "#f38ba8", "#6c7086", "#cdd6f4", "#94e2d5", "#fab387"),
		palette("#1e66f5", "#ea76cb", "#40a02b", "#d20f39", "#9ca0b0", "#4c4f69", "#179299", "#fe640b"),
	),
}

// Init applies the configured theme to the package styles. The config has
// been validated, so unknown names fall back to the default theme. Mode
// "auto" (or empty) queries the terminal background.
func Init(cfg config.ThemeConfig) {
	v, ok := themes[strings.ToLower(cfg.Name)]
	if !ok {
		v = themes["default"]
	}

	var isDark bool
	switch strings.ToLower(cfg.Mode) {
	case "dark":
		isDark = true
	case "light":
		isDark = false
	default:
		isDark = lipgloss.HasDarkBackground(os.Stdin, os.Stderr)
	}

	t := v.pick(isDark)
	for _, o := range []struct {
		value string
		dst   *color.Color
	}{
		{cfg.Primary, &t.Primary},
		{cfg.Accent, &t.Accent},
		{cfg.Success, &t.Success},
		{cfg.Error, &t.Error},
		{cfg.Muted, &t.Muted},
		{cfg.Normal, &t.Normal},
		{cfg.Info, &t.Info},
		{cfg.Warning, &t.Warning},
	} {
		if o.value != "" {
			*o.dst = lipgloss.Color(o.value)
		}
	}

	applyTheme(t)
}

// applyTheme rebuilds the package colors and styles from t.
func applyTheme(t Theme) {
	Primary, Accent, Success, Error = t.Primary, t.Accent, t.Success, t.Error
	Muted, Normal, Info, Warning = t.Muted, t.Normal, t.Info, t.Warning

	PrimaryStyle = lipgloss.NewStyle().Foreground(t.Primary)
	AccentStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(t.Success)
	ErrorStyle = lipgloss.NewStyle().Foreground(t.Error)
	MutedStyle = lipgloss.NewStyle().Foreground(t.Muted)
	NormalStyle = lipgloss.NewStyle().Foreground(t.Normal)
	InfoStyle = lipgloss.NewStyle().Foreground(t.Info).Italic(true)
	WarningStyle = lipgloss.NewStyle().Foreground(t.Warning)

	StagedStyle = SuccessStyle
	ModifiedStyle = WarningStyle
	DiffStyle = PrimaryStyle
	UntrackedStyle = lipgloss.NewStyle().Foreground(t.Accent)
	ConflictedStyle = ErrorStyle
	SubmoduleStyle = PrimaryStyle
	AheadStyle = SuccessStyle
	BehindStyle = MutedStyle
	AlertStyle = ErrorStyle.Bold(true)
	CleanStyle = SuccessStyle
}
