package decor

import (
	"github.com/emberlog/ember/core"
	"github.com/emberlog/ember/ir"
)

// Theme maps semantic tags to colors. It is the only shipped visual
// decorator: it assigns ir.Style to segments and container nodes and never
// touches text or tree shape. Segment tags take precedence over the tags of
// the node that carries them, and segments that already have an explicit
// style keep it.
type Theme struct {
	Name string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// Frame colors
	Border string
	Rule   string

	// Level colors, keyed by Level.String()
	LevelColors map[string]string
}

var _ Decorator = (*Theme)(nil)

// Class returns ClassVisual.
func (t *Theme) Class() Class { return ClassVisual }

// Apply walks the tree and fills in unstyled segments and containers.
func (t *Theme) Apply(doc *ir.Document, ev *core.Event, _ *ir.Arena) {
	level := ""
	if ev != nil {
		level = ev.Level.String()
	} else if doc.Meta != nil {
		level = doc.Meta["level"]
	}
	ir.WalkDocument(doc, func(n ir.Node) {
		switch v := n.(type) {
		case *ir.HeaderNode:
			t.styleSegments(v.Segments, v.Tags, level)
		case *ir.MessageNode:
			t.styleSegments(v.Segments, v.Tags, level)
		case *ir.ErrorNode:
			t.styleSegments(v.Segments, v.Tags.With(ir.TagError), level)
		case *ir.FooterNode:
			t.styleSegments(v.Segments, v.Tags, level)
		case *ir.MetaNode:
			t.styleSegments(v.Segments, v.Tags, level)
		case *ir.BoxNode:
			if v.Style.IsZero() {
				v.Style = ir.Style{Color: t.Border}
			}
		case *ir.IndentNode:
			if v.Style.IsZero() {
				v.Style = ir.Style{Color: t.Border}
			}
		case *ir.DecoratedNode:
			t.styleSegments(v.Leading, v.Tags, level)
			t.styleSegments(v.Trailing, v.Tags, level)
		case *ir.FillerNode:
			if v.Style.IsZero() {
				v.Style = ir.Style{Color: t.Rule}
			}
		}
	})
}

func (t *Theme) styleSegments(segs []ir.StyledText, nodeTags ir.Tag, level string) {
	for i := range segs {
		if !segs[i].Style.IsZero() {
			continue
		}
		tags := segs[i].Tags
		if tags == ir.TagNone {
			tags = nodeTags
		}
		segs[i].Style = t.styleFor(tags, level)
	}
}

// styleFor picks one style for a tag set, most specific tag first.
func (t *Theme) styleFor(tags ir.Tag, level string) ir.Style {
	switch {
	case tags.Has(ir.TagLevel):
		return ir.Style{Color: t.levelColor(level), Bold: true}
	case tags.Has(ir.TagError):
		return ir.Style{Color: t.Danger, Bold: true}
	case tags.Has(ir.TagHeader):
		return ir.Style{Color: t.Accent, Bold: true}
	case tags.Has(ir.TagLogger):
		return ir.Style{Color: t.Accent}
	case tags.Has(ir.TagTimestamp):
		return ir.Style{Color: t.Muted}
	case tags.Has(ir.TagStackFrame):
		return ir.Style{Color: t.Faint}
	case tags.Has(ir.TagOrigin):
		return ir.Style{Color: t.Faint}
	case tags.Has(ir.TagKey):
		return ir.Style{Color: t.Info}
	case tags.Has(ir.TagPunctuation):
		return ir.Style{Color: t.Muted}
	case tags.Has(ir.TagFill):
		return ir.Style{Color: t.Rule}
	case tags.Has(ir.TagBorder):
		return ir.Style{Color: t.Border}
	case tags.Has(ir.TagPrefix), tags.Has(ir.TagSuffix):
		return ir.Style{Color: t.Muted}
	case tags.Has(ir.TagValue), tags.Has(ir.TagMessage):
		return ir.Style{Color: t.Text}
	default:
		return ir.Style{}
	}
}

func (t *Theme) levelColor(level string) string {
	if c, ok := t.LevelColors[level]; ok {
		return c
	}
	return t.Muted
}

// Theme definitions

var themes = map[string]*Theme{
	"ember-dark":  emberDarkTheme(),
	"ember-light": emberLightTheme(),
	"slate":       slateTheme(),
}

var themeOrder = []string{"ember-dark", "ember-light", "slate"}

// GetTheme returns a theme by name. Unknown names fall back to ember-dark.
func GetTheme(name string) *Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["ember-dark"]
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func emberDarkTheme() *Theme {
	// Gruvbox Material palette: https://github.com/sainnhe/gruvbox-material
	return &Theme{
		Name: "ember-dark",

		Text:    "#e8e3d3", // fg0
		Muted:   "#a89984", // grey2
		Faint:   "#7c6f64", // grey0
		Accent:  "#e78a4e", // orange
		Success: "#a9b665", // green
		Warning: "#d8a657", // yellow
		Danger:  "#ea6962", // red
		Info:    "#7daea3", // aqua

		Border: "#5a524c", // bg5
		Rule:   "#45403d", // bg3

		LevelColors: map[string]string{
			"DEBUG": "#928374", // grey1
			"INFO":  "#7daea3", // aqua
			"WARN":  "#d8a657", // yellow
			"ERROR": "#ea6962", // red
			"FATAL": "#d3869b", // purple
		},
	}
}

func emberLightTheme() *Theme {
	// Gruvbox Material light palette: https://github.com/sainnhe/gruvbox-material
	return &Theme{
		Name: "ember-light",

		Text:    "#654735", // fg0
		Muted:   "#928374", // grey1
		Faint:   "#a89984", // grey2
		Accent:  "#c35e0a", // orange
		Success: "#6c782e", // green
		Warning: "#b47109", // yellow
		Danger:  "#c14a4a", // red
		Info:    "#4c7a5d", // aqua

		Border: "#bdae93", // bg7
		Rule:   "#d5c4a1", // bg5

		LevelColors: map[string]string{
			"DEBUG": "#a89984", // grey2
			"INFO":  "#45707a", // blue
			"WARN":  "#b47109", // yellow
			"ERROR": "#c14a4a", // red
			"FATAL": "#945e80", // purple
		},
	}
}

func slateTheme() *Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return &Theme{
		Name: "slate",

		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Faint:   "#64748b", // slate-500
		Accent:  "#38bdf8", // sky-400
		Success: "#22c55e", // green-500
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500
		Info:    "#06b6d4", // cyan-500

		Border: "#334155", // slate-700
		Rule:   "#1e293b", // slate-800

		LevelColors: map[string]string{
			"DEBUG": "#64748b", // slate-500
			"INFO":  "#38bdf8", // sky-400
			"WARN":  "#f59e0b", // amber-500
			"ERROR": "#ef4444", // red-500
			"FATAL": "#f43f5e", // rose-500
		},
	}
}
