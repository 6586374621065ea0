// Package presentation holds the single category -> icon/color mapping
// shared by every component that decorates blocks. Lookups always resolve:
// unknown categories fall back to a neutral default.
package presentation

type Style struct {
	Icon  string
	Color string
}

type Mapping struct {
	styles map[string]Style
	def    Style
}

var defaultStyles = map[string]Style{
	"Trabajo":           {Icon: "briefcase", Color: "#3b82f6"},
	"Ejercicio":         {Icon: "dumbbell", Color: "#10b981"},
	"Lectura":           {Icon: "book", Color: "#8b5cf6"},
	"Planificación":     {Icon: "clipboard", Color: "#f59e0b"},
	"Aprendizaje":       {Icon: "graduation-cap", Color: "#06b6d4"},
	"Meditación":        {Icon: "lotus", Color: "#84cc16"},
	"Tareas personales": {Icon: "check", Color: "#ef4444"},
	"Creatividad":       {Icon: "palette", Color: "#ec4899"},
	"Descanso activo":   {Icon: "leaf", Color: "#6366f1"},
}

func Default() *Mapping {
	return &Mapping{
		styles: defaultStyles,
		def:    Style{Icon: "star", Color: "#6b7280"},
	}
}

func New(styles map[string]Style, def Style) *Mapping {
	return &Mapping{
		styles: styles,
		def:    def,
	}
}

func (m *Mapping) Lookup(category string) Style {
	if s, ok := m.styles[category]; ok {
		return s
	}
	return m.def
}
