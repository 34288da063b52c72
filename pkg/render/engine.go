package render

import "fmt"

// Engine renders a template against one recipient's fields.
// Implementations must be pure: no I/O and no mutation of data.
type Engine interface {
	// Render substitutes recipient fields into the template text.
	Render(template string, data map[string]string) (string, error)

	// Name returns the engine's configuration name.
	Name() string
}

// Engine configuration names.
const (
	EngineBasic = "basic"
	EngineRich  = "rich"
)

// NewEngine returns the engine for a configuration name.
// An empty name selects the rich engine.
func NewEngine(name string) (Engine, error) {
	switch name {
	case EngineRich, "":
		return Rich{}, nil
	case EngineBasic:
		return Basic{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
}
