package render

import "strings"

// Basic is the literal-substitution strategy. Each {{column}} placeholder
// whose column exists in the data is replaced by its value; everything
// else, including placeholders for unknown columns, passes through
// unchanged. Basic never fails.
type Basic struct{}

// Render implements Engine.
func (Basic) Render(template string, data map[string]string) (string, error) {
	if len(data) == 0 {
		return template, nil
	}

	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, "{{"+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template), nil
}

// Name implements Engine.
func (Basic) Name() string { return EngineBasic }
