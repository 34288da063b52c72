package render

import (
	"fmt"
	"regexp"
	"strings"
	texttemplate "text/template"
)

// Rich is the full templating strategy, backed by text/template. In
// addition to {{column}} placeholders it supports the whole template
// action syntax (conditionals, range loops, pipelines) over the record's
// fields. Columns missing from the record render as the empty string.
type Rich struct{}

// placeholderPattern matches the bare {{column}} shorthand. Anything more
// complex is already valid template syntax and is left untouched.
var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// reservedWords are template keywords and builtin functions that must not
// be rewritten as column references.
var reservedWords = map[string]struct{}{
	"if": {}, "else": {}, "end": {}, "range": {}, "with": {},
	"template": {}, "block": {}, "define": {}, "nil": {}, "true": {}, "false": {},
	"and": {}, "or": {}, "not": {}, "len": {}, "index": {}, "slice": {},
	"print": {}, "printf": {}, "println": {}, "call": {},
	"html": {}, "js": {}, "urlquery": {},
}

// Render implements Engine.
func (Rich) Render(template string, data map[string]string) (string, error) {
	tmpl, err := texttemplate.New("message").Option("missingkey=zero").Parse(expandShorthand(template))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplate, err)
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	return out.String(), nil
}

// Name implements Engine.
func (Rich) Name() string { return EngineRich }

// expandShorthand rewrites {{column}} to an explicit field lookup so that
// column names work without a leading dot and missing columns come out
// empty instead of erroring.
func expandShorthand(template string) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(m string) string {
		name := placeholderPattern.FindStringSubmatch(m)[1]
		if _, reserved := reservedWords[name]; reserved {
			return m
		}
		return `{{index . "` + name + `"}}`
	})
}
