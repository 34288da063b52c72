// Package render personalizes message templates against recipient fields.
//
// Templates reference recipient columns with {{columnName}} placeholders,
// matched case-sensitively against the recipient file's header. Two
// interchangeable strategies implement the Engine interface:
//
//   - Basic performs literal placeholder substitution only. Placeholders
//     naming columns absent from the record are left in the output verbatim.
//   - Rich builds on text/template, adding conditionals and loops over the
//     record's fields. Missing columns render as the empty string.
//
// The strategy is a construction-time choice; both are pure functions of
// (template, record) with no I/O and no hidden state.
//
// The package also converts markdown message bodies to a sanitized HTML
// alternative part via ToHTML.
package render
