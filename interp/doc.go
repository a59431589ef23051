// Package interp resolves templates against a variable map.
//
// Two surface forms share one decision point: a template
// without any '{' is a single variable name looked up
// directly; a template containing '{' is scanned for
// single-brace {NAME} placeholders, with literal text
// outside braces passed through verbatim. There is no
// escape for literal braces, and a '}' outside a
// placeholder is an ordinary character.
//
// Every failure is fatal to the caller's build: an
// undefined name, a '{' without a matching '}', or a
// nested '{' inside a placeholder. There is no default
// value mechanism.
package interp
