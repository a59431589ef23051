// Package codegen turns a manifest of named templates into
// a generated Go source file of resolved string constants.
//
// Generation runs before the main compilation (typically
// via go:generate), so every constant is resolved exactly
// once, against the declarations file layered over the
// ambient environment, and any failure fails the build
// instead of the program. The resolved mapping can also be
// rendered as JSON for non-Go consumers of the build step.
//
// A typical directive:
//
//	//go:generate go run github.com/byte4ever/envstamp/codegen/cmd -manifest envstamp.yaml
package codegen
