// Package main provides the envstamp CLI. In manifest mode
// it generates a Go source file (or JSON mapping) of
// resolved constants; with --format it resolves a single
// template against the merged variable sources and prints
// the result.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/byte4ever/envstamp/codegen"
)

func run() error {
	const errCtx = "envstamp"

	var (
		manifest   string
		envFile    string
		format     string
		formatFile string
		output     string
		jsonOut    bool
	)

	flag.StringVar(
		&manifest, "manifest",
		codegen.DefaultManifestPath,
		"manifest declaring constants to generate",
	)

	flag.StringVar(
		&envFile, "env-file", "",
		"declarations file path (default: manifest's, then .env)",
	)

	flag.StringVar(
		&format, "format", "",
		"resolve a single template and skip the manifest",
	)

	flag.StringVar(
		&formatFile, "format-file", "",
		"file containing a single template to resolve",
	)

	flag.StringVar(
		&output, "output", "",
		"output path (--format default: stdout)",
	)

	flag.BoolVar(
		&jsonOut, "json", false,
		"emit the resolved mapping as JSON instead of Go source",
	)

	flag.Parse()

	if formatFile != "" && format != "" {
		return fmt.Errorf(
			"%s: only one of --format or"+
				" --format-file may be specified",
			errCtx,
		)
	}

	if formatFile != "" {
		content, err := os.ReadFile( //nolint:gosec // path from CLI flag
			formatFile,
		)
		if err != nil {
			return fmt.Errorf(
				"%s: reading format file: %w",
				errCtx, err,
			)
		}

		format = string(content)
	}

	if format != "" {
		if jsonOut {
			return fmt.Errorf(
				"%s: --json requires manifest mode",
				errCtx,
			)
		}

		return runFormat(envFile, format, output)
	}

	err := codegen.Run(codegen.Config{
		ManifestPath: manifest,
		EnvFile:      envFile,
		Output:       output,
		JSON:         jsonOut,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// runFormat resolves a single template and writes the
// result to the output path, or stdout when empty.
func runFormat(
	envFile string,
	format string,
	output string,
) error {
	const errCtx = "envstamp"

	result, err := codegen.Format(envFile, format)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if output != "" {
		err = os.WriteFile( //nolint:gosec // path from CLI flag
			output, []byte(result), 0o666,
		)
		if err != nil {
			return fmt.Errorf(
				"%s: writing output: %w",
				errCtx, err,
			)
		}

		return nil
	}

	_, err = os.Stdout.WriteString(result)
	if err != nil {
		return fmt.Errorf(
			"%s: writing to stdout: %w",
			errCtx, err,
		)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
