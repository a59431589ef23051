package codegen

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"go/format"
	"log/slog"
	"os"
	"sort"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/byte4ever/envstamp/envfile"
	"github.com/byte4ever/envstamp/interp"
)

// Config holds settings for one generation run.
type Config struct {
	// ManifestPath is the manifest to generate from.
	ManifestPath string

	// EnvFile overrides the manifest's declarations file
	// path when non-empty.
	EnvFile string

	// Output overrides the manifest's output path when
	// non-empty.
	Output string

	// JSON emits the resolved mapping as JSON instead of
	// Go source.
	JSON bool
}

// Run loads the manifest, builds the merged variable map,
// resolves every constant, and writes the output file. The
// write is skipped when the file already holds identical
// content, so downstream builds see no mtime churn.
func Run(cfg Config) error {
	const errCtx = "generating"

	ma, err := LoadManifest(cfg.ManifestPath)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	envPath := ma.EnvFile
	if cfg.EnvFile != "" {
		envPath = cfg.EnvFile
	}

	if envPath == "" {
		envPath = envfile.DefaultPath
	}

	vars, err := envfile.Resolve(envPath)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	consts, err := ResolveConstants(ma, vars)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	var content []byte

	if cfg.JSON {
		content, err = RenderJSON(consts)
	} else {
		content, err = RenderGo(ma.Package, consts)
	}

	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	out := ma.Output
	if cfg.Output != "" {
		out = cfg.Output
	}

	written, err := WriteFile(out, content)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if written {
		slog.Info("wrote generated file", "path", out)
	} else {
		slog.Info("output unchanged", "path", out)
	}

	return nil
}

// Format resolves a single template against the merged
// variable sources. Empty envPath means the default
// declarations file.
func Format(envPath string, template string) (string, error) {
	const errCtx = "formatting"

	if envPath == "" {
		envPath = envfile.DefaultPath
	}

	vars, err := envfile.Resolve(envPath)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	result, err := interp.Resolve(template, vars)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return result, nil
}

// ResolveConstants resolves every constant template in the
// manifest against vars. Constants are processed in
// identifier order so the first error reported is stable
// across runs.
func ResolveConstants(
	ma *Manifest,
	vars map[string]string,
) (map[string]string, error) {
	const errCtx = "resolving constants"

	resolved := make(map[string]string, len(ma.Constants))

	for _, name := range sortedNames(ma.Constants) {
		value, err := interp.Resolve(ma.Constants[name], vars)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %s: %w", errCtx, name, err,
			)
		}

		resolved[name] = value
	}

	return resolved, nil
}

// RenderGo renders the resolved constants as a gofmt-clean
// generated Go source file with a single const block sorted
// by identifier.
func RenderGo(
	pkg string,
	consts map[string]string,
) ([]byte, error) {
	const errCtx = "rendering go source"

	var buf bytes.Buffer

	buf.WriteString(
		"// Code generated by envstamp; DO NOT EDIT.\n\n",
	)
	fmt.Fprintf(&buf, "package %s\n\nconst (\n", pkg)

	for _, name := range sortedNames(consts) {
		fmt.Fprintf(
			&buf, "\t%s = %s\n",
			name, strconv.Quote(consts[name]),
		)
	}

	buf.WriteString(")\n")

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return src, nil
}

// RenderJSON renders the resolved constants as indented
// JSON with a trailing newline.
func RenderJSON(consts map[string]string) ([]byte, error) {
	const errCtx = "rendering json"

	content, err := json.MarshalIndent(consts, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return append(content, '\n'), nil
}

// WriteFile writes content to path unless the file already
// holds identical content. Reports whether a write
// happened.
func WriteFile(path string, content []byte) (bool, error) {
	const errCtx = "writing generated file"

	existing, err := os.ReadFile(path) //nolint:gosec // path from manifest
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("%s: %w", errCtx, err)
	}

	if err == nil &&
		sha256.Sum256(existing) == sha256.Sum256(content) {
		return false, nil
	}

	//nolint:gosec // generated source is world-readable
	if err := os.WriteFile(path, content, 0o666); err != nil {
		return false, fmt.Errorf("%s: %w", errCtx, err)
	}

	return true, nil
}

func sortedNames(m map[string]string) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
