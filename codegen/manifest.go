package codegen

import (
	"errors"
	"fmt"
	"go/token"
	"os"

	"github.com/goccy/go-yaml"
)

// DefaultManifestPath is the conventional manifest name,
// resolved relative to the directory the generator runs in.
const DefaultManifestPath = "envstamp.yaml"

// Manifest declares the constants to generate and where to
// put them.
type Manifest struct {
	// Package is the target Go package name.
	Package string `yaml:"package"`

	// Output is the generated file path.
	Output string `yaml:"output"`

	// EnvFile optionally overrides the declarations file
	// path (default ".env").
	EnvFile string `yaml:"env_file"`

	// Constants maps Go constant identifiers to templates.
	Constants map[string]string `yaml:"constants"`
}

// LoadManifest reads and validates the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	const errCtx = "loading manifest"

	content, err := os.ReadFile(path) //nolint:gosec // path from CLI flags
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	var ma Manifest

	if err := yaml.Unmarshal(content, &ma); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := ma.validate(); err != nil {
		return nil, fmt.Errorf(
			"%s: %s: %w", errCtx, path, err,
		)
	}

	return &ma, nil
}

func (ma *Manifest) validate() error {
	if ma.Package == "" {
		return errors.New("missing package name")
	}

	if !token.IsIdentifier(ma.Package) {
		return fmt.Errorf(
			"package name %q is not a valid Go identifier",
			ma.Package,
		)
	}

	if ma.Output == "" {
		return errors.New("missing output path")
	}

	if len(ma.Constants) == 0 {
		return errors.New("no constants declared")
	}

	for name := range ma.Constants {
		if !token.IsIdentifier(name) {
			return fmt.Errorf(
				"constant name %q is not a valid Go identifier",
				name,
			)
		}
	}

	return nil
}
