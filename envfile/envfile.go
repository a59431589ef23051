package envfile

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultPath is the conventional declarations file name,
// resolved relative to the directory the generator runs in.
const DefaultPath = ".env"

// DuplicateError reports a name declared more than once in
// the declarations file. Line is the 1-based line of the
// second declaration.
type DuplicateError struct {
	Name string
	File string
	Line int
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf(
		"%s:%d: duplicate declaration of %q",
		e.File, e.Line, e.Name,
	)
}

// ParseError reports a declarations file line that does not
// hold a single name=value declaration.
type ParseError struct {
	File   string
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf(
		"%s:%d: malformed declaration: %s",
		e.File, e.Line, e.Reason,
	)
}

// Resolve builds the merged variable map from the
// declarations file at path and the current process
// environment. The file's values win; the environment only
// adds names the file does not declare.
func Resolve(path string) (map[string]string, error) {
	return ResolveWith(path, os.Environ())
}

// ResolveWith is Resolve with an explicit ambient
// environment snapshot in os.Environ form ("NAME=value").
// The snapshot is never mutated.
func ResolveWith(
	path string,
	environ []string,
) (map[string]string, error) {
	const errCtx = "resolving variable sources"

	vars, err := Load(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	for _, kv := range environ {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}

		if _, ok := vars[parts[0]]; !ok {
			vars[parts[0]] = parts[1]
		}
	}

	return vars, nil
}

// Load parses the declarations file at path into a variable
// map. A missing file yields an empty map with no error.
func Load(path string) (map[string]string, error) {
	const errCtx = "loading declarations file"

	vars := make(map[string]string)

	content, err := os.ReadFile(path) //nolint:gosec // path from CLI flags
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return vars, nil
		}

		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	lines := strings.Split(
		strings.ReplaceAll(string(content), "\r\n", "\n"),
		"\n",
	)

	for no, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		// Each remaining line must be exactly one
		// declaration; godotenv owns the line grammar
		// (quoting, escapes, "export " prefix).
		decl, err := godotenv.Unmarshal(line)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %w", errCtx,
				&ParseError{
					File:   path,
					Line:   no + 1,
					Reason: err.Error(),
				},
			)
		}

		if len(decl) != 1 {
			return nil, fmt.Errorf(
				"%s: %w", errCtx,
				&ParseError{
					File:   path,
					Line:   no + 1,
					Reason: "expected a single name=value declaration",
				},
			)
		}

		for name, value := range decl {
			if name == "" {
				return nil, fmt.Errorf(
					"%s: %w", errCtx,
					&ParseError{
						File:   path,
						Line:   no + 1,
						Reason: "missing variable name",
					},
				)
			}

			if _, ok := vars[name]; ok {
				return nil, fmt.Errorf(
					"%s: %w", errCtx,
					&DuplicateError{
						Name: name,
						File: path,
						Line: no + 1,
					},
				)
			}

			vars[name] = value
		}
	}

	return vars, nil
}
