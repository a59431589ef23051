package interp

import (
	"fmt"
	"io"
	"strings"

	"github.com/valyala/fasttemplate"
)

const (
	startTag = "{"
	endTag   = "}"
)

// UndefinedError reports a referenced name absent from the
// variable map.
type UndefinedError struct {
	Name     string
	Template string
}

func (e *UndefinedError) Error() string {
	return fmt.Sprintf(
		"undefined variable %q in template %q",
		e.Name, e.Template,
	)
}

// MalformedError reports an unterminated or nested
// placeholder.
type MalformedError struct {
	Template string
	Reason   string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf(
		"malformed placeholder in template %q: %s",
		e.Template, e.Reason,
	)
}

// Resolve substitutes {NAME} placeholders in template with
// values from vars. If template contains no '{' at all, the
// whole string is one variable name and its value is
// returned directly. Lookups are case-sensitive and names
// are matched verbatim, with no trimming.
func Resolve(
	template string,
	vars map[string]string,
) (string, error) {
	const errCtx = "resolving template"

	if !strings.Contains(template, startTag) {
		value, ok := vars[template]
		if !ok {
			return "", fmt.Errorf(
				"%s: %w", errCtx,
				&UndefinedError{
					Name:     template,
					Template: template,
				},
			)
		}

		return value, nil
	}

	tpl, err := fasttemplate.NewTemplate(
		template, startTag, endTag,
	)
	if err != nil {
		// The only parse failure is a '{' without a
		// matching '}'.
		return "", fmt.Errorf(
			"%s: %w", errCtx,
			&MalformedError{
				Template: template,
				Reason:   "missing closing '}'",
			},
		)
	}

	var out strings.Builder

	_, err = tpl.ExecuteFunc(
		&out,
		func(w io.Writer, tag string) (int, error) {
			if strings.Contains(tag, startTag) {
				return 0, &MalformedError{
					Template: template,
					Reason: fmt.Sprintf(
						"nested '{' in placeholder %q",
						tag,
					),
				}
			}

			value, ok := vars[tag]
			if !ok {
				return 0, &UndefinedError{
					Name:     tag,
					Template: template,
				}
			}

			return w.Write([]byte(value))
		},
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return out.String(), nil
}
