// Package pyemitter renders Python SDK call snippets for sample documents.
package pyemitter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/samples2sdk/internal/sample"
)

// Header is the fixed front-matter and client initialization emitted at the
// top of every generated page.
const Header = `---
label: Python SDK
lang: Python
---
import telnyx
telnyx.api_key = "YOUR_API_KEY"
`

// Options controls snippet rendering.
type Options struct {
	// Reference is the concatenated reference corpus. Contextual input only;
	// the renderer does not consult it.
	Reference string
}

// RenderPage produces the full documentation page for one raw sample
// document: the fixed header followed by the generated snippet.
func RenderPage(raw []byte, opts Options) string {
	return Header + "\n\n" + Snippet(raw, opts)
}

// Snippet generates the SDK call code for one raw sample document. A
// document that cannot be parsed yields a commented error line instead of
// code; the error is never surfaced to the caller so one bad sample cannot
// take down a batch.
func Snippet(raw []byte, opts Options) string {
	_ = opts
	s, err := sample.Parse(raw)
	if err != nil {
		return fmt.Sprintf("# Error generating SDK code: %v", err)
	}
	return render(s)
}

func render(s *sample.Sample) string {
	parsed := sample.ParsePath(s.Path)
	method := sample.ResolveMethod(s.Method, s.Path)
	target := parsed.TargetIdent()

	var lines []string

	// Placeholder assignment per path parameter, in path order.
	for _, p := range parsed.Params {
		lines = append(lines, fmt.Sprintf("%s = 'your_%s'", p.Var, p.Name))
	}

	hasBody := len(s.Body) > 0
	if hasBody {
		lines = append(lines, "params = {")
		for _, f := range s.Body {
			if str, ok := f.Value.(string); ok {
				lines = append(lines, fmt.Sprintf("    %s='%s'", f.Key, str))
			} else {
				lines = append(lines, fmt.Sprintf("    %s=%s", f.Key, pyLiteral(f.Value)))
			}
		}
		lines = append(lines, "}")
	}

	// The call dispatches on the joined literal tokens; a path with no
	// literal segments gets no call line at all.
	if target != "" {
		args := make([]string, 0, len(parsed.Params)+1)
		for _, p := range parsed.Params {
			args = append(args, fmt.Sprintf("%s=%s", p.Name, p.Var))
		}
		if hasBody {
			args = append(args, "**params")
		}
		lines = append(lines, fmt.Sprintf("response = telnyx.%s.%s(%s)", target, method, strings.Join(args, ", ")))
	}

	lines = append(lines, "print(response)")
	return strings.Join(lines, "\n")
}

// pyLiteral renders a decoded JSON value the way Python's str() shows the
// corresponding object, which is what the generated snippets contain for
// non-string body values.
func pyLiteral(v any) string {
	switch val := v.(type) {
	case nil:
		return "None"
	case bool:
		if val {
			return "True"
		}
		return "False"
	case json.Number:
		return val.String()
	case string:
		return pyQuote(val)
	case sample.Object:
		parts := make([]string, 0, len(val))
		for _, f := range val {
			parts = append(parts, fmt.Sprintf("%s: %s", pyQuote(f.Key), pyLiteral(f.Value)))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, pyLiteral(item))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprintf("%v", val)
	}
}

func pyQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "'", `\'`)
	return "'" + s + "'"
}
