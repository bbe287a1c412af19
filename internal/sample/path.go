package sample

import "strings"

// Param is a path parameter and the variable name that stands in for it in
// generated code.
type Param struct {
	Name string
	Var  string
}

// Token is one path segment: either a literal resource token or a parameter
// placeholder.
type Token struct {
	Text  string
	Param bool
}

// ParsedPath is the decomposition of an endpoint path template.
type ParsedPath struct {
	Tokens []Token
	Params []Param
}

// ParsePath splits a path template on "/" and classifies each segment. A
// segment is a parameter only when it is fully wrapped in braces; anything
// else, including malformed braces, passes through as a literal token.
func ParsePath(path string) ParsedPath {
	var parsed ParsedPath
	for _, part := range strings.Split(strings.Trim(path, "/"), "/") {
		if part == "" {
			continue
		}
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") && len(part) > 2 {
			name := part[1 : len(part)-1]
			parsed.Params = append(parsed.Params, Param{Name: name, Var: name})
			parsed.Tokens = append(parsed.Tokens, Token{Text: name, Param: true})
			continue
		}
		parsed.Tokens = append(parsed.Tokens, Token{Text: part})
	}
	return parsed
}

// TargetIdent joins the literal tokens into the identifier of the SDK object
// the generated call dispatches on. Hyphens become underscores. Empty when
// the path has no literal segments.
func (p ParsedPath) TargetIdent() string {
	parts := make([]string, 0, len(p.Tokens))
	for _, tok := range p.Tokens {
		if tok.Param {
			continue
		}
		parts = append(parts, tok.Text)
	}
	return strings.ReplaceAll(strings.Join(parts, "_"), "-", "_")
}

// httpToSDK maps an HTTP verb to its candidate SDK operations, most specific
// first.
var httpToSDK = map[string][]string{
	"get":    {"retrieve", "list"},
	"post":   {"create"},
	"patch":  {"update"},
	"put":    {"update"},
	"delete": {"del"},
}

// ResolveMethod picks the SDK operation for an HTTP verb and raw path
// template. A get against an all-literal path is a list; otherwise the verb's
// first candidate wins, with create as the fallback for unknown verbs.
func ResolveMethod(httpMethod, path string) string {
	verb := strings.ToLower(strings.TrimSpace(httpMethod))
	if verb == "get" && !strings.Contains(path, "{") {
		return "list"
	}
	if candidates := httpToSDK[verb]; len(candidates) > 0 {
		return candidates[0]
	}
	return "create"
}
