package sample

import (
	"regexp"
	"strings"
)

// braceSuffixRe captures whatever trails the first brace-delimited token in a
// name, to the end of the name.
var braceSuffixRe = regexp.MustCompile(`\{[^}]+\}(.*)`)

// CleanName simplifies a sample file stem so variants that differ only by a
// nested action or by text after a parameter token collapse to one page name.
// Collisions between distinct samples that clean to the same name are
// resolved upstream by the batch planner.
//
// The function is idempotent: cleaning a cleaned name is a no-op.
func CleanName(name string) string {
	// Truncate everything from "actions" onward at the next underscore.
	if strings.Contains(name, "actions") {
		parts := strings.Split(name, "actions")
		rest := parts[1]
		if i := strings.Index(rest, "_"); i >= 0 {
			rest = rest[:i]
		}
		name = parts[0] + rest
	}

	// Strip text trailing a {param} token.
	if m := braceSuffixRe.FindStringSubmatch(name); m != nil && m[1] != "" {
		name = strings.ReplaceAll(name, m[1], "")
	}

	return name
}
