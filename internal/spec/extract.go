package spec

import (
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// SampleDoc is the JSON document written for one operation. It matches the
// shape the generator consumes.
type SampleDoc struct {
	Method  string      `json:"method"`
	Path    string      `json:"path"`
	Request *RequestDoc `json:"request,omitempty"`
}

// RequestDoc wraps the request body mapping.
type RequestDoc struct {
	Body map[string]any `json:"body"`
}

// Extracted pairs a sample document with its relative output location.
type Extracted struct {
	RelPath string // slash-separated, relative to the samples root
	Doc     SampleDoc
}

// Extract flattens an OpenAPI document into sample documents, one per
// operation, in deterministic order: paths sorted, methods in a fixed
// sequence. Only the verbs the generator understands are emitted.
func Extract(doc *openapi3.T) []Extracted {
	if doc == nil || doc.Paths == nil {
		return nil
	}

	pathKeys := make([]string, 0, len(doc.Paths))
	for p := range doc.Paths {
		pathKeys = append(pathKeys, p)
	}
	sort.Strings(pathKeys)

	var out []Extracted
	for _, p := range pathKeys {
		item := doc.Paths[p]
		if item == nil {
			continue
		}
		ops := []struct {
			method string
			op     *openapi3.Operation
		}{
			{"get", item.Get},
			{"post", item.Post},
			{"put", item.Put},
			{"patch", item.Patch},
			{"delete", item.Delete},
		}
		for _, pair := range ops {
			if pair.op == nil {
				continue
			}
			sd := SampleDoc{Method: pair.method, Path: p}
			if body := requestBodyExample(pair.op); len(body) > 0 {
				sd.Request = &RequestDoc{Body: body}
			}
			out = append(out, Extracted{RelPath: sampleRelPath(p, pair.method), Doc: sd})
		}
	}
	return out
}

// requestBodyExample pulls a JSON request body example for an operation,
// preferring an explicit example and falling back to one synthesized from the
// schema.
func requestBodyExample(op *openapi3.Operation) map[string]any {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	media := op.RequestBody.Value.Content.Get("application/json")
	if media == nil {
		return nil
	}
	if m, ok := media.Example.(map[string]any); ok && len(m) > 0 {
		return m
	}
	if media.Schema != nil && media.Schema.Value != nil {
		schema := media.Schema.Value
		if m, ok := schema.Example.(map[string]any); ok && len(m) > 0 {
			return m
		}
		if v, ok := exampleForSchema(schema, 3).(map[string]any); ok && len(v) > 0 {
			return v
		}
	}
	return nil
}

// exampleForSchema synthesizes a placeholder value for a schema, bounded by
// depth so cyclic refs cannot recurse forever.
func exampleForSchema(schema *openapi3.Schema, depth int) any {
	if schema == nil || depth <= 0 {
		return nil
	}
	if schema.Example != nil {
		return schema.Example
	}
	if len(schema.Enum) > 0 {
		return schema.Enum[0]
	}
	switch schema.Type {
	case "string":
		if schema.Format != "" {
			return schema.Format
		}
		return "string"
	case "integer":
		return 0
	case "number":
		return 0
	case "boolean":
		return true
	case "array":
		if schema.Items != nil && schema.Items.Value != nil {
			if item := exampleForSchema(schema.Items.Value, depth-1); item != nil {
				return []any{item}
			}
		}
		return []any{}
	case "object", "":
		if len(schema.Properties) == 0 {
			return nil
		}
		names := make([]string, 0, len(schema.Properties))
		for name := range schema.Properties {
			names = append(names, name)
		}
		sort.Strings(names)
		obj := make(map[string]any, len(names))
		for _, name := range names {
			ref := schema.Properties[name]
			if ref == nil || ref.Value == nil {
				continue
			}
			if v := exampleForSchema(ref.Value, depth-1); v != nil {
				obj[name] = v
			}
		}
		if len(obj) == 0 {
			return nil
		}
		return obj
	}
	return nil
}

// sampleRelPath derives where an operation's sample lands relative to the
// samples root: the first literal path segment as directory, segments joined
// with underscores plus the method as stem. Parameter segments keep their
// braces, matching the naming of hand-captured sample corpora.
func sampleRelPath(path, method string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	dir := "misc"
	for _, seg := range segments {
		if seg != "" && !strings.HasPrefix(seg, "{") {
			dir = seg
			break
		}
	}
	kept := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg != "" {
			kept = append(kept, seg)
		}
	}
	stem := strings.Join(append(kept, method), "_")
	return dir + "/" + stem + ".json"
}
