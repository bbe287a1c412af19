package sample

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Sample is one input document describing a single API call shape: an HTTP
// method, an endpoint path template, and an optional request body.
type Sample struct {
	Method string
	Path   string
	Body   Body
}

// Field is one body entry. Order follows the JSON text, which keeps reruns
// over unchanged inputs byte-identical.
type Field struct {
	Key   string
	Value any
}

// Body is the top-level request body mapping.
type Body []Field

// Object is a nested JSON object value inside a body.
type Object []Field

type rawSample struct {
	Method  string `json:"method"`
	Path    string `json:"path"`
	Request struct {
		Body json.RawMessage `json:"body"`
	} `json:"request"`
}

// Parse decodes a sample document. The request body, when present, is decoded
// with key order preserved and numbers kept as their literal text.
func Parse(data []byte) (*Sample, error) {
	var raw rawSample
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse sample: %w", err)
	}

	s := &Sample{
		Method: strings.ToLower(strings.TrimSpace(raw.Method)),
		Path:   raw.Path,
	}

	if len(raw.Request.Body) > 0 && !bytes.Equal(raw.Request.Body, []byte("null")) {
		body, err := decodeBody(raw.Request.Body)
		if err != nil {
			return nil, fmt.Errorf("parse sample: %w", err)
		}
		s.Body = body
	}
	return s, nil
}

func decodeBody(raw json.RawMessage) (Body, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(Object)
	if !ok {
		return nil, fmt.Errorf("request body: expected object, got %T", v)
	}
	return Body(obj), nil
}

// decodeValue reads one JSON value from dec. Objects come back as Object
// slices so their key order survives; scalars keep the decoder's token types
// (string, json.Number, bool, nil).
func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '{':
		var obj Object
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, _ := keyTok.(string)
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			obj = append(obj, Field{Key: key, Value: val})
		}
		if _, err := dec.Token(); err != nil { // closing '}'
			return nil, err
		}
		return obj, nil
	case '[':
		var arr []any
		for dec.More() {
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err := dec.Token(); err != nil { // closing ']'
			return nil, err
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim.String())
	}
}
