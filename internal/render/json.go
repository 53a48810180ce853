package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
)

// PrettyJSON parses text and serializes the value again with two-space
// indentation. Object keys keep their first-seen position; a repeated key
// takes its last value. Numbers are written in their shortest form, so 1.0
// becomes 1. Text that is not a single JSON value is returned unchanged.
func PrettyJSON(text string) string {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	v, err := decodeOrdered(dec)
	if err != nil {
		return text
	}
	if _, err := dec.Token(); err != io.EOF {
		return text
	}

	var b bytes.Buffer
	writeIndented(&b, v, "")
	return b.String()
}

// orderedObject is a JSON object that remembers key order.
type orderedObject struct {
	keys   []string
	values map[string]any
}

var errUnexpectedToken = errors.New("unexpected JSON token")

func decodeOrdered(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := &orderedObject{values: make(map[string]any)}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, errUnexpectedToken
				}
				val, err := decodeOrdered(dec)
				if err != nil {
					return nil, err
				}
				if _, seen := obj.values[key]; !seen {
					obj.keys = append(obj.keys, key)
				}
				obj.values[key] = val
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			list := []any{}
			for dec.More() {
				val, err := decodeOrdered(dec)
				if err != nil {
					return nil, err
				}
				list = append(list, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return list, nil
		default:
			return nil, errUnexpectedToken
		}
	case json.Number:
		f, err := strconv.ParseFloat(t.String(), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, err
		}
		return f, nil
	default:
		// string, bool or nil
		return t, nil
	}
}

func writeIndented(b *bytes.Buffer, v any, indent string) {
	inner := indent + "  "

	switch t := v.(type) {
	case *orderedObject:
		if len(t.keys) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{\n")
		for i, key := range t.keys {
			b.WriteString(inner)
			writeScalar(b, key)
			b.WriteString(": ")
			writeIndented(b, t.values[key], inner)
			if i < len(t.keys)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		b.WriteString(indent)
		b.WriteByte('}')
	case []any:
		if len(t) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteString("[\n")
		for i, item := range t {
			b.WriteString(inner)
			writeIndented(b, item, inner)
			if i < len(t)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		b.WriteString(indent)
		b.WriteByte(']')
	case float64:
		switch {
		case math.IsInf(t, 0) || math.IsNaN(t):
			b.WriteString("null")
			return
		case t == 0:
			t = 0 // drop the sign of -0
		}
		writeScalar(b, t)
	default:
		writeScalar(b, t)
	}
}

// writeScalar encodes a string, number, bool or nil without HTML escaping.
func writeScalar(b *bytes.Buffer, v any) {
	enc := json.NewEncoder(b)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
	// Encode terminates every value with a newline.
	b.Truncate(b.Len() - 1)
}
