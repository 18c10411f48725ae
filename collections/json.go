package collections

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/pkg/errors"
)

// jsonFormat encodes the array form as JSON text. Entries become objects
// whose members keep the collection's key order; []any become arrays.
type jsonFormat struct{}

func (jsonFormat) Encode(array any, opts FormatOptions) (any, error) {
	b, err := encodeJSON(array, opts.IntValue("indent"))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (jsonFormat) Decode(data any, _ FormatOptions) (any, error) {
	b, err := readData(data)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return []any{}, nil
	}
	return readJSON(jsontext.NewDecoder(bytes.NewReader(b)))
}

func encodeJSON(v any, indent int) ([]byte, error) {
	var buf bytes.Buffer
	var opts []jsontext.Options
	if indent > 0 {
		opts = append(opts, jsontext.WithIndent(strings.Repeat(" ", indent)))
	}
	enc := jsontext.NewEncoder(&buf, opts...)
	if err := writeJSON(enc, v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func writeJSON(enc *jsontext.Encoder, v any) error {
	switch x := v.(type) {
	case Entries:
		if err := enc.WriteToken(jsontext.BeginObject); err != nil {
			return err
		}
		for _, e := range x {
			if err := enc.WriteToken(jsontext.String(e.First.String())); err != nil {
				return err
			}
			if err := writeJSON(enc, e.Second); err != nil {
				return errors.Wrapf(err, "key %q", e.First.String())
			}
		}
		return enc.WriteToken(jsontext.EndObject)
	case []any:
		if err := enc.WriteToken(jsontext.BeginArray); err != nil {
			return err
		}
		for _, item := range x {
			if err := writeJSON(enc, item); err != nil {
				return err
			}
		}
		return enc.WriteToken(jsontext.EndArray)
	case Arrayer:
		return writeJSON(enc, x.ToArray())
	}
	return json.MarshalEncode(enc, v, json.Deterministic(true))
}

// readJSON reads one JSON value. Objects are returned as Entries in document
// order, arrays as []any, integral numbers as int.
func readJSON(dec *jsontext.Decoder) (any, error) {
	tok, err := dec.ReadToken()
	if err != nil {
		return nil, err
	}
	switch tok.Kind() {
	case '{':
		out := Entries{}
		for dec.PeekKind() != '}' {
			name, err := dec.ReadToken()
			if err != nil {
				return nil, err
			}
			// The token is only valid until the next decoder call.
			key := StringKey(name.String())
			v, err := readJSON(dec)
			if err != nil {
				return nil, err
			}
			out = append(out, Entry{First: key, Second: v})
		}
		if _, err := dec.ReadToken(); err != nil {
			return nil, err
		}
		return out, nil
	case '[':
		out := []any{}
		for dec.PeekKind() != ']' {
			v, err := readJSON(dec)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		if _, err := dec.ReadToken(); err != nil {
			return nil, err
		}
		return out, nil
	case '"':
		return tok.String(), nil
	case '0':
		if n, err := strconv.Atoi(tok.String()); err == nil {
			return n, nil
		}
		return tok.Float(), nil
	case 't', 'f':
		return tok.Bool(), nil
	case 'n':
		return nil, nil
	}
	return nil, errors.Errorf("collections: unexpected JSON token %v", tok.Kind())
}

// MarshalJSON encodes the entries as a JSON object in order.
func (e Entries) MarshalJSON() ([]byte, error) {
	return encodeJSON(e, 0)
}

// ToJSON serialises the collection's array form to JSON.
func (c *Collection[T]) ToJSON() ([]byte, error) {
	return encodeJSON(c.ToArray(), 0)
}

// MarshalJSON implements json.Marshaler with the same output as
// [Collection.ToJSON].
func (c *Collection[T]) MarshalJSON() ([]byte, error) {
	return c.ToJSON()
}

// String returns the JSON form of the collection. It implements
// [fmt.Stringer].
func (c *Collection[T]) String() string {
	b, err := c.ToJSON()
	if err != nil {
		return "collections: " + err.Error()
	}
	return string(b)
}
