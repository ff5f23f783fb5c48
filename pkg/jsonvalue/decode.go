package jsonvalue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/buger/jsonparser"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ErrEmpty is returned when a document holds no value at all.
var ErrEmpty = errors.New("jsonvalue: document is empty")

// Parse decodes a JSON document into a Value, preserving object key order.
func Parse(data []byte) (Value, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Value{}, ErrEmpty
	}
	// jsonparser is lenient about trailing garbage and some malformed
	// containers, so syntax is checked up front.
	var raw json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return Value{}, fmt.Errorf("jsonvalue: invalid json: %w", err)
	}

	value, dataType, _, err := jsonparser.Get(replaceLoneSurrogates(trimmed))
	if err != nil {
		return Value{}, fmt.Errorf("jsonvalue: read root: %w", err)
	}
	return decode(value, dataType)
}

// MustParse panics when data is not valid JSON. Intended for tests and
// fixtures.
func MustParse(data string) Value {
	v, err := Parse([]byte(data))
	if err != nil {
		panic(err)
	}
	return v
}

func decode(raw []byte, dataType jsonparser.ValueType) (Value, error) {
	switch dataType {
	case jsonparser.Null:
		return Null(), nil
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(raw)
		if err != nil {
			return Value{}, fmt.Errorf("jsonvalue: parse bool: %w", err)
		}
		return Bool(b), nil
	case jsonparser.Number:
		return Number(string(raw)), nil
	case jsonparser.String:
		s, err := jsonparser.ParseString(raw)
		if err != nil {
			return Value{}, fmt.Errorf("jsonvalue: parse string: %w", err)
		}
		return String(s), nil
	case jsonparser.Array:
		return decodeArray(raw)
	case jsonparser.Object:
		return decodeObject(raw)
	default:
		return Value{}, fmt.Errorf("jsonvalue: unsupported token type %s", dataType)
	}
}

func decodeArray(raw []byte) (Value, error) {
	items := []Value{}
	var walkErr error
	_, err := jsonparser.ArrayEach(raw, func(elem []byte, dataType jsonparser.ValueType, _ int, err error) {
		if walkErr != nil {
			return
		}
		if err != nil {
			walkErr = err
			return
		}
		item, err := decode(elem, dataType)
		if err != nil {
			walkErr = err
			return
		}
		items = append(items, item)
	})
	if err != nil {
		return Value{}, fmt.Errorf("jsonvalue: walk array: %w", err)
	}
	if walkErr != nil {
		return Value{}, walkErr
	}
	return Value{kind: KindArray, items: items}, nil
}

func decodeObject(raw []byte) (Value, error) {
	fields := orderedmap.New[string, Value]()
	err := jsonparser.ObjectEach(raw, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		child, err := decode(value, dataType)
		if err != nil {
			return err
		}
		// ObjectEach hands over keys already unescaped.
		fields.Set(string(key), child)
		return nil
	})
	if err != nil {
		return Value{}, fmt.Errorf("jsonvalue: walk object: %w", err)
	}
	return Value{kind: KindObject, fields: fields}, nil
}

// replaceLoneSurrogates rewrites \u escapes of unpaired UTF-16 surrogates to
// \ufffd, which is what encoding/json decodes them to. jsonparser rejects
// them outright. data must already be valid JSON, so every backslash sits
// inside a string.
func replaceLoneSurrogates(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u`)) {
		return data
	}
	var out []byte
	last := 0
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' {
			continue
		}
		if i+1 >= len(data) || data[i+1] != 'u' {
			i++
			continue
		}
		r, ok := surrogateAt(data, i)
		if !ok {
			i += 5
			continue
		}
		if r < 0xdc00 {
			if low, ok := surrogateAt(data, i+6); ok && low >= 0xdc00 {
				i += 11
				continue
			}
		}
		if out == nil {
			out = make([]byte, 0, len(data))
		}
		out = append(out, data[last:i]...)
		out = append(out, `\ufffd`...)
		last = i + 6
		i += 5
	}
	if out == nil {
		return data
	}
	return append(out, data[last:]...)
}

// surrogateAt reports the code unit of a \uXXXX escape starting at i when it
// is a UTF-16 surrogate.
func surrogateAt(data []byte, i int) (rune, bool) {
	if i+6 > len(data) || data[i] != '\\' || data[i+1] != 'u' {
		return 0, false
	}
	n, err := strconv.ParseUint(string(data[i+2:i+6]), 16, 16)
	if err != nil || n < 0xd800 || n > 0xdfff {
		return 0, false
	}
	return rune(n), true
}
