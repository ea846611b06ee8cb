package value

import (
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// FromJSON decodes a JSON document into a Value, walking gjson's untyped
// result tree rather than reflecting into Go structs — a closer match
// for a dynamically-typed Value sum than encoding/json's struct-tag
// mapping, and the same walk-based approach the teacher's (now removed)
// internal/jsonvalue bridge used for DWScript's own Variant type.
func FromJSON(data []byte) (Value, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON")
	}
	return fromGJSON(gjson.ParseBytes(data)), nil
}

func fromGJSON(r gjson.Result) Value {
	switch r.Type {
	case gjson.Null:
		return Nil{}
	case gjson.False:
		return Bool(false)
	case gjson.True:
		return Bool(true)
	case gjson.Number:
		if r.Num == float64(int64(r.Num)) {
			return Int(int64(r.Num))
		}
		return Float(r.Num)
	case gjson.String:
		return Str(r.Str)
	case gjson.JSON:
		if r.IsArray() {
			var list List
			r.ForEach(func(_, v gjson.Result) bool {
				list = append(list, fromGJSON(v))
				return true
			})
			return list
		}
		d := NewDict()
		r.ForEach(func(k, v gjson.Result) bool {
			d.Set(k.String(), fromGJSON(v))
			return true
		})
		return d
	default:
		return Nil{}
	}
}

// ToJSON encodes v as a JSON document, building it incrementally with
// sjson so Dict insertion order is preserved (encoding/json would sort
// or reflect-derive map key order instead).
func ToJSON(v Value) (string, error) {
	return toJSONAt("", v)
}

func toJSONAt(path string, v Value) (string, error) {
	switch tv := v.(type) {
	case Nil:
		return setRaw(path, "null")
	case Bool:
		return setBool(path, bool(tv))
	case Int:
		return setRaw(path, strconv.FormatInt(int64(tv), 10))
	case Float:
		return setRaw(path, strconv.FormatFloat(float64(tv), 'g', -1, 64))
	case Str:
		return setString(path, string(tv))
	case List:
		return encodeList(path, []Value(tv))
	case Tuple:
		return encodeList(path, []Value(tv))
	case *Dict:
		return encodeDict(path, tv)
	default:
		s, err := AsString(v)
		if err != nil {
			return "", fmt.Errorf("cannot encode %s as JSON", v.TypeName())
		}
		return setString(path, s)
	}
}

func encodeList(path string, items []Value) (string, error) {
	doc := "[]"
	if path != "" {
		var err error
		doc, err = sjson.SetRaw("{}", path, "[]")
		if err != nil {
			return "", err
		}
	}
	for _, item := range items {
		elemJSON, err := toJSONAt("", item)
		if err != nil {
			return "", err
		}
		doc, err = sjson.SetRaw(doc, appendPath(path, "-1"), elemJSON)
		if err != nil {
			return "", err
		}
	}
	return doc, nil
}

func encodeDict(path string, d *Dict) (string, error) {
	doc := "{}"
	for _, entry := range d.Entries() {
		entryJSON, err := toJSONAt("", entry.Value)
		if err != nil {
			return "", err
		}
		doc, err = sjson.SetRaw(doc, entry.Key, entryJSON)
		if err != nil {
			return "", err
		}
	}
	if path == "" {
		return doc, nil
	}
	return sjson.SetRaw("{}", path, doc)
}

func appendPath(path, suffix string) string {
	if path == "" {
		return suffix
	}
	return path + "." + suffix
}

func setRaw(path, raw string) (string, error) {
	if path == "" {
		return raw, nil
	}
	return sjson.SetRaw("{}", path, raw)
}

func setBool(path string, b bool) (string, error) {
	if path == "" {
		if b {
			return "true", nil
		}
		return "false", nil
	}
	return sjson.Set("{}", path, b)
}

func setString(path, s string) (string, error) {
	if path == "" {
		return strconv.Quote(s), nil
	}
	return sjson.Set("{}", path, s)
}
