package engine

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/rexxgo/rexxcore/internal/values"
)

// buildContextJSON encodes a variable snapshot as the JSON object an
// ADDRESS handler receives for its `context` parameter (spec.md §6). Using
// sjson to build the object field-by-field avoids marshaling through an
// intermediate map[string]any — each Value already knows how to render
// itself via String(), and sjson.Set patches a growing JSON document in
// place.
func buildContextJSON(snapshot *values.Map) (string, error) {
	doc := "{}"
	var err error
	for _, k := range snapshot.Keys() {
		v, _ := snapshot.Get(k)
		doc, err = setJSONValue(doc, k, v)
		if err != nil {
			return "", err
		}
	}
	return doc, nil
}

func setJSONValue(doc, path string, v values.Value) (string, error) {
	switch t := v.(type) {
	case values.Int:
		return sjson.Set(doc, path, t.V)
	case values.Float:
		return sjson.Set(doc, path, t.V)
	case values.Bool:
		return sjson.Set(doc, path, t.V)
	case values.Seq:
		strs := make([]string, len(t.Items))
		for i, item := range t.Items {
			strs[i] = item.String()
		}
		return sjson.Set(doc, path, strs)
	default:
		return sjson.Set(doc, path, v.String())
	}
}

// addressOutcome is the engine-internal decoded form of an ADDRESS
// handler's JSON response (spec.md §4.6: "Marshal the result").
type addressOutcome struct {
	IsScalar      bool
	Scalar        values.Value
	Success       bool
	ErrorCode     int
	ErrorMessage  string
	RexxVariables map[string]values.Value
}

// parseAddressResponse reads an ADDRESS handler's JSON response using
// gjson, distinguishing the scalar-result shape from the structured
// {success, errorCode, errorMessage, rexxVariables} shape without a full
// unmarshal (spec.md §6).
func parseAddressResponse(raw string) addressOutcome {
	parsed := gjson.Parse(raw)
	if !parsed.IsObject() {
		return addressOutcome{IsScalar: true, Scalar: jsonToValue(parsed), Success: true}
	}

	out := addressOutcome{Success: true}
	if s := parsed.Get("success"); s.Exists() {
		out.Success = s.Bool()
	}
	if c := parsed.Get("errorCode"); c.Exists() {
		out.ErrorCode = int(c.Int())
	}
	if m := parsed.Get("errorMessage"); m.Exists() {
		out.ErrorMessage = m.String()
	}
	if rv := parsed.Get("rexxVariables"); rv.Exists() && rv.IsObject() {
		out.RexxVariables = map[string]values.Value{}
		rv.ForEach(func(key, value gjson.Result) bool {
			out.RexxVariables[key.String()] = jsonToValue(value)
			return true
		})
	}
	// An object with none of the recognized envelope keys is itself the
	// RESULT payload (handlers may legitimately return an arbitrary object
	// rather than the {success,...} envelope); jsonToValue renders it as a
	// values.Map either way, so no extra branch is needed.
	out.Scalar = jsonToValue(parsed)
	return out
}

func jsonToValue(r gjson.Result) values.Value {
	switch r.Type {
	case gjson.Number:
		if r.Num == float64(int64(r.Num)) {
			return values.Int{V: int64(r.Num)}
		}
		return values.Float{V: r.Num}
	case gjson.True, gjson.False:
		return values.Bool{V: r.Bool()}
	case gjson.JSON:
		if r.IsArray() {
			var items []values.Value
			r.ForEach(func(_, v gjson.Result) bool {
				items = append(items, jsonToValue(v))
				return true
			})
			return values.Seq{Items: items}
		}
		m := values.NewMap()
		r.ForEach(func(k, v gjson.Result) bool {
			m.Set(k.String(), jsonToValue(v))
			return true
		})
		return m
	default:
		return values.Str{V: r.String()}
	}
}
