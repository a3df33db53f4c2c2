package rates

import (
	"bytes"
	"encoding/json"
	"fmt"

	"utilfee/core/types"
)

// ParseJSON decodes a JSON array of periods into raw form.
// Only the document structure is checked: the top level must be an array of
// objects. Fields of the wrong type are treated as absent.
func ParseJSON(data []byte) ([]RawPeriod, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}

	items, ok := doc.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a JSON array of periods, got %s", jsonKind(doc))
	}

	raws := make([]RawPeriod, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("period %d: expected an object, got %s", i, jsonKind(item))
		}
		raws = append(raws, rawFromObject(obj))
	}
	return raws, nil
}

// DecodeJSON parses and normalizes a JSON document in one step
func DecodeJSON(data []byte) ([]types.Period, error) {
	raws, err := ParseJSON(data)
	if err != nil {
		return nil, err
	}
	return NormalizeAll(raws), nil
}

// EncodeJSON renders periods as a pretty-printed JSON array
func EncodeJSON(periods []types.Period) ([]byte, error) {
	if periods == nil {
		periods = []types.Period{}
	}
	return json.MarshalIndent(periods, "", "  ")
}

func rawFromObject(obj map[string]any) RawPeriod {
	raw := RawPeriod{
		ID:    textOf(obj["id"]),
		Name:  textOf(obj["name"]),
		Start: textOf(obj["start"]),
		End:   textOf(obj["end"]),
	}

	tables, ok := obj["tables"].(map[string]any)
	if !ok {
		return raw
	}
	raw.Tables = make(map[string]map[string]RawRow, len(tables))
	for ageKey, ageValue := range tables {
		bands, ok := ageValue.(map[string]any)
		if !ok {
			continue
		}
		rows := make(map[string]RawRow, len(bands))
		for bandKey, cell := range bands {
			fields, ok := cell.(map[string]any)
			if !ok {
				continue
			}
			rows[bandKey] = RawRow{Phys: fields["phys"], Legal: fields["legal"]}
		}
		raw.Tables[ageKey] = rows
	}
	return raw
}

func textOf(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		return "number"
	}
}
