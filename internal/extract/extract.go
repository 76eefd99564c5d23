package extract

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"usajobs-list/internal/common"
	"usajobs-list/internal/config"
	"usajobs-list/internal/domain"
)

// Header returns the fixed header row for a field set.
func Header(fields config.Fields) domain.Row {
	return domain.Row(fields.Header())
}

// ReadFile loads a saved search response and flattens it.
func ReadFile(path string, fields config.Fields) (domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Table{}, common.FSError("open "+path, err)
	}
	defer f.Close()

	doc, err := domain.DecodeJSON(f)
	if err != nil {
		return domain.Table{}, common.DecodeError("decode "+path, err)
	}
	return Extract(doc, fields)
}

// Extract flattens SearchResult.SearchResultItems into rows, in source
// order. Every configured key must be present on every item.
func Extract(doc any, fields config.Fields) (domain.Table, error) {
	t := domain.Table{Header: Header(fields)}

	root, err := object(doc, "$")
	if err != nil {
		return t, err
	}
	sr, err := objectAt(root, "SearchResult", "SearchResult")
	if err != nil {
		return t, err
	}
	raw, ok := sr["SearchResultItems"]
	if !ok {
		return t, missing("SearchResult.SearchResultItems")
	}
	items, ok := raw.([]any)
	if !ok {
		return t, common.SchemaError(fmt.Sprintf("SearchResult.SearchResultItems is %s, want array", kind(raw)), nil)
	}

	t.Rows = make([]domain.Row, 0, len(items))
	for i, it := range items {
		row, err := itemRow(it, fmt.Sprintf("SearchResult.SearchResultItems[%d]", i), fields)
		if err != nil {
			return domain.Table{Header: t.Header}, err
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func itemRow(it any, path string, fields config.Fields) (domain.Row, error) {
	item, err := object(it, path)
	if err != nil {
		return nil, err
	}
	row := make(domain.Row, 0, 1+len(fields.Top)+len(fields.Details))

	id, err := scalarAt(item, config.IDField, path+"."+config.IDField)
	if err != nil {
		return nil, err
	}
	row = append(row, id)

	descPath := path + ".MatchedObjectDescriptor"
	desc, err := objectAt(item, "MatchedObjectDescriptor", descPath)
	if err != nil {
		return nil, err
	}
	for _, f := range fields.Top {
		v, err := scalarAt(desc, f, descPath+"."+f)
		if err != nil {
			return nil, err
		}
		row = append(row, v)
	}

	if len(fields.Details) == 0 {
		return row, nil
	}
	areaPath := descPath + ".UserArea"
	area, err := objectAt(desc, "UserArea", areaPath)
	if err != nil {
		return nil, err
	}
	detPath := areaPath + ".Details"
	details, err := objectAt(area, "Details", detPath)
	if err != nil {
		return nil, err
	}
	for _, f := range fields.Details {
		v, err := scalarAt(details, f, detPath+"."+f)
		if err != nil {
			return nil, err
		}
		row = append(row, v)
	}
	return row, nil
}

func missing(path string) error {
	return common.SchemaError(path+" not found", common.ErrMissingField)
}

func object(v any, path string) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, common.SchemaError(fmt.Sprintf("%s is %s, want object", path, kind(v)), nil)
	}
	return m, nil
}

func objectAt(m map[string]any, key, path string) (map[string]any, error) {
	v, ok := m[key]
	if !ok {
		return nil, missing(path)
	}
	return object(v, path)
}

func scalarAt(m map[string]any, key, path string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", missing(path)
	}
	return Stringify(v), nil
}

// Stringify renders a decoded JSON value as a cell. null is empty; arrays
// and objects keep their compact JSON text.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
}

func kind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
