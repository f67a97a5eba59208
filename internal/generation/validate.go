package generation

import (
	"encoding/json"
	"fmt"

	"quiz-forge/internal/domain"
)

// Record is one decoded object of the model output.
type Record map[string]any

// String returns the value of key rendered as text, and whether key was present.
func (r Record) String(key string) (string, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return "", ok
	}
	if s, isString := v.(string); isString {
		return s, true
	}
	return fmt.Sprint(v), true
}

// ParseResponse decodes normalized model output. Failures are PARSE_ERROR DomainErrors.
func ParseResponse(text string) (any, error) {
	var parsed any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, domain.NewParseError(err)
	}
	return parsed, nil
}

// ValidateRecords checks decoded output against schema and normalizes it in place.
//
// A lone object is treated as a one-element array. Every record must carry
// every non-dynamic schema key; the first missing key fails the whole batch.
// An enumerated field answered with a list is collapsed to the list's first
// element. The number of records is not checked.
func ValidateRecords(parsed any, schema Schema) ([]Record, error) {
	var items []any
	switch v := parsed.(type) {
	case map[string]any:
		items = []any{v}
	case []any:
		items = v
	default:
		return nil, domain.NewError(domain.ErrConformance,
			fmt.Sprintf("expected an array of json objects, got %T", parsed), nil)
	}

	records := make([]Record, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, domain.NewError(domain.ErrConformance,
				fmt.Sprintf("element %d of json output is not an object", i), nil)
		}
		record := Record(obj)
		for _, field := range schema {
			// A generated key name cannot be checked for.
			if IsDynamic(field.Key) {
				continue
			}
			value, present := record[field.Key]
			if !present {
				return nil, domain.NewConformanceError(field.Key)
			}
			if field.IsChoice() {
				if list, isList := value.([]any); isList && len(list) > 0 {
					record[field.Key] = list[0]
				}
			}
		}
		records = append(records, record)
	}
	return records, nil
}
