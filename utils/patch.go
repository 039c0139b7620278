package utils

import (
	"reflect"
	"strings"
	"unicode"
)

// UpdatesFromPtrDTO builds a map[string]any with only the non-nil *fields of
// a pointer DTO, keyed by database column (the json tag converted to
// snake_case). Optionally provide renames to override a column name
// (e.g. {"currency": "cy"}).
func UpdatesFromPtrDTO(dto any, renames map[string]string) map[string]any {
	res := make(map[string]any)
	v := reflect.ValueOf(dto)
	if v.Kind() != reflect.Ptr {
		return res
	}
	s := v.Elem()
	if s.Kind() != reflect.Struct {
		return res
	}
	t := s.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		fv := s.Field(i)
		if fv.Kind() != reflect.Ptr || fv.IsNil() {
			continue
		}
		jsonTag := sf.Tag.Get("json")
		if jsonTag == "" || jsonTag == "-" {
			continue
		}
		name := strings.Split(jsonTag, ",")[0]
		if renames != nil {
			if alt, ok := renames[name]; ok && alt != "" {
				res[alt] = fv.Elem().Interface()
				continue
			}
		}
		res[ToSnake(name)] = fv.Elem().Interface()
	}
	return res
}

// ToSnake converts a camelCase json name to its snake_case column name.
func ToSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
