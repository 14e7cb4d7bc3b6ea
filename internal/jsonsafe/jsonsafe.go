// Package jsonsafe turns arbitrary Go values into something encoding/json can
// always render, for logging task state and building API payloads.
package jsonsafe

import (
	"bytes"
	"encoding"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"
)

// BinaryPlaceholder replaces raw byte payloads.
const BinaryPlaceholder = "*** binary data ***"

const maxDepth = 64

var (
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	errorType         = reflect.TypeOf((*error)(nil)).Elem()
)

// Sanitize converts v into JSON primitives: nil, bool, numbers, strings,
// []any and map[string]any. Byte slices become BinaryPlaceholder, structs
// become maps of their exported fields, and anything with no JSON form
// (funcs, channels, complex numbers, NaN) becomes nil.
func Sanitize(v any) any {
	return sanitize(reflect.ValueOf(v), 0)
}

// ToJSON renders Sanitize(v) with four-space indentation and without HTML or
// ASCII escaping. The bool is false when rendering failed.
func ToJSON(v any) (string, bool) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(Sanitize(v)); err != nil {
		return "", false
	}
	return strings.TrimSuffix(buf.String(), "\n"), true
}

// Response builds the standard API envelope. Empty data and message are
// left out.
func Response(status int, data any, message string) map[string]any {
	obj := map[string]any{"status": status}
	if !isEmpty(data) {
		obj["data"] = data
	}
	if message != "" {
		obj["message"] = message
	}
	return obj
}

func sanitize(v reflect.Value, depth int) any {
	if !v.IsValid() || depth > maxDepth {
		return nil
	}

	if (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) && v.IsNil() {
		return nil
	}
	if v.CanInterface() && v.Kind() != reflect.Interface {
		if v.Type().Implements(errorType) {
			return v.Interface().(error).Error()
		}
		if v.Type().Implements(textMarshalerType) {
			text, err := v.Interface().(encoding.TextMarshaler).MarshalText()
			if err != nil {
				return nil
			}
			return string(text)
		}
	}

	switch v.Kind() {
	case reflect.Bool:
		return v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint()
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return f
	case reflect.String:
		return v.String()
	case reflect.Pointer, reflect.Interface:
		return sanitize(v.Elem(), depth+1)
	case reflect.Slice:
		if v.IsNil() {
			return nil
		}
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return BinaryPlaceholder
		}
		return sanitizeList(v, depth)
	case reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return BinaryPlaceholder
		}
		return sanitizeList(v, depth)
	case reflect.Map:
		if v.IsNil() {
			return nil
		}
		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out[mapKey(iter.Key())] = sanitize(iter.Value(), depth+1)
		}
		return out
	case reflect.Struct:
		out := make(map[string]any)
		sanitizeStruct(v, out, depth)
		return out
	default:
		return nil
	}
}

func sanitizeList(v reflect.Value, depth int) []any {
	out := make([]any, v.Len())
	for i := 0; i < v.Len(); i++ {
		out[i] = sanitize(v.Index(i), depth+1)
	}
	return out
}

func sanitizeStruct(v reflect.Value, out map[string]any, depth int) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name, skip := fieldName(field)
		if skip {
			continue
		}

		fv := v.Field(i)
		if field.Anonymous && name == "" {
			if fv.Kind() == reflect.Pointer {
				if fv.IsNil() {
					continue
				}
				fv = fv.Elem()
			}
			if fv.Kind() == reflect.Struct {
				sanitizeStruct(fv, out, depth+1)
				continue
			}
		}
		if !field.IsExported() {
			continue
		}
		if name == "" {
			name = field.Name
		}
		out[name] = sanitize(fv, depth+1)
	}
}

// fieldName returns the json tag name ("" when untagged) and whether the
// field is excluded.
func fieldName(field reflect.StructField) (string, bool) {
	tag, ok := field.Tag.Lookup("json")
	if !ok {
		return "", false
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return "", true
	}
	return name, false
}

func mapKey(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	if k.CanInterface() && k.Type().Implements(textMarshalerType) {
		if text, err := k.Interface().(encoding.TextMarshaler).MarshalText(); err == nil {
			return string(text)
		}
	}
	switch k.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fmt.Sprint(k.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return fmt.Sprint(k.Uint())
	case reflect.Bool:
		return fmt.Sprint(k.Bool())
	case reflect.Float32, reflect.Float64:
		return fmt.Sprint(k.Float())
	}
	if k.CanInterface() {
		return fmt.Sprint(k.Interface())
	}
	return k.String()
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.String:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return rv.IsZero()
	}
}
