package tlv

import (
	"encoding/hex"
	"fmt"
	"reflect"
	"strings"
)

// WriteStructFields inspects a struct and writes its exported fields to the strings.Builder.
// It joins lines with newlines but DOES NOT add a trailing newline, preventing artifacts in strings.Split.
// If the builder is not empty, it prepends a newline to separate this block from previous content.
//
// Byte slices honour a `fmt` tag ("ascii", "int", default hex). Embedded fields, unexported
// fields and fields tagged `fmt:"-"` are skipped, as are empty slices and strings.
func WriteStructFields(sb *strings.Builder, prefix string, s interface{}) {
	val := reflect.ValueOf(s)

	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return
	}

	typ := val.Type()
	var lines []string

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)

		if fieldType.Anonymous || !fieldType.IsExported() || fieldType.Tag.Get("fmt") == "-" {
			continue
		}

		if line := formatField(prefix, field, fieldType); line != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) > 0 {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(strings.Join(lines, "\n"))
	}
}

func formatField(prefix string, field reflect.Value, fieldType reflect.StructField) string {
	var display string

	switch {
	case field.Kind() == reflect.Slice && field.Type().Elem().Kind() == reflect.Uint8:
		if field.Len() == 0 {
			return ""
		}
		display = formatByteValue(field.Bytes(), fieldType.Tag.Get("fmt"))
	case field.Kind() == reflect.String:
		if field.Len() == 0 {
			return ""
		}
		display = fmt.Sprintf("%q", field.String())
	case field.CanUint():
		display = fmt.Sprintf("%d", field.Uint())
		if fieldType.Tag.Get("fmt") == "hex" {
			display = fmt.Sprintf("%X (Dec: %d)", field.Uint(), field.Uint())
		}
	case field.CanInt():
		display = fmt.Sprintf("%d", field.Int())
	case field.Kind() == reflect.Bool:
		display = fmt.Sprintf("%t", field.Bool())
	default:
		return ""
	}

	return fmt.Sprintf("    - %s.%s: %s", prefix, fieldType.Name, display)
}

func formatByteValue(data []byte, format string) string {
	switch format {
	case "ascii":
		return fmt.Sprintf("%X (%q)", data, MakeSafeASCII(data))
	case "int":
		var integer int
		for _, b := range data {
			integer = (integer << 8) | int(b)
		}
		return fmt.Sprintf("%X (Dec: %d)", data, integer)
	default:
		return strings.ToUpper(hex.EncodeToString(data))
	}
}

// MakeSafeASCII replaces every non-printable byte with a dot.
func MakeSafeASCII(data []byte) string {
	return strings.Map(func(r rune) rune {
		if r >= 32 && r <= 126 {
			return r
		}
		return '.'
	}, string(data))
}
