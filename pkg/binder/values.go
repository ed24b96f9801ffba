package binder

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/dmitrymomot/storefront/pkg/sanitizer"
)

// bindToStruct copies values into the exported fields of the struct v
// points to. Keys come from tag; untagged fields use their lowercased name
// and "-" skips a field. Errors wrap kind.
func bindToStruct(v any, tag string, values map[string][]string, kind error) error {
	target := reflect.ValueOf(v)
	if target.Kind() != reflect.Pointer || target.IsNil() || target.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a non-nil pointer to struct", kind)
	}
	target = target.Elem()

	for _, sf := range reflect.VisibleFields(target.Type()) {
		if len(sf.Index) > 1 || !sf.IsExported() {
			continue
		}
		key, ok := fieldKey(sf, tag)
		if !ok {
			continue
		}
		raw := values[key]
		if len(raw) == 0 {
			continue
		}
		if err := assign(target.Field(sf.Index[0]), raw); err != nil {
			return fmt.Errorf("%w: field %s: %v", kind, sf.Name, err)
		}
	}
	return nil
}

func fieldKey(sf reflect.StructField, tag string) (string, bool) {
	name, _, _ := strings.Cut(sf.Tag.Get(tag), ",")
	switch name {
	case "-":
		return "", false
	case "":
		return strings.ToLower(sf.Name), true
	}
	return name, true
}

// assign sets dst from raw. Slices accept repeated keys and comma separated
// items; every other kind reads the first value.
func assign(dst reflect.Value, raw []string) error {
	switch dst.Kind() {
	case reflect.Pointer:
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return assign(dst.Elem(), raw)

	case reflect.Slice:
		var items []string
		for _, r := range raw {
			for item := range strings.SplitSeq(r, ",") {
				items = append(items, strings.TrimSpace(item))
			}
		}
		out := reflect.MakeSlice(dst.Type(), len(items), len(items))
		for i, item := range items {
			if err := assign(out.Index(i), []string{item}); err != nil {
				return err
			}
		}
		dst.Set(out)
		return nil
	}
	return setScalar(dst, raw[0])
}

func setScalar(dst reflect.Value, s string) error {
	switch dst.Kind() {
	case reflect.String:
		dst.SetString(sanitizer.StripString(s))
	case reflect.Bool:
		b, err := parseBool(s)
		if err != nil {
			return err
		}
		dst.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, dst.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", s)
		}
		dst.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, dst.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q", s)
		}
		dst.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(s, dst.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q", s)
		}
		dst.SetFloat(n)
	default:
		return fmt.Errorf("unsupported type %s", dst.Kind())
	}
	return nil
}

// parseBool accepts checkbox values ("on", "yes") besides strconv forms.
func parseBool(s string) (bool, error) {
	if b, err := strconv.ParseBool(s); err == nil {
		return b, nil
	}
	switch strings.ToLower(s) {
	case "on", "yes":
		return true, nil
	case "off", "no", "":
		return false, nil
	}
	return false, fmt.Errorf("invalid bool value %q", s)
}
