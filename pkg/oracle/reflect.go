package oracle

import "reflect"

// reflectValue decomposes a decoded tuple (go-ethereum unpacks tuples
// into anonymous structs) or a slice/array (decoded array-of-X values)
// into its component values for recursive rendering. Returns nil for
// anything else, signalling the caller should fall back to %v.
func reflectValue(v interface{}) []interface{} {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Struct:
		out := make([]interface{}, rv.NumField())
		for i := 0; i < rv.NumField(); i++ {
			out[i] = rv.Field(i).Interface()
		}
		return out
	case reflect.Slice, reflect.Array:
		out := make([]interface{}, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = rv.Index(i).Interface()
		}
		return out
	case reflect.Ptr:
		if rv.IsNil() {
			return nil
		}
		return reflectValue(rv.Elem().Interface())
	default:
		return nil
	}
}
