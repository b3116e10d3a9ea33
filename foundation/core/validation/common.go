// File: common.go
// Title: Validation Helpers
// Description: Value conversions shared by concrete validators.
// Author: msto63
// Version: v0.1.0
// Created: 2026-09-24
// Modified: 2026-09-24
//
// Change History:
// - 2026-09-24 v0.1.0: Numeric conversion and emptiness checks

package validation

import (
	"fmt"
	"reflect"
	"strconv"
)

// ConvertToFloat64 converts numeric values and numeric strings to float64
func ConvertToFloat64(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case string:
		return strconv.ParseFloat(v, 64)
	default:
		return 0, fmt.Errorf("cannot convert %T to float64", value)
	}
}

// IsNilOrEmpty reports whether value is nil, a nil pointer or an empty
// string, slice or map
func IsNilOrEmpty(value interface{}) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return rv.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
