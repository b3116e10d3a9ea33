// File: validation.go
// Title: Configuration Validation and Struct Binding
// Description: Rule-based validation of configuration values and binding of
//              configuration sections onto tagged structs.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-09
// Modified: 2026-10-04
//
// Change History:
// - 2026-09-09 v0.1.0: Rule validation and struct binding
// - 2026-10-04 v0.2.0: Allowed-value rules, structured errors, no writes under read lock

package config

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"

	cplxerror "github.com/msto63/cplx/foundation/core/error"
	"github.com/msto63/cplx/foundation/core/errors"
)

// ValidationRule describes the constraints on one key
type ValidationRule struct {
	Required bool
	// Type is one of "string", "int", "float", "bool", "duration", "[]string"
	Type string
	// Min and Max bound numbers, or the length of strings and lists
	Min     interface{}
	Max     interface{}
	Default interface{}
	Pattern string
	// OneOf restricts string values (case-insensitive)
	OneOf []string
}

// ValidationRules maps keys to rules
type ValidationRules map[string]ValidationRule

// ValidationResult collects all violations
type ValidationResult struct {
	Valid  bool
	Errors []error
}

// Err returns the first violation, or nil
func (r *ValidationResult) Err() error {
	if r == nil || len(r.Errors) == 0 {
		return nil
	}
	return r.Errors[0]
}

// Messages returns the violation messages
func (r *ValidationResult) Messages() []string {
	out := make([]string, len(r.Errors))
	for i, err := range r.Errors {
		out[i] = err.Error()
	}
	return out
}

// Validate checks every rule. Missing optional keys receive their Default.
func (c *Config) Validate(rules ValidationRules) *ValidationResult {
	keys := make([]string, 0, len(rules))
	for k := range rules {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := &ValidationResult{Valid: true}
	for _, key := range keys {
		rule := rules[key]

		c.mu.RLock()
		value := c.firstValue(key)
		c.mu.RUnlock()

		if value == nil {
			if rule.Required {
				result.add(errors.NewErrorBuilder(errors.ModuleConfig).
					Operation("validate").
					Messagef("required key %s is missing", key).
					Code(cplxerror.CodeRequiredField).
					Detail("key", key).
					Build())
			} else if rule.Default != nil {
				c.Set(key, rule.Default)
			}
			continue
		}

		if err := checkRule(key, value, rule); err != nil {
			result.add(err)
		}
	}
	return result
}

func (r *ValidationResult) add(err error) {
	r.Valid = false
	r.Errors = append(r.Errors, err)
}

func checkRule(key string, value interface{}, rule ValidationRule) error {
	invalid := func(format string, args ...interface{}) error {
		return errors.ConfigInvalid(key, value, fmt.Sprintf(format, args...))
	}

	switch rule.Type {
	case "":
	case "string":
		if _, ok := value.(string); !ok {
			return invalid("must be a string")
		}
	case "int":
		if _, ok := toInt64(value); !ok {
			return invalid("must be an integer")
		}
	case "float":
		if _, ok := toFloat64(value); !ok {
			return invalid("must be a number")
		}
	case "bool":
		switch v := value.(type) {
		case bool:
		case string:
			if v != "true" && v != "false" {
				return invalid("must be true or false")
			}
		default:
			return invalid("must be a boolean")
		}
	case "duration":
		s, ok := value.(string)
		if !ok {
			return invalid("must be a duration string")
		}
		if _, err := time.ParseDuration(s); err != nil {
			return invalid("must be a duration such as 5s")
		}
	case "[]string":
		switch value.(type) {
		case []string, []interface{}, string:
		default:
			return invalid("must be a list of strings")
		}
	default:
		return invalid("unknown rule type %s", rule.Type)
	}

	if rule.Min != nil || rule.Max != nil {
		if err := checkBounds(value, rule, invalid); err != nil {
			return err
		}
	}

	if rule.Pattern != "" {
		s, ok := value.(string)
		if !ok {
			return invalid("pattern requires a string")
		}
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return invalid("invalid pattern %q", rule.Pattern)
		}
		if !re.MatchString(s) {
			return invalid("does not match %s", rule.Pattern)
		}
	}

	if len(rule.OneOf) > 0 {
		s := strings.ToLower(fmt.Sprint(value))
		for _, allowed := range rule.OneOf {
			if s == strings.ToLower(allowed) {
				return nil
			}
		}
		return invalid("must be one of %s", strings.Join(rule.OneOf, ", "))
	}
	return nil
}

func checkBounds(value interface{}, rule ValidationRule, invalid func(string, ...interface{}) error) error {
	var (
		measure float64
		what    = "value"
	)
	switch v := value.(type) {
	case string:
		measure, what = float64(len(v)), "length"
	case []interface{}:
		measure, what = float64(len(v)), "length"
	case []string:
		measure, what = float64(len(v)), "length"
	default:
		f, ok := toFloat64(v)
		if !ok {
			return nil
		}
		measure = f
	}

	if min, ok := toFloat64(rule.Min); ok && measure < min {
		return invalid("%s %g is below minimum %g", what, measure, min)
	}
	if max, ok := toFloat64(rule.Max); ok && measure > max {
		return invalid("%s %g is above maximum %g", what, measure, max)
	}
	return nil
}

// BindToStruct copies the section at keyPrefix ("" for the root) onto the
// exported fields of target. Field keys come from the `config` tag or the
// lower-cased field name; `config:"-"` skips a field. Nested structs bind
// to nested sections. Environment overrides apply.
func (c *Config) BindToStruct(keyPrefix string, target interface{}) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return errors.NewErrorBuilder(errors.ModuleConfig).
			Operation("bind").
			Messagef("bind target must be a pointer to struct, got %T", target).
			Code(cplxerror.CodeInvalidInput).
			Build()
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bindStruct(keyPrefix, rv.Elem())
}

func (c *Config) bindStruct(prefix string, sv reflect.Value) error {
	st := sv.Type()
	for i := 0; i < st.NumField(); i++ {
		field := sv.Field(i)
		meta := st.Field(i)
		if !field.CanSet() {
			continue
		}

		name := meta.Tag.Get("config")
		if name == "-" {
			continue
		}
		if name == "" {
			name = strings.ToLower(meta.Name)
		}
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}

		if field.Kind() == reflect.Struct && field.Type() != reflect.TypeOf(time.Duration(0)) {
			if err := c.bindStruct(key, field); err != nil {
				return err
			}
			continue
		}

		value := c.firstValue(key)
		if value == nil {
			if strings.Contains(meta.Tag.Get("validate"), "required") {
				return errors.NewErrorBuilder(errors.ModuleConfig).
					Operation("bind").
					Messagef("required key %s is missing", key).
					Code(cplxerror.CodeRequiredField).
					Detail("key", key).
					Build()
			}
			continue
		}

		if err := setField(field, value); err != nil {
			return errors.ConfigInvalid(key, value, err.Error())
		}
	}
	return nil
}

func setField(field reflect.Value, value interface{}) error {
	if field.Type() == reflect.TypeOf(time.Duration(0)) {
		switch v := value.(type) {
		case string:
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("not a duration")
			}
			field.SetInt(int64(d))
			return nil
		default:
			n, ok := toInt64(v)
			if !ok {
				return fmt.Errorf("not a duration")
			}
			field.SetInt(n)
			return nil
		}
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(fmt.Sprint(value))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := toInt64(value)
		if !ok {
			return fmt.Errorf("not an integer")
		}
		field.SetInt(n)
	case reflect.Float32, reflect.Float64:
		f, ok := toFloat64(value)
		if !ok {
			return fmt.Errorf("not a number")
		}
		field.SetFloat(f)
	case reflect.Bool:
		switch v := value.(type) {
		case bool:
			field.SetBool(v)
		case string:
			if v != "true" && v != "false" {
				return fmt.Errorf("not a boolean")
			}
			field.SetBool(v == "true")
		default:
			return fmt.Errorf("not a boolean")
		}
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type %s", field.Type())
		}
		var out []string
		switch v := value.(type) {
		case []string:
			out = append(out, v...)
		case []interface{}:
			for _, item := range v {
				out = append(out, fmt.Sprint(item))
			}
		case string:
			for _, part := range strings.Split(v, ",") {
				out = append(out, strings.TrimSpace(part))
			}
		default:
			return fmt.Errorf("not a list")
		}
		field.Set(reflect.ValueOf(out))
	default:
		return fmt.Errorf("unsupported field type %s", field.Kind())
	}
	return nil
}
