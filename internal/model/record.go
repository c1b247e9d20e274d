package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

type recordField struct {
	index int
	name  string
	kind  reflect.Kind
}

var (
	recordFields = fieldsOf(reflect.TypeOf(Record{}))
	validate     = newValidator()
)

func fieldsOf(t reflect.Type) []recordField {
	fields := make([]recordField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		fields = append(fields, recordField{
			index: i,
			name:  jsonName(f),
			kind:  f.Type.Elem().Kind(),
		})
	}
	return fields
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" {
		return f.Name
	}
	return name
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	return v
}

// RecordFields returns the JSON names of all Record fields in declaration order.
func RecordFields() []string {
	names := make([]string, len(recordFields))
	for i, f := range recordFields {
		names[i] = f.name
	}
	return names
}

// ParseRecord decodes and validates a request body. Every missing or
// mistyped field is reported in the returned *ValidationError.
func ParseRecord(body []byte) (*Record, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if raw == nil {
		return nil, ErrMalformedBody
	}

	rec := &Record{}
	v := reflect.ValueOf(rec).Elem()
	invalid := make(map[string]FieldError)

	for _, f := range recordFields {
		data, ok := raw[f.name]
		if !ok {
			continue
		}
		if err := decodeField(v.Field(f.index), f.kind, data); err != nil {
			invalid[f.name] = typeError(f)
		}
	}

	if err := validate.Struct(rec); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, err
		}
		for _, fe := range verrs {
			if _, seen := invalid[fe.Field()]; seen {
				continue
			}
			invalid[fe.Field()] = FieldError{
				Loc:  []string{"body", fe.Field()},
				Msg:  "field required",
				Type: TypeMissing,
			}
		}
	}

	if len(invalid) == 0 {
		return rec, nil
	}

	verr := &ValidationError{}
	for _, f := range recordFields {
		if fe, ok := invalid[f.name]; ok {
			verr.Fields = append(verr.Fields, fe)
		}
	}
	return nil, verr
}

func decodeField(field reflect.Value, kind reflect.Kind, data json.RawMessage) error {
	if kind == reflect.Int64 {
		n, err := decodeInt(data)
		if err != nil {
			return err
		}
		if n != nil {
			field.Set(reflect.ValueOf(n))
		}
		return nil
	}
	return json.Unmarshal(data, field.Addr().Interface())
}

// decodeInt accepts JSON integers and integral floats such as 35.0. Numeric
// strings are rejected.
func decodeInt(data json.RawMessage) (*int64, error) {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	if len(data) == 0 || (data[0] != '-' && (data[0] < '0' || data[0] > '9')) {
		return nil, fmt.Errorf("not a number: %s", data)
	}

	s := string(data)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &n, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return nil, fmt.Errorf("not an integer: %s", s)
	}
	n := int64(f)
	return &n, nil
}

func typeError(f recordField) FieldError {
	fe := FieldError{Loc: []string{"body", f.name}}
	switch f.kind {
	case reflect.Int64:
		fe.Msg, fe.Type = "value is not a valid integer", TypeInt
	case reflect.Float64:
		fe.Msg, fe.Type = "value is not a valid number", TypeFloat
	default:
		fe.Msg, fe.Type = "value is not a valid string", TypeString
	}
	return fe
}

// Row builds a single tabular row with the given column order.
func (r *Record) Row(columns []string) (Row, error) {
	v := reflect.ValueOf(r).Elem()
	byName := make(map[string]recordField, len(recordFields))
	for _, f := range recordFields {
		byName[f.name] = f
	}

	row := make(Row, 0, len(columns))
	for _, col := range columns {
		f, ok := byName[col]
		if !ok {
			return nil, fmt.Errorf("unknown column %q", col)
		}
		field := v.Field(f.index)
		if field.IsNil() {
			return nil, fmt.Errorf("column %q has no value", col)
		}
		row = append(row, Cell{Name: col, Value: field.Elem().Interface()})
	}
	return row, nil
}
