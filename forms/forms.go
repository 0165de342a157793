package forms

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"lumarise-backend/apperrors"
)

// Values is a request body flattened to field name → raw text. A nil value
// means the client sent JSON null.
type Values map[string]*string

func (v Values) Get(name string) (string, bool) {
	raw, ok := v[name]
	if !ok || raw == nil {
		return "", ok
	}
	return *raw, true
}

// FromJSON flattens a JSON object. Nested objects and arrays are kept as
// their JSON text so fields such as deleted_images can parse them later.
func FromJSON(body []byte) (Values, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return Values{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeValidation, err, "request body must be a JSON object").
			WithDetails(map[string]string{"body": err.Error()})
	}

	out := make(Values, len(obj))
	for key, value := range obj {
		switch v := value.(type) {
		case nil:
			out[key] = nil
		case string:
			out[key] = &v
		case json.Number:
			s := v.String()
			out[key] = &s
		case bool:
			s := strconv.FormatBool(v)
			out[key] = &s
		default:
			raw, err := json.Marshal(v)
			if err != nil {
				return nil, apperrors.Wrap(apperrors.CodeValidation, err, "invalid field "+key)
			}
			s := string(raw)
			out[key] = &s
		}
	}
	return out, nil
}

// FromForm keeps the first value of every form field.
func FromForm(form url.Values) Values {
	out := make(Values, len(form))
	for key, values := range form {
		if len(values) == 0 {
			continue
		}
		s := values[0]
		out[key] = &s
	}
	return out
}

// Patch is a validated set of field assignments, applied later inside the
// write transaction.
type Patch[T any] []func(*T)

func (p Patch[T]) Apply(target *T) {
	for _, set := range p {
		set(target)
	}
}

// Field is one entry of an entity's explicit wire field list.
type Field[T any] struct {
	Name     string
	Required bool
	parse    func(raw *string) (func(*T), error)
}

// Schema lists the writable fields of one entity.
type Schema[T any] []Field[T]

// Bind validates vals against the schema. Unknown keys are ignored; with
// partial set, missing required fields are allowed.
func (s Schema[T]) Bind(vals Values, partial bool) (Patch[T], error) {
	details := map[string]string{}
	patch := make(Patch[T], 0, len(s))

	for _, f := range s {
		raw, ok := vals[f.Name]
		if !ok {
			if f.Required && !partial {
				details[f.Name] = "This field is required."
			}
			continue
		}
		apply, err := f.parse(raw)
		if err != nil {
			details[f.Name] = err.Error()
			continue
		}
		patch = append(patch, apply)
	}

	if len(details) > 0 {
		return nil, apperrors.New(apperrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return patch, nil
}

// Names returns the field names in declaration order.
func (s Schema[T]) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// Require marks a field as required on create and full update.
func Require[T any](f Field[T]) Field[T] {
	f.Required = true
	return f
}

var errNull = fmt.Errorf("This field may not be null.")

func trimmed(raw *string) string {
	return strings.TrimSpace(*raw)
}
