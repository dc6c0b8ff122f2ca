package anymotion

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/reusedev/anymotion-cli/internal/consts"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Envelope wraps a response body. Fields are addressed by dotted paths such
// as "data" or "result.0.name".
type Envelope struct {
	StatusCode int
	Header     http.Header
	raw        []byte
}

func NewEnvelope(statusCode int, header http.Header, body []byte) *Envelope {
	return &Envelope{StatusCode: statusCode, Header: header, raw: body}
}

func (e *Envelope) get(path string) (jsoniter.Any, error) {
	a := json.Get(e.raw, splitPath(path)...)
	if a.ValueType() == jsoniter.InvalidValue {
		return nil, fmt.Errorf("%w: field %q not found", ErrResponse, path)
	}
	return a, nil
}

func (e *Envelope) Int(path string) (int, error) {
	a, err := e.get(path)
	if err != nil {
		return 0, err
	}
	if a.ValueType() != jsoniter.NumberValue {
		return 0, fmt.Errorf("%w: field %q is not a number", ErrResponse, path)
	}
	if f := a.ToFloat64(); f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: field %q is not an integer", ErrResponse, path)
	}
	return a.ToInt(), nil
}

func (e *Envelope) String(path string) (string, error) {
	a, err := e.get(path)
	if err != nil {
		return "", err
	}
	if a.ValueType() != jsoniter.StringValue {
		return "", fmt.Errorf("%w: field %q is not a string", ErrResponse, path)
	}
	return a.ToString(), nil
}

// OptString is String for nullable fields: missing and null both yield "".
func (e *Envelope) OptString(path string) (string, error) {
	a := json.Get(e.raw, splitPath(path)...)
	switch a.ValueType() {
	case jsoniter.InvalidValue, jsoniter.NilValue:
		return "", nil
	case jsoniter.StringValue:
		return a.ToString(), nil
	default:
		return "", fmt.Errorf("%w: field %q is not a string", ErrResponse, path)
	}
}

// Objects returns the array at path; every element must be a JSON object.
func (e *Envelope) Objects(path string) ([]map[string]any, error) {
	a, err := e.get(path)
	if err != nil {
		return nil, err
	}
	if a.ValueType() != jsoniter.ArrayValue {
		return nil, fmt.Errorf("%w: field %q is not an array", ErrResponse, path)
	}
	items, _ := a.GetInterface().([]interface{})
	ret := make([]map[string]any, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] is not an object", ErrResponse, path, i)
		}
		ret = append(ret, obj)
	}
	return ret, nil
}

func (e *Envelope) Value(path string) (any, error) {
	a, err := e.get(path)
	if err != nil {
		return nil, err
	}
	return a.GetInterface(), nil
}

// Object decodes the whole body, which must be a JSON object.
func (e *Envelope) Object() (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal(e.raw, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponse, err)
	}
	if obj == nil {
		return nil, fmt.Errorf("%w: body is not an object", ErrResponse)
	}
	return obj, nil
}

// Status reads execStatus. Missing or unknown values are returned as is and
// are never terminal.
func (e *Envelope) Status() consts.ExecStatus {
	s, err := e.OptString("execStatus")
	if err != nil {
		return ""
	}
	return consts.ExecStatus(s)
}

func splitPath(path string) []interface{} {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, ".")
	keys := make([]interface{}, 0, len(parts))
	for _, p := range parts {
		if i, err := strconv.Atoi(p); err == nil {
			keys = append(keys, i)
			continue
		}
		keys = append(keys, p)
	}
	return keys
}
