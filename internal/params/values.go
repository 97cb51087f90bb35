package params

import (
	"github.com/link2cory/echo-hello-world/internal/schema"
)

// Values holds the bound parameters of one request, keyed by parameter name.
type Values struct {
	values map[string]any
	set    map[string]bool
}

func newValues() *Values {
	return &Values{values: map[string]any{}, set: map[string]bool{}}
}

func (v *Values) put(name string, value any, set bool) {
	v.values[name] = value
	v.set[name] = set
}

// Get returns the raw bound value (nil when absent and defaulted to null).
func (v *Values) Get(name string) any { return v.values[name] }

// IsSet reports whether the client supplied the parameter.
func (v *Values) IsSet(name string) bool { return v.set[name] }

func (v *Values) String(name string) string {
	s, _ := v.values[name].(string)
	return s
}

func (v *Values) Int(name string) int64 {
	n, _ := v.values[name].(int64)
	return n
}

func (v *Values) Float(name string) float64 {
	f, _ := v.values[name].(float64)
	return f
}

func (v *Values) Bool(name string) bool {
	b, _ := v.values[name].(bool)
	return b
}

// Strings returns a list of strings, nil when the parameter was absent and
// has no default.
func (v *Values) Strings(name string) []string {
	items, ok := v.values[name].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func (v *Values) Record(name string) *schema.Record {
	r, _ := v.values[name].(*schema.Record)
	return r
}

func (v *Values) Records(name string) []*schema.Record {
	items, _ := v.values[name].([]any)
	out := make([]*schema.Record, 0, len(items))
	for _, item := range items {
		if r, ok := item.(*schema.Record); ok {
			out = append(out, r)
		}
	}
	return out
}

func (v *Values) Bytes(name string) []byte {
	b, _ := v.values[name].([]byte)
	return b
}

func (v *Values) BytesList(name string) [][]byte {
	items, _ := v.values[name].([]any)
	out := make([][]byte, 0, len(items))
	for _, item := range items {
		if b, ok := item.([]byte); ok {
			out = append(out, b)
		}
	}
	return out
}

func (v *Values) Upload(name string) *UploadFile {
	u, _ := v.values[name].(*UploadFile)
	return u
}

func (v *Values) Uploads(name string) []*UploadFile {
	items, _ := v.values[name].([]any)
	out := make([]*UploadFile, 0, len(items))
	for _, item := range items {
		if u, ok := item.(*UploadFile); ok {
			out = append(out, u)
		}
	}
	return out
}
