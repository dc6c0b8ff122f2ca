package handler

import (
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/gookit/color"

	"github.com/reusedev/anymotion-cli/config"
	"github.com/reusedev/anymotion-cli/internal/consts"
	"github.com/reusedev/anymotion-cli/internal/modules/observer"
)

var secretFields = []string{"clientSecret", "accessToken"}

// Tracer prints every exchange with the API for --verbose. Credentials are
// masked.
type Tracer struct {
	w     io.Writer
	color bool
}

func NewTracer(w io.Writer, colored bool) *Tracer {
	return &Tracer{w: w, color: colored}
}

func (t *Tracer) Update(event string, data interface{}) {
	switch event {
	case consts.EventRequest:
		if rec, ok := data.(*observer.RequestRecord); ok {
			t.request(rec)
		}
	case consts.EventResponse:
		if rec, ok := data.(*observer.ResponseRecord); ok {
			t.response(rec)
		}
	}
}

func (t *Tracer) request(rec *observer.RequestRecord) {
	fmt.Fprintf(t.w, "%s %s\n", paint(t.color, color.Green, rec.Method), paint(t.color, color.Cyan, rec.URL))
	t.header(rec.Header)
	if rec.JSON != nil {
		if body, err := json.Marshal(rec.JSON); err == nil {
			t.body(body)
		}
	}
	fmt.Fprintln(t.w)
}

func (t *Tracer) response(rec *observer.ResponseRecord) {
	proto := rec.Proto
	if proto == "" {
		proto = "HTTP"
	}
	reason := strings.TrimSpace(strings.TrimPrefix(rec.Status, fmt.Sprint(rec.StatusCode)))
	fmt.Fprintf(t.w, "%s %s %s\n",
		paint(t.color, color.Blue, proto),
		paint(t.color, color.Blue, fmt.Sprint(rec.StatusCode)),
		paint(t.color, color.Cyan, reason))
	t.header(rec.Header)
	if len(rec.Body) > 0 {
		t.body(rec.Body)
	}
	fmt.Fprintln(t.w)
}

func (t *Tracer) header(h http.Header) {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		v := strings.Join(h[k], ", ")
		if k == "Authorization" {
			scheme, token, _ := strings.Cut(v, " ")
			v = scheme + " " + config.Mask(token)
		}
		fmt.Fprintf(t.w, "%s: %s\n", paint(t.color, color.Cyan, k), v)
	}
}

// body prints JSON bodies indented with secrets masked, anything else as is.
func (t *Tracer) body(raw []byte) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		fmt.Fprintf(t.w, "\n%s\n", raw)
		return
	}
	if obj, ok := v.(map[string]any); ok {
		for _, k := range secretFields {
			if s, ok := obj[k].(string); ok {
				obj[k] = config.Mask(s)
			}
		}
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return
	}
	fmt.Fprintf(t.w, "\n%s\n", out)
}
