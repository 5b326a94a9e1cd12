package pages

import (
	"context"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// fragment adapts a markup-writing function into a templ component.
func fragment(render func(ctx context.Context, h *html) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		if err := render(ctx, h); err != nil {
			return err
		}
		return h.err
	})
}

// html accumulates the first write error so fragments can be written without
// checking every call.
type html struct {
	w   io.Writer
	err error
}

func (h *html) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// f formats markup. Numbers and booleans are written as is; every other
// argument is rendered to text and escaped before it reaches the format.
func (h *html) f(format string, args ...any) {
	escaped := make([]any, len(args))
	for i, arg := range args {
		escaped[i] = escapeArg(arg)
	}
	h.raw(fmt.Sprintf(format, escaped...))
}

func escapeArg(arg any) any {
	switch arg.(type) {
	case fmt.Stringer, error:
		return templ.EscapeString(fmt.Sprint(arg))
	}
	switch reflect.ValueOf(arg).Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return arg
	default:
		return templ.EscapeString(fmt.Sprint(arg))
	}
}

func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *html) component(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

func selected(ok bool) string {
	if ok {
		return " selected"
	}
	return ""
}

// DefaultDash returns an em dash when the provided value is empty or whitespace.
func DefaultDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "—"
	}
	return value
}

// ParseUint extracts a uint from the provided string, returning zero on failure.
func ParseUint(value string) uint {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0
	}
	parsed, err := strconv.ParseUint(trimmed, 10, 64)
	if err != nil {
		return 0
	}
	return uint(parsed)
}

// JoinIDs renders ids as the comma-separated value the composer keeps in hidden fields.
func JoinIDs(ids []uint) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ",")
}

// JoinInts is JoinIDs for quantities.
func JoinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
