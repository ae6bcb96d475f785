// Package htmlx builds small HTML fragments with escaped text and
// attributes in a fixed order.
package htmlx

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Attr is one attribute. Attributes render in the order given.
type Attr struct {
	Name  string
	Value string
}

// A builds an Attr.
func A(name, value string) Attr {
	return Attr{Name: name, Value: value}
}

// Escape escapes text for use in element content or attribute values.
func Escape(text string) string {
	return templ.EscapeString(text)
}

// Open renders a start tag.
func Open(tag string, attrs ...Attr) string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(tag)
	for _, attr := range attrs {
		b.WriteByte(' ')
		b.WriteString(attr.Name)
		b.WriteString(`="`)
		b.WriteString(templ.EscapeString(attr.Value))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	return b.String()
}

// Close renders an end tag.
func Close(tag string) string {
	return "</" + tag + ">"
}

// Element renders tag around escaped text.
func Element(tag string, text string, attrs ...Attr) string {
	return Open(tag, attrs...) + templ.EscapeString(text) + Close(tag)
}

// RawElement renders tag around inner markup, which is not escaped.
func RawElement(tag string, inner string, attrs ...Attr) string {
	return Open(tag, attrs...) + inner + Close(tag)
}

// Void renders an element without content or end tag, such as img.
func Void(tag string, attrs ...Attr) string {
	return Open(tag, attrs...)
}

// Component wraps trusted markup as a templ component.
func Component(markup string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, markup)
		return err
	})
}
