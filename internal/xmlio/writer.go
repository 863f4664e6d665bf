package xmlio

import (
	"bytes"
	"time"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	dec "github.com/rezonia/zugferd/internal/decimal"
	"github.com/rezonia/zugferd/internal/profile"
)

// Attr is an attribute written together with an element. Attributes with
// an empty value are skipped.
type Attr struct {
	Key   string
	Value string
}

// A builds an Attr
func A(key, value string) Attr {
	return Attr{Key: key, Value: value}
}

// Writer builds a document in memory. Every element that names a Field is
// written only when the capability table permits it under the active
// profile; the empty Field marks structural wrappers.
type Writer struct {
	doc    *etree.Document
	cur    *etree.Element
	table  *profile.Table
	active profile.Profile
	log    zerolog.Logger
}

// NewWriter creates a writer for one table and active profile
func NewWriter(table *profile.Table, active profile.Profile, log zerolog.Logger) *Writer {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	return &Writer{
		doc:    doc,
		cur:    &doc.Element,
		table:  table,
		active: active,
		log:    log,
	}
}

// Profile returns the active profile
func (w *Writer) Profile() profile.Profile {
	return w.active
}

// Root creates the document element with its namespace bindings
func (w *Writer) Root(tag string, ns Namespaces) {
	root := w.doc.CreateElement(tag)
	for _, n := range ns {
		if n.Prefix == "" {
			root.CreateAttr("xmlns", n.URI)
		} else {
			root.CreateAttr("xmlns:"+n.Prefix, n.URI)
		}
	}
	w.cur = root
}

// Permits reports whether field may be written
func (w *Writer) Permits(field profile.Field) bool {
	if w.table.Permits(field, w.active) {
		return true
	}
	w.log.Debug().
		Str("field", string(field)).
		Str("profile", w.active.String()).
		Str("version", w.table.Version.String()).
		Msg("field not permitted, skipped")
	return false
}

// Section writes a container element and runs body inside it. The element
// is kept even when body writes nothing.
func (w *Writer) Section(field profile.Field, tag string, body func()) {
	w.section(field, tag, false, body)
}

// Optional is Section but drops the element when body leaves it empty
func (w *Writer) Optional(field profile.Field, tag string, body func()) {
	w.section(field, tag, true, body)
}

func (w *Writer) section(field profile.Field, tag string, prune bool, body func()) {
	if !w.Permits(field) {
		return
	}
	parent := w.cur
	el := parent.CreateElement(tag)
	w.cur = el
	body()
	w.cur = parent
	if prune && len(el.Child) == 0 && len(el.Attr) == 0 {
		parent.RemoveChild(el)
	}
}

// Element writes a leaf element, skipped when value is empty
func (w *Writer) Element(field profile.Field, tag, value string, attrs ...Attr) {
	if value == "" {
		return
	}
	w.Required(field, tag, value, attrs...)
}

// Required writes a leaf element even when value is empty
func (w *Writer) Required(field profile.Field, tag, value string, attrs ...Attr) {
	if !w.Permits(field) {
		return
	}
	el := w.cur.CreateElement(tag)
	for _, a := range attrs {
		if a.Value != "" {
			el.CreateAttr(a.Key, a.Value)
		}
	}
	if value != "" {
		el.SetText(value)
	}
}

// Attr sets an attribute on the current element
func (w *Writer) Attr(key, value string) {
	if value != "" {
		w.cur.CreateAttr(key, value)
	}
}

// Decimal writes v with a fixed scale, skipped when nil
func (w *Writer) Decimal(field profile.Field, tag string, v *decimal.Decimal, scale int32, attrs ...Attr) {
	if v == nil {
		return
	}
	w.Required(field, tag, dec.Format(*v, scale), attrs...)
}

// Amount writes a monetary value with two decimals
func (w *Writer) Amount(field profile.Field, tag string, v *decimal.Decimal, attrs ...Attr) {
	w.Decimal(field, tag, v, dec.AmountScale, attrs...)
}

// AmountValue is Amount for a non-optional value
func (w *Writer) AmountValue(field profile.Field, tag string, v decimal.Decimal, attrs ...Attr) {
	w.Decimal(field, tag, &v, dec.AmountScale, attrs...)
}

// Date writes <tag><inner format="102">CCYYMMDD</inner></tag>, skipped when nil
func (w *Writer) Date(field profile.Field, tag, inner string, t *time.Time) {
	if t == nil {
		return
	}
	w.Section(field, tag, func() {
		w.Required("", inner, FormatDate102(*t), A("format", DateFormat102))
	})
}

// Indicator writes <tag><inner>true|false</inner></tag>
func (w *Writer) Indicator(field profile.Field, tag, inner string, v bool) {
	value := "false"
	if v {
		value = "true"
	}
	w.Section(field, tag, func() {
		w.Required("", inner, value)
	})
}

// Bytes serializes the document indented by two spaces
func (w *Writer) Bytes() ([]byte, error) {
	w.doc.Indent(2)
	var buf bytes.Buffer
	if _, err := w.doc.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
