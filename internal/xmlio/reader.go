package xmlio

import (
	"io"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	dec "github.com/rezonia/zugferd/internal/decimal"
)

// ReadDocument parses r into a DOM. The reader is consumed but not closed.
func ReadDocument(r io.Reader) (*etree.Document, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, err
	}
	if doc.Root() == nil {
		return nil, etree.ErrXML
	}
	return doc, nil
}

// Navigator resolves slash separated paths such as
// "ram:SellerTradeParty/ram:Name" against namespace URIs, not prefixes,
// so documents using other prefixes decode the same way. A segment
// without prefix matches the default namespace when one is bound,
// otherwise any namespace.
type Navigator struct {
	ns Namespaces
}

// NewNavigator creates a navigator for the given bindings
func NewNavigator(ns Namespaces) *Navigator {
	return &Navigator{ns: ns}
}

type step struct {
	uri   string
	local string
	any   bool
}

func (n *Navigator) compile(path string) []step {
	segments := strings.Split(path, "/")
	steps := make([]step, 0, len(segments))
	for _, seg := range segments {
		if seg == "" || seg == "." {
			continue
		}
		prefix, local := "", seg
		if i := strings.IndexByte(seg, ':'); i >= 0 {
			prefix, local = seg[:i], seg[i+1:]
		}
		uri, ok := n.ns.URI(prefix)
		steps = append(steps, step{uri: uri, local: local, any: !ok && prefix == ""})
	}
	return steps
}

func (s step) matches(el *etree.Element) bool {
	if el.Tag != s.local {
		return false
	}
	return s.any || el.NamespaceURI() == s.uri
}

// FindAll returns every element reached by path from ctx, in document order
func (n *Navigator) FindAll(ctx *etree.Element, path string) []*etree.Element {
	if ctx == nil {
		return nil
	}
	current := []*etree.Element{ctx}
	for _, s := range n.compile(path) {
		var next []*etree.Element
		for _, el := range current {
			for _, child := range el.ChildElements() {
				if s.matches(child) {
					next = append(next, child)
				}
			}
		}
		if len(next) == 0 {
			return nil
		}
		current = next
	}
	return current
}

// Find returns the first element reached by path, nil when absent
func (n *Navigator) Find(ctx *etree.Element, path string) *etree.Element {
	all := n.FindAll(ctx, path)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

// Exists reports whether path resolves
func (n *Navigator) Exists(ctx *etree.Element, path string) bool {
	return n.Find(ctx, path) != nil
}

// Text returns the trimmed text at path, empty when absent
func (n *Navigator) Text(ctx *etree.Element, path string) string {
	el := n.Find(ctx, path)
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Text())
}

// Texts returns the trimmed text of every element at path
func (n *Navigator) Texts(ctx *etree.Element, path string) []string {
	var out []string
	for _, el := range n.FindAll(ctx, path) {
		out = append(out, strings.TrimSpace(el.Text()))
	}
	return out
}

// Attr returns an attribute of the element at path, empty when absent
func (n *Navigator) Attr(ctx *etree.Element, path, key string) string {
	el := n.Find(ctx, path)
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.SelectAttrValue(key, ""))
}

// Decimal returns the number at path, nil when absent or not a number
func (n *Navigator) Decimal(ctx *etree.Element, path string) *decimal.Decimal {
	return dec.ParsePtr(n.Text(ctx, path))
}

// DecimalValue is Decimal with zero for absent values
func (n *Navigator) DecimalValue(ctx *etree.Element, path string) decimal.Decimal {
	return dec.Value(n.Decimal(ctx, path))
}

// Bool reads an indicator, true for "true" or "1"
func (n *Navigator) Bool(ctx *etree.Element, path string) bool {
	v := strings.ToLower(n.Text(ctx, path))
	return v == "true" || v == "1"
}

// DateStrategy is one way of extracting a date below ctx
type DateStrategy func(n *Navigator, ctx *etree.Element) (time.Time, bool)

// FormattedDate reads an element carrying a format qualifier attribute
func FormattedDate(path string) DateStrategy {
	return func(n *Navigator, ctx *etree.Element) (time.Time, bool) {
		el := n.Find(ctx, path)
		if el == nil {
			return time.Time{}, false
		}
		t, err := ParseDate(el.SelectAttrValue("format", DateFormat102), el.Text())
		return t, err == nil
	}
}

// PlainDate reads the bare text of an element as CCYYMMDD or ISO date
func PlainDate(path string) DateStrategy {
	return func(n *Navigator, ctx *etree.Element) (time.Time, bool) {
		text := n.Text(ctx, path)
		if text == "" {
			return time.Time{}, false
		}
		t, err := ParseDate("", text)
		return t, err == nil
	}
}

// CIIDate returns the strategies for a CII date wrapper: the udt string,
// the qdt string, then the bare element text
func CIIDate(path string) []DateStrategy {
	return []DateStrategy{
		FormattedDate(path + "/udt:DateTimeString"),
		FormattedDate(path + "/qdt:DateTimeString"),
		PlainDate(path),
	}
}

// Date runs the strategies in order, the first success wins
func (n *Navigator) Date(ctx *etree.Element, strategies ...DateStrategy) *time.Time {
	if ctx == nil {
		return nil
	}
	for _, s := range strategies {
		if t, ok := s(n, ctx); ok {
			return &t
		}
	}
	return nil
}
