// Package dom is a minimal element tree that can be serialised as HTML.
package dom

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type Attr struct {
	Key string
	Val string
}

type Decl struct {
	Property string
	Value    string
}

// Style is an ordered list of CSS declarations. Setting a property that is
// already present replaces its value in place.
type Style []Decl

func (s Style) Get(property string) (string, bool) {
	for _, d := range s {
		if d.Property == property {
			return d.Value, true
		}
	}
	return "", false
}

func (s *Style) Set(property, value string) {
	for i, d := range *s {
		if d.Property == property {
			(*s)[i].Value = value
			return
		}
	}
	*s = append(*s, Decl{Property: property, Value: value})
}

// Merge applies every declaration of o on top of s.
func (s *Style) Merge(o Style) {
	for _, d := range o {
		s.Set(d.Property, d.Value)
	}
}

func (s Style) String() string {
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = d.Property + ": " + d.Value
	}
	return strings.Join(parts, "; ")
}

// Element is a node of the render tree. Text is rendered, escaped, before
// the children. OnLoad is the element's load handler; it is kept on the tree
// for the host and never serialised.
type Element struct {
	Tag      string
	Attrs    []Attr
	Style    Style
	Text     string
	Children []*Element
	OnLoad   func()
}

// Text returns an element holding only text.
func Text(tag, text string) *Element {
	return &Element{Tag: tag, Text: text}
}

func New(tag string, children ...*Element) *Element {
	e := &Element{Tag: tag}
	for _, c := range children {
		if c != nil {
			e.Children = append(e.Children, c)
		}
	}
	return e
}

func (e *Element) Attr(key string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets key to val. Empty values are kept: alt="" is meaningful.
func (e *Element) SetAttr(key, val string) *Element {
	for i, a := range e.Attrs {
		if a.Key == key {
			e.Attrs[i].Val = val
			return e
		}
	}
	e.Attrs = append(e.Attrs, Attr{Key: key, Val: val})
	return e
}

func (e *Element) Append(children ...*Element) *Element {
	for _, c := range children {
		if c != nil {
			e.Children = append(e.Children, c)
		}
	}
	return e
}

// Walk visits e and its descendants depth first. Returning false from fn
// stops the walk.
func (e *Element) Walk(fn func(*Element) bool) bool {
	if e == nil {
		return true
	}
	if !fn(e) {
		return false
	}
	for _, c := range e.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the first element in depth-first order matching fn.
func (e *Element) Find(fn func(*Element) bool) *Element {
	var found *Element
	e.Walk(func(el *Element) bool {
		if fn(el) {
			found = el
			return false
		}
		return true
	})
	return found
}

// HasClass reports whether the class attribute contains name.
func (e *Element) HasClass(name string) bool {
	cls, _ := e.Attr("class")
	for _, c := range strings.Fields(cls) {
		if c == name {
			return true
		}
	}
	return false
}

// Node converts the tree into an x/net/html node tree.
func (e *Element) Node() *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     e.Tag,
		DataAtom: atom.Lookup([]byte(e.Tag)),
	}
	for _, a := range e.Attrs {
		n.Attr = append(n.Attr, html.Attribute{Key: a.Key, Val: a.Val})
	}
	if len(e.Style) > 0 {
		n.Attr = append(n.Attr, html.Attribute{Key: "style", Val: e.Style.String()})
	}
	if e.Text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: e.Text})
	}
	for _, c := range e.Children {
		n.AppendChild(c.Node())
	}
	return n
}

// Render writes e as HTML. A nil element renders nothing.
func Render(w io.Writer, e *Element) error {
	if e == nil {
		return nil
	}
	return html.Render(w, e.Node())
}

func RenderString(e *Element) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, e); err != nil {
		return "", err
	}
	return buf.String(), nil
}
