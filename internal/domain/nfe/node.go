package nfe

import (
	"strings"

	"github.com/beevik/etree"
)

// node envuelve un elemento etree con sus hijos directos indexados por nombre local.
// El índice se construye una sola vez por nodo visitado; los prefijos de namespace se ignoran
// (etree deja el prefijo en Space y el nombre local en Tag).
type node struct {
	el       *etree.Element
	children map[string][]*etree.Element
}

func wrap(el *etree.Element) *node {
	if el == nil {
		return nil
	}
	n := &node{el: el, children: make(map[string][]*etree.Element)}
	for _, c := range el.ChildElements() {
		n.children[c.Tag] = append(n.children[c.Tag], c)
	}
	return n
}

// name devuelve el nombre local del elemento.
func (n *node) name() string {
	if n == nil {
		return ""
	}
	return n.el.Tag
}

// child devuelve el primer hijo directo con ese nombre local, o nil.
func (n *node) child(name string) *node {
	if n == nil {
		return nil
	}
	list := n.children[name]
	if len(list) == 0 {
		return nil
	}
	return wrap(list[0])
}

// path recorre hijos directos sucesivos: path("total", "ICMSTot").
func (n *node) path(names ...string) *node {
	cur := n
	for _, name := range names {
		cur = cur.child(name)
	}
	return cur
}

// all devuelve todos los hijos directos con ese nombre local, en orden de documento.
func (n *node) all(name string) []*node {
	if n == nil {
		return nil
	}
	list := n.children[name]
	out := make([]*node, 0, len(list))
	for _, el := range list {
		out = append(out, wrap(el))
	}
	return out
}

// first devuelve el primer elemento hijo, sea cual sea su nombre (PISAliq, PISNT, COFINSOutr...).
func (n *node) first() *node {
	if n == nil {
		return nil
	}
	kids := n.el.ChildElements()
	if len(kids) == 0 {
		return nil
	}
	return wrap(kids[0])
}

// text devuelve el texto del hijo directo indicado, o "" si no existe.
func (n *node) text(name string) string {
	c := n.child(name)
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.el.Text())
}

// attr devuelve el valor del atributo (por nombre local), o "".
func (n *node) attr(name string) string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(n.el.SelectAttrValue(name, ""))
}
