// Package semantic resolves names: a declare pass populates the module's
// namespace tree and an identify pass rewrites every occurrence to its
// fully qualified form, flattening namespaces away.
package semantic

import "fmt"

// entry is one declared name: its qualified form, and whether it names a
// data combinator. Data combinators double as constructors in patterns,
// which is the one place the distinction matters.
type entry struct {
	qualified string
	data      bool
}

// Namespace is one node of the module's namespace tree: a local map from
// simple names to qualified names plus child namespaces per segment.
type Namespace struct {
	local    map[string]entry
	children map[string]*Namespace
}

func NewNamespace() *Namespace {
	return &Namespace{
		local:    map[string]entry{},
		children: map[string]*Namespace{},
	}
}

// child returns the sub-namespace for segment, creating it on demand.
func (n *Namespace) child(segment string) *Namespace {
	if c, ok := n.children[segment]; ok {
		return c
	}
	c := NewNamespace()
	n.children[segment] = c
	return c
}

// Find descends the tree along path without creating namespaces. Returns
// nil when any segment is missing.
func (n *Namespace) Find(path []string) *Namespace {
	cur := n
	for _, s := range path {
		c, ok := cur.children[s]
		if !ok {
			return nil
		}
		cur = c
	}
	return cur
}

// Declare inserts name under path. Redeclaring an existing name fails.
func (n *Namespace) Declare(path []string, name, qualified string) error {
	return n.declare(path, name, entry{qualified: qualified})
}

// DeclareData inserts a data combinator name under path.
func (n *Namespace) DeclareData(path []string, name, qualified string) error {
	return n.declare(path, name, entry{qualified: qualified, data: true})
}

func (n *Namespace) declare(path []string, name string, e entry) error {
	cur := n
	for _, s := range path {
		cur = cur.child(s)
	}
	if _, ok := cur.local[name]; ok {
		return fmt.Errorf("redeclaration of %s", name)
	}
	cur.local[name] = e
	return nil
}

// DeclareImplicit inserts name under path, silently overwriting. Object
// fields share names across objects and use this.
func (n *Namespace) DeclareImplicit(path []string, name, qualified string) {
	cur := n
	for _, s := range path {
		cur = cur.child(s)
	}
	cur.local[name] = entry{qualified: qualified, data: true}
}

// Get resolves name under path; empty string when absent.
func (n *Namespace) Get(path []string, name string) string {
	cur := n.Find(path)
	if cur == nil {
		return ""
	}
	return cur.local[name].qualified
}

// GetData resolves name under path when it names a data combinator; empty
// string otherwise.
func (n *Namespace) GetData(path []string, name string) string {
	cur := n.Find(path)
	if cur == nil {
		return ""
	}
	e := cur.local[name]
	if !e.data {
		return ""
	}
	return e.qualified
}

// Names lists the simple names declared directly in the namespace at path.
func (n *Namespace) Names(path []string) []string {
	cur := n.Find(path)
	if cur == nil {
		return nil
	}
	out := make([]string, 0, len(cur.local))
	for k := range cur.local {
		out = append(out, k)
	}
	return out
}

// Range is a lexical scope frame: local bindings, the namespaces brought
// in scope by using directives, and a parent frame. Lookup walks the
// frame's locals, then its uses in order, then the parent.
type Range struct {
	local  map[string]string
	uses   []*Namespace
	parent *Range
}

// NewRange builds the root frame over the global namespace tree.
func NewRange(globals *Namespace) *Range {
	r := &Range{local: map[string]string{}}
	r.uses = append(r.uses, globals)
	return r
}

// Enter opens a nested frame.
func (r *Range) Enter() *Range {
	return &Range{local: map[string]string{}, parent: r}
}

// Leave closes the frame and returns its parent.
func (r *Range) Leave() *Range {
	return r.parent
}

// Declare binds a simple name in this frame.
func (r *Range) Declare(name, qualified string) error {
	if _, ok := r.local[name]; ok {
		return fmt.Errorf("redeclaration of %s", name)
	}
	r.local[name] = qualified
	return nil
}

// LookupLocal resolves a name against the lexical bindings of this frame
// and its parents; empty string when unresolved. Namespaces are not
// consulted: an identifier is a variable use only when a pattern bound it.
func (r *Range) LookupLocal(name string) string {
	for f := r; f != nil; f = f.parent {
		if v, ok := f.local[name]; ok {
			return v
		}
	}
	return ""
}

// Lookup resolves an unqualified name: lexical bindings first, then the
// in-scope namespaces; empty string when unresolved.
func (r *Range) Lookup(name string) string {
	for f := r; f != nil; f = f.parent {
		if v, ok := f.local[name]; ok {
			return v
		}
		for _, ns := range f.uses {
			if v := ns.Get(nil, name); v != "" {
				return v
			}
		}
	}
	return ""
}

// LookupUses resolves an unqualified name against the in-scope namespaces
// only; empty string when unresolved.
func (r *Range) LookupUses(name string) string {
	for f := r; f != nil; f = f.parent {
		for _, ns := range f.uses {
			if v := ns.Get(nil, name); v != "" {
				return v
			}
		}
	}
	return ""
}

// LookupDataUses resolves an unqualified name against the in-scope
// namespaces when it names a data combinator; empty string otherwise. In
// pattern position a data name is a constructor, not a binder.
func (r *Range) LookupDataUses(name string) string {
	for f := r; f != nil; f = f.parent {
		for _, ns := range f.uses {
			if v := ns.GetData(nil, name); v != "" {
				return v
			}
		}
	}
	return ""
}

// LookupQualified resolves a path-qualified name against the uses of each
// frame; empty string when unresolved.
func (r *Range) LookupQualified(path []string, name string) string {
	for f := r; f != nil; f = f.parent {
		for _, ns := range f.uses {
			if v := ns.Get(path, name); v != "" {
				return v
			}
		}
	}
	return ""
}

// AddUsing brings the namespace at path (resolved against the globals of
// the root frame) into this frame's scope. Unknown paths are ignored; an
// unresolved name through them surfaces later.
func (r *Range) AddUsing(path []string) {
	root := r
	for root.parent != nil {
		root = root.parent
	}
	if len(root.uses) == 0 {
		return
	}
	globals := root.uses[0]
	ns := globals.Find(path)
	if ns == nil {
		return
	}
	r.uses = append(r.uses, ns)
}
