// Package naming assigns collision-free identifiers to the named entities of
// a type graph. Names live in a forest of namespaces; each namespace is
// seeded with the target language's reserved words, and a name's final
// spelling must be unique against every spelling already taken in its own
// namespace and all its ancestors.
package naming

import (
	"fmt"
	"strconv"
)

// ResolveError reports a resolution that could not converge. It indicates a
// bug in forbidden-name declarations or a dependency cycle, not bad input,
// and aborts the session.
type ResolveError struct {
	Unresolved int
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("name resolution did not converge: %d names unresolved", e.Unresolved)
}

type nameKind int

const (
	fixedName nameKind = iota
	simpleName
	dependentName
)

// Name is one identifier to be assigned: a Fixed literal spelling, a Simple
// raw name styled by a namer subject to collision avoidance, or a Dependent
// name assembled from other resolved names.
type Name struct {
	kind     nameKind
	fixed    string
	raw      string
	namer    *Namer
	deps     []*Name
	assemble func(parts []string) string

	spelling string
	resolved bool
}

// Spelling returns the resolved final spelling. It is only meaningful after
// Resolve succeeds.
func (n *Name) Spelling() string { return n.spelling }

// Resolved reports whether the name has been assigned.
func (n *Name) Resolved() bool { return n.resolved }

// Namespace is one node of the naming forest. It owns names and forbids the
// spellings of its ancestors' names in addition to its own.
type Namespace struct {
	parent   *Namespace
	children []*Namespace
	keywords []string
	members  []*Name
}

// NewNamespace returns a root namespace whose members must avoid the given
// reserved words.
func NewNamespace(keywords ...string) *Namespace {
	return &Namespace{keywords: keywords}
}

// Child creates a nested namespace. Members of the child must avoid the
// child's own keywords plus everything forbidden in the parent chain.
func (ns *Namespace) Child(keywords ...string) *Namespace {
	c := &Namespace{parent: ns, keywords: keywords}
	ns.children = append(ns.children, c)
	return c
}

// AddFixed adds a name whose final spelling is the literal s.
func (ns *Namespace) AddFixed(s string) *Name {
	n := &Name{kind: fixedName, fixed: s}
	ns.members = append(ns.members, n)
	return n
}

// AddSimple adds a name to be styled by namer, avoiding collisions.
func (ns *Namespace) AddSimple(raw string, namer *Namer) *Name {
	n := &Name{kind: simpleName, raw: raw, namer: namer}
	ns.members = append(ns.members, n)
	return n
}

// AddDependent adds a name assembled from other names once they resolve.
func (ns *Namespace) AddDependent(assemble func(parts []string) string, deps ...*Name) *Name {
	n := &Name{kind: dependentName, deps: deps, assemble: assemble}
	ns.members = append(ns.members, n)
	return n
}

// forbidden collects the spellings a member of ns must avoid: keywords and
// already-assigned spellings of ns and every ancestor.
func (ns *Namespace) forbidden() map[string]bool {
	out := map[string]bool{}
	for cur := ns; cur != nil; cur = cur.parent {
		for _, k := range cur.keywords {
			out[k] = true
		}
		for _, m := range cur.members {
			if m.resolved {
				out[m.spelling] = true
			}
		}
	}
	return out
}

// collect returns the forest rooted at ns in preorder, parents before
// children, so outer names are assigned before the names nested under them.
func (ns *Namespace) collect() []*Namespace {
	out := []*Namespace{ns}
	for _, c := range ns.children {
		out = append(out, c.collect()...)
	}
	return out
}

// Resolve assigns every name in the forest in a single fixed-point pass:
// names whose dependencies are resolved are assigned in namespace order
// until no name remains. Failure to converge is fatal.
func Resolve(root *Namespace) error {
	nss := root.collect()
	remaining := 0
	for _, ns := range nss {
		remaining += len(ns.members)
	}

	for progress := true; progress && remaining > 0; {
		progress = false
		for _, ns := range nss {
			for _, m := range ns.members {
				if m.resolved || !depsResolved(m) {
					continue
				}
				assign(m, ns.forbidden())
				remaining--
				progress = true
			}
		}
	}
	if remaining > 0 {
		return &ResolveError{Unresolved: remaining}
	}
	return nil
}

func depsResolved(n *Name) bool {
	for _, d := range n.deps {
		if !d.resolved {
			return false
		}
	}
	return true
}

func assign(n *Name, forbidden map[string]bool) {
	switch n.kind {
	case fixedName:
		n.spelling = n.fixed
	case simpleName:
		n.spelling = n.namer.Assign(n.raw, forbidden)
	case dependentName:
		parts := make([]string, len(n.deps))
		for i, d := range n.deps {
			parts[i] = d.spelling
		}
		s := n.assemble(parts)
		for i := 2; forbidden[s]; i++ {
			s = n.assemble(parts) + strconv.Itoa(i)
		}
		n.spelling = s
	}
	n.resolved = true
}
