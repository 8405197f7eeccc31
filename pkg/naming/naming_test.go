package naming

import (
	"strings"
	"testing"

	"github.com/blimu-dev/typegen/pkg/utils"
)

func pascalNamer() *Namer {
	return &Namer{Style: utils.ToPascalCase, Prefixes: []string{"the"}}
}

func TestNamerAssign(t *testing.T) {
	n := pascalNamer()

	if got := n.Assign("hello world", nil); got != "HelloWorld" {
		t.Errorf("Assign = %q, expected HelloWorld", got)
	}
	if got := n.Assign("thing", map[string]bool{"Thing": true}); got != "TheThing" {
		t.Errorf("Assign with collision = %q, expected TheThing", got)
	}
	forbidden := map[string]bool{"Thing": true, "TheThing": true}
	if got := n.Assign("thing", forbidden); got != "Thing2" {
		t.Errorf("Assign with prefix collision = %q, expected Thing2", got)
	}
	forbidden["Thing2"] = true
	if got := n.Assign("thing", forbidden); got != "Thing3" {
		t.Errorf("Assign should keep counting, got %q", got)
	}
	if got := n.Assign("", nil); got != "Anonymous" {
		t.Errorf("Assign of empty raw = %q, expected Anonymous", got)
	}
}

func TestResolveUniqueSpellings(t *testing.T) {
	root := NewNamespace("Type")
	n := pascalNamer()

	first := root.AddSimple("type", n)
	second := root.AddSimple("type", n)
	third := root.AddSimple("other", n)

	if err := Resolve(root); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	spellings := map[string]bool{}
	for _, name := range []*Name{first, second, third} {
		if !name.Resolved() {
			t.Fatal("all names should be resolved")
		}
		if spellings[name.Spelling()] {
			t.Errorf("duplicate spelling %q", name.Spelling())
		}
		spellings[name.Spelling()] = true
	}
	if spellings["Type"] {
		t.Error("the seeded keyword Type must not be used")
	}
}

func TestResolveChildNamespaceInheritsForbidden(t *testing.T) {
	root := NewNamespace()
	n := pascalNamer()
	outer := root.AddSimple("value", n)
	child := root.Child()
	inner := child.AddSimple("value", n)

	if err := Resolve(root); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if outer.Spelling() == inner.Spelling() {
		t.Errorf("child namespace name %q collides with ancestor", inner.Spelling())
	}
}

func TestResolveSiblingNamespacesAreIndependent(t *testing.T) {
	root := NewNamespace()
	n := pascalNamer()
	a := root.Child().AddSimple("value", n)
	b := root.Child().AddSimple("value", n)

	if err := Resolve(root); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if a.Spelling() != b.Spelling() {
		t.Errorf("sibling namespaces should not forbid each other: %q vs %q", a.Spelling(), b.Spelling())
	}
}

func TestResolveFixedAndDependent(t *testing.T) {
	root := NewNamespace()
	n := pascalNamer()

	base := root.AddSimple("person", n)
	fixed := root.AddFixed("package main")
	dep := root.AddDependent(func(parts []string) string {
		return strings.Join(parts, "") + "List"
	}, base)

	if err := Resolve(root); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if fixed.Spelling() != "package main" {
		t.Errorf("fixed spelling = %q", fixed.Spelling())
	}
	if dep.Spelling() != "PersonList" {
		t.Errorf("dependent spelling = %q, expected PersonList", dep.Spelling())
	}
}

func TestResolveFailsOnCycle(t *testing.T) {
	root := NewNamespace()
	n := pascalNamer()

	// A dependency on a name from an unresolvable chain: the placeholder is
	// its own dependency.
	placeholder := &Name{kind: dependentName, assemble: func(parts []string) string { return parts[0] }}
	placeholder.deps = []*Name{placeholder}
	root.members = append(root.members, placeholder)
	root.AddSimple("fine", n)

	err := Resolve(root)
	if err == nil {
		t.Fatal("expected a ResolveError for a cyclic dependency")
	}
	if _, ok := err.(*ResolveError); !ok {
		t.Errorf("expected *ResolveError, got %T", err)
	}
}
