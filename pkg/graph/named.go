package graph

// NameSet is an ordered set of candidate names for a type, tagged with its
// origin. Given names come from the user (top-level names, schema titles);
// inferred names come from the property path under which the type was found.
// When sets of different origin meet, the given side wins outright.
type NameSet struct {
	names []string
	given bool
}

// Inferred builds a name set of inferred names.
func Inferred(names ...string) NameSet {
	s := NameSet{}
	for _, n := range names {
		s.add(n)
	}
	return s
}

// Given builds a name set of user-supplied names.
func Given(names ...string) NameSet {
	s := NameSet{given: true}
	for _, n := range names {
		s.add(n)
	}
	return s
}

// IsGiven reports whether the set holds user-supplied names.
func (s NameSet) IsGiven() bool { return s.given }

// Names returns the names in insertion order.
func (s NameSet) Names() []string { return s.names }

// Primary returns the first name, or "" for an empty set.
func (s NameSet) Primary() string {
	if len(s.names) == 0 {
		return ""
	}
	return s.names[0]
}

func (s *NameSet) add(name string) {
	if name == "" {
		return
	}
	for _, n := range s.names {
		if n == name {
			return
		}
	}
	s.names = append(s.names, name)
}

// AddInferred adds an inferred name. It is a no-op on a set that already
// holds given names.
func (s *NameSet) AddInferred(name string) {
	if s.given {
		return
	}
	s.add(name)
}

// AddGiven adds a given name. Any inferred names the set held are discarded.
func (s *NameSet) AddGiven(name string) {
	if name == "" {
		return
	}
	if !s.given {
		s.names = nil
		s.given = true
	}
	s.add(name)
}

// MergeNames combines two name sets: given dominates inferred, and sets of
// equal origin union their names in order.
func MergeNames(a, b NameSet) NameSet {
	if a.given != b.given {
		if a.given {
			return a
		}
		return b
	}
	out := NameSet{given: a.given}
	for _, n := range a.names {
		out.add(n)
	}
	for _, n := range b.names {
		out.add(n)
	}
	return out
}
