package query

import "github.com/quithub/qgraphql/internal/result"

// Ungroup flattens the top-level Group transitively and returns its
// children as a list. Group's own constructor already flattens nested
// Groups at construction time, so this is a simple unwrap.
func Ungroup(q *Query) []*Query {
	if q == nil || q.Kind == KindEmpty {
		return nil
	}
	if q.Kind == KindGroup {
		return q.Children
	}
	return []*Query{q}
}

func topLevelEntries(q *Query) []*Query {
	if q == nil || q.Kind == KindEmpty {
		return nil
	}
	if q.Kind == KindGroup {
		return q.Children
	}
	return []*Query{q}
}

// peelTransparent descends through Rename/Environment/TransformCursor,
// the node kinds treated as transparent for traversal, and returns the
// first node that is not one of them.
func peelTransparent(q *Query) *Query {
	for q != nil {
		switch q.Kind {
		case KindRename, KindEnvironment, KindTransformCursor:
			q = q.Child
		default:
			return q
		}
	}
	return q
}

// peelWithAlias descends the same transparent wrappers as
// peelTransparent, additionally recording the outermost Rename name
// encountered, and reports the field name once a Select/Wrap/Count is
// reached.
func peelWithAlias(q *Query) (alias string, name string, ok bool) {
	cur := q
	for cur != nil {
		switch cur.Kind {
		case KindRename:
			if alias == "" {
				alias = cur.Name
			}
			cur = cur.Child
		case KindEnvironment, KindTransformCursor:
			cur = cur.Child
		case KindSelect, KindWrap, KindCount:
			return alias, cur.Name, true
		default:
			return "", "", false
		}
	}
	return "", "", false
}

// Children descends through Rename/Environment/TransformCursor and
// returns the ungrouped children of the underlying Select/Wrap/Count;
// returns nil for any other node kind.
func Children(q *Query) []*Query {
	peeled := peelTransparent(q)
	if peeled == nil {
		return nil
	}
	switch peeled.Kind {
	case KindSelect, KindWrap, KindCount:
		return Ungroup(peeled.Child)
	default:
		return nil
	}
}

// HasField reports whether q has a top-level selection of f, looking
// through Rename/Environment/TransformCursor.
func HasField(q *Query, f string) bool {
	for _, c := range topLevelEntries(q) {
		if _, name, ok := peelWithAlias(c); ok && name == f {
			return true
		}
	}
	return false
}

// FieldAlias returns the outermost Rename name encountered on the way
// to a top-level selection of f, or ("", false) if f has no alias (or
// is not selected at all).
func FieldAlias(q *Query, f string) (string, bool) {
	for _, c := range topLevelEntries(q) {
		alias, name, ok := peelWithAlias(c)
		if ok && name == f && alias != "" {
			return alias, true
		}
	}
	return "", false
}

// RootName returns (name, alias) if q has a unique root selection;
// ("", "", false) otherwise. alias is "" when the root is unaliased.
func RootName(q *Query) (name string, alias string, ok bool) {
	entries := topLevelEntries(q)
	if len(entries) != 1 {
		return "", "", false
	}
	alias, name, ok = peelWithAlias(entries[0])
	return name, alias, ok
}

// RenameRoot returns q with its root selection aliased to n, replacing
// any existing alias; ok is false if q lacks a unique root selection.
func RenameRoot(q *Query, n string) (*Query, bool) {
	entries := topLevelEntries(q)
	if len(entries) != 1 {
		return nil, false
	}
	target := entries[0]
	if target.Kind == KindRename {
		target = target.Child
	}
	if _, _, ok := peelWithAlias(target); !ok {
		return nil, false
	}
	return Rename(n, target), true
}

// MapFields applies f to every top-level node of q in order, rebuilding
// the tree from the results and propagating any failures from f's
// accumulating carrier. f is applied to the raw top-level entries
// (Select/Wrap/Count, possibly wrapped by Rename/Environment/
// TransformCursor) rather than the nodes they peel to.
func MapFields(q *Query, f func(*Query) result.Result[*Query]) result.Result[*Query] {
	entries := topLevelEntries(q)
	mapped := result.Traverse(entries, f)
	return result.Map(mapped, func(qs []*Query) *Query {
		return Group(qs...)
	})
}

// MkPathQuery constructs a minimal query selecting every path in paths,
// sharing common prefixes; duplicate one-element paths collapse onto
// the same Select.
func MkPathQuery(paths [][]string) *Query {
	return mkPathQueryLevel(paths)
}

func mkPathQueryLevel(paths [][]string) *Query {
	type group struct {
		rest [][]string
	}
	var order []string
	groups := map[string]*group{}
	for _, p := range paths {
		if len(p) == 0 {
			continue
		}
		head := p[0]
		g, ok := groups[head]
		if !ok {
			g = &group{}
			groups[head] = g
			order = append(order, head)
		}
		if len(p) > 1 {
			g.rest = append(g.rest, p[1:])
		}
	}
	selects := make([]*Query, 0, len(order))
	for _, head := range order {
		g := groups[head]
		child := Empty()
		if len(g.rest) > 0 {
			child = mkPathQueryLevel(g.rest)
		}
		selects = append(selects, Select(head, nil, child))
	}
	return Group(selects...)
}
