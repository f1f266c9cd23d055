package query

import (
	"fmt"

	"github.com/quithub/qgraphql/internal/gvalue"
	"github.com/quithub/qgraphql/internal/result"
)

// MatchPossiblyRenamedSelect is the "PossiblyRenamedSelect" extractor:
// it recognizes a bare Select or a Select immediately wrapped by a
// single Rename, returning the Select node and the alias name (empty
// when unaliased).
func MatchPossiblyRenamedSelect(q *Query) (sel *Query, alias string, ok bool) {
	if q == nil {
		return nil, "", false
	}
	if q.Kind == KindRename {
		inner := q.Child
		if inner != nil && inner.Kind == KindSelect {
			return inner, q.Name, true
		}
		return nil, "", false
	}
	if q.Kind == KindSelect {
		return q, "", true
	}
	return nil, "", false
}

// MergeQueries fuses sibling selections of the same (field, alias) into
// a single selection with a merged child, per the merge algorithm:
// filter Empty, flatten one level of Group, partition into selections
// and the rest, bucket selections by (fieldName, resultName) merging
// children recursively, then emit Group(rest ++ merged).
//
// Two selections bucketed together (same field, same alias) must agree
// on arguments; a mismatch fails with AmbiguousMerge rather than
// silently picking one, per the open question in the design notes.
func MergeQueries(qs []*Query) result.Result[*Query] {
	filtered := make([]*Query, 0, len(qs))
	for _, q := range qs {
		if q == nil || q.Kind == KindEmpty {
			continue
		}
		filtered = append(filtered, q)
	}

	expanded := make([]*Query, 0, len(filtered))
	for _, q := range filtered {
		if q.Kind == KindGroup {
			expanded = append(expanded, q.Children...)
		} else {
			expanded = append(expanded, q)
		}
	}

	type bucket struct {
		fieldName string
		alias     string
		args      gvalue.Bindings
		children  []*Query
	}
	var rest []*Query
	var order []string
	buckets := map[string]*bucket{}

	for _, q := range expanded {
		sel, alias, ok := MatchPossiblyRenamedSelect(q)
		if !ok {
			rest = append(rest, q)
			continue
		}
		resultName := alias
		if resultName == "" {
			resultName = sel.Name
		}
		key := sel.Name + "\x00" + resultName
		b, exists := buckets[key]
		if !exists {
			b = &bucket{fieldName: sel.Name, alias: alias, args: sel.Args}
			buckets[key] = b
			order = append(order, key)
		} else if !b.args.Equal(sel.Args) {
			return result.Failure[*Query](result.Problems{{
				Kind:    "AmbiguousMerge",
				Message: fmt.Sprintf("ambiguous merge on field %q (alias %q): incompatible arguments", sel.Name, resultName),
			}})
		}
		b.children = append(b.children, sel.Child)
	}

	merged := make([]*Query, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		childResult := MergeQueries(b.children)
		child, ok := childResult.Value()
		if !ok {
			return result.Failure[*Query](childResult.Problems())
		}
		sel := Select(b.fieldName, b.args, child)
		if b.alias != "" {
			sel = Rename(b.alias, sel)
		}
		merged = append(merged, sel)
	}

	all := append(append([]*Query{}, rest...), merged...)
	return result.Success(Group(all...))
}
