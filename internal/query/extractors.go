package query

import (
	"github.com/quithub/qgraphql/internal/predicate"
	"github.com/quithub/qgraphql/internal/schema"
)

// TypeCase partitions q's (possibly Group-ed) children into a default
// subtree and a Narrow per distinct subtype, merging the bodies of
// narrows sharing a subtype. ok is false when q has no Narrow children.
func TypeCase(q *Query) (defaultQuery *Query, narrows []*Query, ok bool) {
	children := topLevelEntries(q)

	type narrowBucket struct {
		subtype *schema.TypeRef
		bodies  []*Query
	}
	var defaults []*Query
	var order []string
	buckets := map[string]*narrowBucket{}

	for _, c := range children {
		if c.Kind != KindNarrow {
			defaults = append(defaults, c)
			continue
		}
		key := ""
		if c.Subtype != nil {
			key = c.Subtype.GetNamedType()
		}
		b, exists := buckets[key]
		if !exists {
			b = &narrowBucket{subtype: c.Subtype}
			buckets[key] = b
			order = append(order, key)
		}
		b.bodies = append(b.bodies, c.Child)
	}

	if len(order) == 0 {
		return nil, nil, false
	}

	out := make([]*Query, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		out = append(out, Narrow(b.subtype, Group(b.bodies...)))
	}
	return Group(defaults...), out, true
}

// FilterOrderByOffsetLimit is the decomposed, optional-field form of
// the canonical Limit(Offset(OrderBy(Filter(..., child)))) stack.
type FilterOrderByOffsetLimit struct {
	Limit     *int
	Offset    *int
	OrderBy   []predicate.OrderSelection
	Filter    predicate.Predicate
	HasFilter bool
	Child     *Query
}

// MatchFilterOrderByOffsetLimit recognizes as much of the canonical
// stack as is present, in its fixed nesting order, and returns the
// innermost child once all recognized layers are peeled away.
func MatchFilterOrderByOffsetLimit(q *Query) FilterOrderByOffsetLimit {
	var fool FilterOrderByOffsetLimit
	cur := q
	if cur != nil && cur.Kind == KindLimit {
		n := cur.N
		fool.Limit = &n
		cur = cur.Child
	}
	if cur != nil && cur.Kind == KindOffset {
		n := cur.N
		fool.Offset = &n
		cur = cur.Child
	}
	if cur != nil && cur.Kind == KindOrderBy {
		fool.OrderBy = cur.Selections
		cur = cur.Child
	}
	if cur != nil && cur.Kind == KindFilter {
		fool.Filter = cur.Pred
		fool.HasFilter = true
		cur = cur.Child
	}
	fool.Child = cur
	return fool
}

// BuildFilterOrderByOffsetLimit constructs the canonical stack from an
// optional subset of layers, preserving Limit(Offset(OrderBy(Filter(…))))
// nesting order.
func BuildFilterOrderByOffsetLimit(f FilterOrderByOffsetLimit) *Query {
	q := f.Child
	if f.HasFilter {
		q = Filter(f.Filter, q)
	}
	if len(f.OrderBy) > 0 {
		q = OrderBy(f.OrderBy, q)
	}
	if f.Offset != nil {
		q = Offset(*f.Offset, q)
	}
	if f.Limit != nil {
		q = Limit(*f.Limit, q)
	}
	return q
}
