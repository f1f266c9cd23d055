package query

import (
	"fmt"
	"strings"
)

// Render produces the canonical debug string for q, used for test
// assertions and logging only — it has no bearing on elaboration
// semantics.
func (q *Query) Render() string {
	if q == nil {
		return "<nil>"
	}
	switch q.Kind {
	case KindSelect:
		if q.Child == nil || q.Child.Kind == KindEmpty {
			return q.Name + q.Args.Render()
		}
		return fmt.Sprintf("%s%s{ %s }", q.Name, q.Args.Render(), q.Child.Render())
	case KindGroup:
		parts := make([]string, len(q.Children))
		for i, c := range q.Children {
			parts[i] = c.Render()
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	case KindUnique:
		return fmt.Sprintf("<unique: %s>", q.Child.Render())
	case KindFilter:
		return fmt.Sprintf("<filter: %s>", q.Child.Render())
	case KindComponent:
		// BoundaryID is compiler-opaque and randomly generated; omitted
		// here so Render stays deterministic across compiles of the
		// same operation.
		return fmt.Sprintf("<component: %s>", q.Child.Render())
	case KindEffect:
		return fmt.Sprintf("<effect: %s>", q.Child.Render())
	case KindIntrospect:
		return fmt.Sprintf("<introspect: %s>", q.Child.Render())
	case KindEnvironment:
		return fmt.Sprintf("<env: %s>", q.Child.Render())
	case KindWrap:
		return fmt.Sprintf("<wrap: %s %s>", q.Name, q.Child.Render())
	case KindRename:
		return fmt.Sprintf("<rename: %s %s>", q.Name, q.Child.Render())
	case KindUntypedNarrow:
		return fmt.Sprintf("<untypedNarrow: %s %s>", q.Name, q.Child.Render())
	case KindNarrow:
		name := ""
		if q.Subtype != nil {
			name = q.Subtype.GetNamedType()
		}
		return fmt.Sprintf("<narrow: %s %s>", name, q.Child.Render())
	case KindSkip:
		verb := "skip"
		if !q.Sense {
			verb = "include"
		}
		return fmt.Sprintf("<%s: %s>", verb, q.Child.Render())
	case KindLimit:
		return fmt.Sprintf("<limit: %d %s>", q.N, q.Child.Render())
	case KindOffset:
		return fmt.Sprintf("<offset: %d %s>", q.N, q.Child.Render())
	case KindOrderBy:
		return fmt.Sprintf("<orderBy: %s>", q.Child.Render())
	case KindCount:
		return fmt.Sprintf("<count: %s %s>", q.Name, q.Child.Render())
	case KindTransformCursor:
		return fmt.Sprintf("<transformCursor: %s>", q.Child.Render())
	case KindSkipped:
		return "<skipped>"
	case KindEmpty:
		return "<empty>"
	default:
		return "<unknown>"
	}
}
