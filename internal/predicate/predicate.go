// Package predicate implements the Term/Predicate algebra: typed boolean
// predicates and projection terms usable by Filter and OrderBy nodes in
// internal/query. Terms are pure projections evaluated against a Cursor
// supplied by the (out-of-scope) runtime interpreter — this package never
// implements Cursor, only depends on it, the way a resolver package
// depends on a Runtime interface without implementing it.
package predicate

import "fmt"

// Cursor is the external iterator-like handle a Term is evaluated
// against. Concrete cursors belong to the runtime interpreter; this
// package only consumes the interface.
type Cursor interface {
	// Project navigates into the named field of the current focus,
	// returning a cursor positioned there.
	Project(field string) (Cursor, error)
	// Value returns the scalar value at the current focus.
	Value() (any, error)
}

// kind tags a Term's concrete shape, following the Kind-tagged struct
// idiom used throughout this module rather than an interface hierarchy
// per node kind.
type kind int

const (
	kindConst kind = iota
	kindFieldProjection
	kindEql
	kindAnd
	kindOr
	kindNot
	kindContains
	kindMatches
	kindIn
	kindProject
)

// Term is a lazy projection from a Cursor to a typed scalar, or — when
// Predicate wraps it — to a boolean. The algebra is closed under Boolean
// composition via And/Or/Not.
type Term struct {
	k        kind
	constVal any
	path     []string
	operands []Term
	pattern  any
}

// Predicate is a Term restricted to boolean-producing shapes. It is a
// distinct name for the same underlying node set — And/Or/Not/Eql/
// Contains/Matches/In all build Terms that happen to evaluate to bool.
type Predicate = Term

func Const(v any) Term { return Term{k: kindConst, constVal: v} }

// Field builds a projection term along path, e.g. Field("id") or
// Field("address", "city") for a nested path.
func Field(path ...string) Term {
	if len(path) == 0 {
		panic("predicate: Field requires at least one path segment")
	}
	return Term{k: kindFieldProjection, path: path}
}

func Eql(a, b Term) Predicate { return Term{k: kindEql, operands: []Term{a, b}} }

func And(ps ...Predicate) Predicate { return Term{k: kindAnd, operands: ps} }
func Or(ps ...Predicate) Predicate  { return Term{k: kindOr, operands: ps} }
func Not(p Predicate) Predicate     { return Term{k: kindNot, operands: []Term{p}} }

func Contains(haystack, needle Term) Predicate {
	return Term{k: kindContains, operands: []Term{haystack, needle}}
}

func Matches(subject Term, pattern any) Predicate {
	return Term{k: kindMatches, operands: []Term{subject}, pattern: pattern}
}

func In(subject Term, candidates ...any) Predicate {
	return Term{k: kindIn, operands: []Term{subject}, pattern: candidates}
}

// Project recursively enters the subcursor at path before evaluating
// inner; inner's field projections are then resolved relative to that
// subcursor rather than the enclosing focus.
func Project(path []string, inner Predicate) Predicate {
	return Term{k: kindProject, path: path, operands: []Term{inner}}
}

// Eval evaluates the term against c. Boolean-shaped terms return a bool;
// projections and Const return whatever value or scalar they denote.
func (t Term) Eval(c Cursor) (any, error) {
	switch t.k {
	case kindConst:
		return t.constVal, nil
	case kindFieldProjection:
		cur := c
		var err error
		for _, seg := range t.path {
			cur, err = cur.Project(seg)
			if err != nil {
				return nil, err
			}
		}
		return cur.Value()
	case kindEql:
		a, err := t.operands[0].Eval(c)
		if err != nil {
			return nil, err
		}
		b, err := t.operands[1].Eval(c)
		if err != nil {
			return nil, err
		}
		return fmt.Sprint(a) == fmt.Sprint(b), nil
	case kindAnd:
		for _, op := range t.operands {
			v, err := op.Eval(c)
			if err != nil {
				return nil, err
			}
			if b, ok := v.(bool); !ok || !b {
				return false, nil
			}
		}
		return true, nil
	case kindOr:
		for _, op := range t.operands {
			v, err := op.Eval(c)
			if err != nil {
				return nil, err
			}
			if b, ok := v.(bool); ok && b {
				return true, nil
			}
		}
		return false, nil
	case kindNot:
		v, err := t.operands[0].Eval(c)
		if err != nil {
			return nil, err
		}
		b, _ := v.(bool)
		return !b, nil
	case kindContains:
		haystack, err := t.operands[0].Eval(c)
		if err != nil {
			return nil, err
		}
		needle, err := t.operands[1].Eval(c)
		if err != nil {
			return nil, err
		}
		items, ok := haystack.([]any)
		if !ok {
			return false, nil
		}
		for _, item := range items {
			if fmt.Sprint(item) == fmt.Sprint(needle) {
				return true, nil
			}
		}
		return false, nil
	case kindMatches:
		subject, err := t.operands[0].Eval(c)
		if err != nil {
			return nil, err
		}
		return fmt.Sprint(subject) == fmt.Sprint(t.pattern), nil
	case kindIn:
		subject, err := t.operands[0].Eval(c)
		if err != nil {
			return nil, err
		}
		candidates, _ := t.pattern.([]any)
		for _, cand := range candidates {
			if fmt.Sprint(cand) == fmt.Sprint(subject) {
				return true, nil
			}
		}
		return false, nil
	case kindProject:
		cur := c
		var err error
		for _, seg := range t.path {
			cur, err = cur.Project(seg)
			if err != nil {
				return nil, err
			}
		}
		return t.operands[0].Eval(cur)
	default:
		return nil, fmt.Errorf("predicate: unknown term kind %d", t.k)
	}
}

// Path returns the field path of a projection term; ok is false for any
// other kind of term.
func (t Term) Path() ([]string, bool) {
	if t.k != kindFieldProjection {
		return nil, false
	}
	return t.path, true
}

// IsConst reports whether t is a Const term, and if so its value —
// used by Skip/Include folding to detect a constant boolean condition.
func (t Term) IsConst() (any, bool) {
	if t.k != kindConst {
		return nil, false
	}
	return t.constVal, true
}
