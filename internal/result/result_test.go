package result_test

import (
	"testing"

	"github.com/quithub/qgraphql/internal/result"
	"github.com/stretchr/testify/require"
)

func TestMapPreservesProblems(t *testing.T) {
	r := result.Warning(result.Problems{{Message: "careful"}}, 2)
	mapped := result.Map(r, func(v int) int { return v * 10 })
	require.True(t, mapped.IsWarning())
	v, ok := mapped.Value()
	require.True(t, ok)
	require.Equal(t, 20, v)
	require.Len(t, mapped.Problems(), 1)
}

func TestFlatMapShortCircuitsOnFailure(t *testing.T) {
	r := result.Failure[int](result.Problems{{Message: "boom"}})
	called := false
	next := result.FlatMap(r, func(v int) result.Result[string] {
		called = true
		return result.Success("unreachable")
	})
	require.False(t, called)
	require.True(t, next.IsFailure())
	require.Len(t, next.Problems(), 1)
}

func TestFlatMapAccumulatesProblemsFromBothSides(t *testing.T) {
	r := result.Warning(result.Problems{{Message: "first"}}, 1)
	next := result.FlatMap(r, func(v int) result.Result[int] {
		return result.Warning(result.Problems{{Message: "second"}}, v+1)
	})
	require.True(t, next.IsWarning())
	require.Len(t, next.Problems(), 2)
	v, _ := next.Value()
	require.Equal(t, 2, v)
}

func TestTraverseAttemptsEveryElement(t *testing.T) {
	xs := []int{1, 2, 3}
	r := result.Traverse(xs, func(x int) result.Result[int] {
		if x == 2 {
			return result.Failure[int](result.Problems{{Message: "bad element"}})
		}
		return result.Success(x * 2)
	})
	require.True(t, r.IsFailure())
	require.Len(t, r.Problems(), 1)
}

func TestOrElse(t *testing.T) {
	ok := result.Success(5)
	require.Equal(t, 5, ok.OrElse(-1))

	failed := result.Failure[int](result.Problems{{Message: "x"}})
	require.Equal(t, -1, failed.OrElse(-1))
}
