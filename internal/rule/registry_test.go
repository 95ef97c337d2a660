package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRule is a configurable rule for registry tests.
type stubRule struct {
	name     string
	severity Severity
	deps     []string
}

func (r *stubRule) Name() string                           { return r.name }
func (r *stubRule) FixType() FixType                       { return FullyDeterministic }
func (r *stubRule) Severity() Severity                     { return r.severity }
func (r *stubRule) Dependencies() []string                 { return r.deps }
func (r *stubRule) CanFix(v Violation) bool                { return v.CheckID == r.name }
func (r *stubRule) GenerateFix(v Violation, s string) *Fix { return nil }

func TestRegistry_RegisterAndGet(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(&stubRule{name: "X.A"}))

	got, ok := reg.Get("X.A")
	assert.True(t, ok)
	assert.Equal(t, "X.A", got.Name())

	_, ok = reg.Get("X.Missing")
	assert.False(t, ok)
}

func TestRegistry_RejectsNilAndDuplicates(t *testing.T) {
	reg := NewRegistry()
	assert.Error(t, reg.Register(nil))
	require.NoError(t, reg.Register(&stubRule{name: "X.A"}))
	assert.Error(t, reg.Register(&stubRule{name: "X.A"}))
}

func TestRegistry_RuleFor(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(&stubRule{name: "X.A"}))

	r, err := reg.RuleFor(Violation{CheckID: "X.A"})
	require.NoError(t, err)
	assert.Equal(t, "X.A", r.Name())

	_, err = reg.RuleFor(Violation{CheckID: "X.Unknown"})
	assert.Error(t, err)
}

func TestRegistry_OrderBreaksTiesBySeverityThenName(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(&stubRule{name: "X.Zeta", severity: SeverityError}))
	require.NoError(t, reg.Register(&stubRule{name: "X.Beta", severity: SeverityWarning}))
	require.NoError(t, reg.Register(&stubRule{name: "X.Alpha", severity: SeverityWarning}))
	require.NoError(t, reg.Register(&stubRule{name: "X.Gamma", severity: SeveritySuggestion}))

	ordered, err := reg.ExecutionOrder()
	require.NoError(t, err)

	names := make([]string, len(ordered))
	for i, r := range ordered {
		names[i] = r.Name()
	}
	assert.Equal(t, []string{"X.Zeta", "X.Alpha", "X.Beta", "X.Gamma"}, names)
}

func TestRegistry_DependenciesOrderedAfterPrerequisites(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(&stubRule{name: "X.C", severity: SeverityError, deps: []string{"X.B"}}))
	require.NoError(t, reg.Register(&stubRule{name: "X.B", severity: SeveritySuggestion, deps: []string{"X.A"}}))
	require.NoError(t, reg.Register(&stubRule{name: "X.A", severity: SeveritySuggestion}))

	ordered, err := reg.ExecutionOrder()
	require.NoError(t, err)

	pos := make(map[string]int)
	for i, r := range ordered {
		pos[r.Name()] = i
	}
	// Dependency order wins over severity: X.C is an error but runs last.
	assert.Less(t, pos["X.A"], pos["X.B"])
	assert.Less(t, pos["X.B"], pos["X.C"])
}

func TestRegistry_Stages(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(&stubRule{name: "X.A"}))
	require.NoError(t, reg.Register(&stubRule{name: "X.B", deps: []string{"X.A"}}))
	require.NoError(t, reg.Register(&stubRule{name: "X.C"}))

	stages, err := reg.Stages()
	require.NoError(t, err)
	require.Len(t, stages, 2)
	assert.Len(t, stages[0], 2)
	require.Len(t, stages[1], 1)
	assert.Equal(t, "X.B", stages[1][0].Name())
}

func TestRegistry_CycleIsFatal(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(&stubRule{name: "X.A", deps: []string{"X.B"}}))
	require.NoError(t, reg.Register(&stubRule{name: "X.B", deps: []string{"X.A"}}))

	_, err := reg.ExecutionOrder()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestRegistry_UnknownDependencyIsFatal(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(&stubRule{name: "X.A", deps: []string{"X.Ghost"}}))

	_, err := reg.Stages()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unregistered")
}

func TestRegistry_OrderIsReproducible(t *testing.T) {
	build := func() *Registry {
		reg := NewRegistry()
		_ = reg.Register(&stubRule{name: "X.B", severity: SeverityWarning})
		_ = reg.Register(&stubRule{name: "X.A", severity: SeverityWarning})
		_ = reg.Register(&stubRule{name: "X.C", severity: SeverityError, deps: []string{"X.A"}})
		return reg
	}

	first, err := build().ExecutionOrder()
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := build().ExecutionOrder()
		require.NoError(t, err)
		require.Equal(t, len(first), len(again))
		for j := range first {
			assert.Equal(t, first[j].Name(), again[j].Name())
		}
	}
}
