package expr

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/barbar/internal/logger"
	barerrors "github.com/alexisbeaulieu97/barbar/pkg/errors"
)

func newEngine(t *testing.T, capacity int) (*Engine, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	log, err := logger.New(logger.Options{Level: "debug", Writer: &buf})
	require.NoError(t, err)

	engine, err := New(Options{
		Capacity: capacity,
		Now:      func() time.Time { return time.Unix(1_700_000_000, 0) },
	}, log)
	require.NoError(t, err)
	return engine, &buf
}

func TestCompileCachesPrograms(t *testing.T) {
	t.Parallel()

	engine, _ := newEngine(t, 0)

	first := engine.Compile("vars.ready")
	require.NotNil(t, first)
	assert.Same(t, first, engine.Compile("  vars.ready  "))
	assert.Equal(t, 1, engine.Len())

	assert.Nil(t, engine.Compile(""))
	assert.Nil(t, engine.Compile("   "))
	assert.Equal(t, 1, engine.Len())
}

func TestCompileFailureIsLoggedOnce(t *testing.T) {
	t.Parallel()

	engine, buf := newEngine(t, 0)

	for i := 0; i < 3; i++ {
		assert.Nil(t, engine.Compile("vars.ready &&"))
	}
	assert.Equal(t, 1, engine.Len())
	assert.Equal(t, 1, strings.Count(buf.String(), "failed to compile expression"))

	_, err := engine.Eval("vars.ready &&", nil)
	var compileErr *barerrors.CompileError
	require.ErrorAs(t, err, &compileErr)
}

func TestCompileEvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	engine, _ := newEngine(t, 2)

	a := engine.Compile("1 + 1")
	engine.Compile("2 + 2")
	engine.Compile("1 + 1") // refresh a
	engine.Compile("3 + 3") // evicts 2 + 2

	assert.Equal(t, 2, engine.Len())
	assert.Same(t, a, engine.Compile("1 + 1"))
}

func TestCondition(t *testing.T) {
	t.Parallel()

	engine, _ := newEngine(t, 0)
	vars := map[string]any{
		"ready":    true,
		"cooldown": 12,
		"name":     "zeal",
		"stacks":   []any{},
		"buffs":    map[string]any{"haste": true},
	}

	cases := []struct {
		expr string
		want bool
	}{
		{"vars.ready", true},
		{"!vars.ready", false},
		{"vars.cooldown > 5", true},
		{"vars.cooldown", true},
		{"0", false},
		{"0.5", true},
		{"vars.name", true},
		{"''", false},
		{"vars.stacks", false},
		{"[1]", true},
		{"vars.buffs", true},
		{"{}", false},
		{"null", false},
		{"has(vars.buffs.haste)", true},
		{"now > 1600000000", true},
		{"vars.missing", false},
		{"vars.ready &&", false},
		{"1 / 0 == 1", false},
		{"", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, engine.Condition(tc.expr, vars), tc.expr)
	}
}

func TestTimer(t *testing.T) {
	t.Parallel()

	engine, _ := newEngine(t, 0)
	vars := map[string]any{
		"cooldown": 42,
		"remain":   []any{7.9, 3},
		"label":    "15",
	}

	cases := []struct {
		expr string
		want int
	}{
		{"vars.cooldown", 42},
		{"vars.cooldown - 50", -8},
		{"7.9", 7},
		{"vars.remain", 7},
		{"[12, 3]", 12},
		{"[]", 0},
		{"vars.label", 15},
		{"'soon'", 0},
		{"true", 0},
		{"null", 0},
		{"vars.missing", 0},
		{"1700000100 - now", 100},
		{"", 0},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, engine.Timer(tc.expr, vars), tc.expr)
	}
}

func TestEvalFailuresAreThrottled(t *testing.T) {
	t.Parallel()

	engine, buf := newEngine(t, 0)

	for i := 0; i < 50; i++ {
		assert.False(t, engine.Condition("vars.missing", nil))
	}
	assert.Equal(t, 1, strings.Count(buf.String(), "failed to evaluate expression"))

	_, err := engine.Eval("vars.missing", nil)
	var evalErr *barerrors.EvalError
	require.ErrorAs(t, err, &evalErr)
}
