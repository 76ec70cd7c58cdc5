// Package expr compiles and evaluates the condition and timer expressions
// attached to button states.
//
// Expressions are CEL programs over two variables: vars, the user's variable
// map, and now, the current Unix time in seconds. Evaluation is pure and
// cost-bounded; every failure degrades to a safe default.
package expr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/common/types/traits"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/alexisbeaulieu97/barbar/internal/logger"
	barerrors "github.com/alexisbeaulieu97/barbar/pkg/errors"
)

const (
	// MaxCompiledExprCache is the default number of compiled programs retained.
	MaxCompiledExprCache = 100

	varsName = "vars"
	nowName  = "now"

	costLimit         = 10000
	interruptInterval = 100
	reportInterval    = 30 * time.Second
)

// Compiled is a ready-to-run expression.
type Compiled struct {
	Source string
	prg    cel.Program
}

// entry is a cache slot. A nil compiled marks a source that failed to
// compile, so the failure is reported once rather than on every tick.
type entry struct {
	compiled *Compiled
	report   *rate.Sometimes
}

// Options configures an Engine.
type Options struct {
	Capacity int
	Now      func() time.Time
}

// Engine compiles expressions on demand and keeps the most recently used
// programs. It is safe for concurrent use.
type Engine struct {
	env *cel.Env
	now func() time.Time
	log *logger.Logger

	mu      sync.Mutex
	entries *lru.Cache[string, *entry]
}

// New creates an Engine.
func New(opts Options, log *logger.Logger) (*Engine, error) {
	if opts.Capacity <= 0 {
		opts.Capacity = MaxCompiledExprCache
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	env, err := cel.NewEnv(
		cel.Variable(varsName, cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable(nowName, cel.IntType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	entries, err := lru.New[string, *entry](opts.Capacity)
	if err != nil {
		return nil, fmt.Errorf("create expression cache: %w", err)
	}

	return &Engine{
		env:     env,
		now:     opts.Now,
		log:     log.Component("expr"),
		entries: entries,
	}, nil
}

// Compile returns the compiled form of source, or nil when source is blank or
// does not compile. Compile failures are logged, never returned.
func (e *Engine) Compile(source string) *Compiled {
	ent := e.lookup(source)
	if ent == nil {
		return nil
	}
	return ent.compiled
}

// Len returns the number of cached sources, failed ones included.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.entries.Len()
}

func (e *Engine) lookup(source string) *entry {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if ent, ok := e.entries.Get(source); ok {
		return ent
	}

	ent := &entry{report: &rate.Sometimes{First: 1, Interval: reportInterval}}
	compiled, err := e.compile(source)
	if err != nil {
		e.log.WithFields(map[string]any{"expr": source}).Error(err, "failed to compile expression")
	} else {
		ent.compiled = compiled
	}
	e.entries.Add(source, ent)
	return ent
}

func (e *Engine) compile(source string) (*Compiled, error) {
	ast, issues := e.env.Compile(source)
	if issues != nil && issues.Err() != nil {
		return nil, barerrors.NewCompileError(source, issues.Err())
	}

	prg, err := e.env.Program(ast,
		cel.InterruptCheckFrequency(interruptInterval),
		cel.CostLimit(costLimit),
	)
	if err != nil {
		return nil, barerrors.NewCompileError(source, err)
	}

	return &Compiled{Source: source, prg: prg}, nil
}

// Eval compiles and runs source. Unlike Condition and Timer it reports
// failures to the caller.
func (e *Engine) Eval(source string, vars map[string]any) (ref.Val, error) {
	ent := e.lookup(source)
	if ent == nil {
		return nil, barerrors.NewCompileError(source, fmt.Errorf("empty expression"))
	}
	if ent.compiled == nil {
		return nil, barerrors.NewCompileError(source, fmt.Errorf("expression did not compile"))
	}
	return e.run(ent.compiled, vars)
}

func (e *Engine) run(c *Compiled, vars map[string]any) (ref.Val, error) {
	if vars == nil {
		vars = map[string]any{}
	}

	out, _, err := c.prg.Eval(map[string]any{
		varsName: vars,
		nowName:  e.now().Unix(),
	})
	if err != nil {
		return nil, barerrors.NewEvalError(c.Source, err)
	}
	return out, nil
}

// evaluate runs source, logging failures at most once per report interval
// for each expression.
func (e *Engine) evaluate(source string, vars map[string]any) (ref.Val, bool) {
	ent := e.lookup(source)
	if ent == nil || ent.compiled == nil {
		return nil, false
	}

	out, err := e.run(ent.compiled, vars)
	if err != nil {
		ent.report.Do(func() {
			e.log.WithFields(map[string]any{"expr": ent.compiled.Source}).Error(err, "failed to evaluate expression")
		})
		return nil, false
	}
	return out, true
}

// Condition evaluates source as a predicate. Failures yield false.
func (e *Engine) Condition(source string, vars map[string]any) bool {
	out, ok := e.evaluate(source, vars)
	if !ok {
		return false
	}
	return Truthy(out)
}

// Timer evaluates source as a number of seconds. Lists yield their first
// element, fractions are truncated and failures yield 0.
func (e *Engine) Timer(source string, vars map[string]any) int {
	out, ok := e.evaluate(source, vars)
	if !ok {
		return 0
	}
	return ToInt(out)
}

// Truthy reports whether a value counts as true: booleans as themselves,
// numbers when non-zero, strings and collections when non-empty. Null is false.
func Truthy(v ref.Val) bool {
	switch val := v.(type) {
	case nil:
		return false
	case types.Bool:
		return bool(val)
	case types.Int:
		return val != 0
	case types.Uint:
		return val != 0
	case types.Double:
		return val != 0
	case types.String:
		return val != ""
	case types.Null:
		return false
	case traits.Sizer:
		size, ok := val.Size().(types.Int)
		return ok && size > 0
	}
	return true
}

// ToInt converts a value to whole seconds. Anything without a numeric reading is 0.
func ToInt(v ref.Val) int {
	switch val := v.(type) {
	case types.Int:
		return int(val)
	case types.Uint:
		return int(val)
	case types.Double:
		f := float64(val)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return int(math.Trunc(f))
	case types.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(val)), 64)
		if err != nil {
			return 0
		}
		return int(math.Trunc(f))
	case traits.Lister:
		size, ok := val.Size().(types.Int)
		if !ok || size == 0 {
			return 0
		}
		first := val.Get(types.Int(0))
		if _, nested := first.(traits.Lister); nested {
			return 0
		}
		return ToInt(first)
	}
	return 0
}
