// Package celfilter adapts CEL expressions into table row predicates.
//
// It exists for callers who want the "arbitrary predicate" capability of
// Filter without its textual-substitution trust boundary: CEL programs
// are compiled, type-checked and side-effect free, so untrusted
// expressions cannot inject anything into the host.
package celfilter

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/checker/decls"
)

// Engine compiles CEL expressions against the row environment and caches
// the resulting programs per expression text.
//
// Expressions see two variables:
//   - row: map of column identifier to cell text (absent cells are "")
//   - num: the row number
type Engine struct {
	env      *cel.Env
	prgCache sync.Map // map[string]cel.Program
}

// NewEngine creates an engine with the standard row environment
func NewEngine() (*Engine, error) {
	env, err := cel.NewEnv(
		cel.Declarations(
			decls.NewVar("row", decls.NewMapType(decls.String, decls.String)),
			decls.NewVar("num", decls.Int),
		),
	)
	if err != nil {
		return nil, err
	}

	return &Engine{env: env}, nil
}

// Predicate compiles expression into a predicate suitable for
// table.FilterFunc. Compilation errors surface here; evaluation errors
// surface per row from the returned function.
func (e *Engine) Predicate(expression string) (func(num int, values map[string]string) (bool, error), error) {
	prg, err := e.program(expression)
	if err != nil {
		return nil, err
	}

	return func(num int, values map[string]string) (bool, error) {
		out, _, err := prg.Eval(map[string]interface{}{
			"row": values,
			"num": num,
		})
		if err != nil {
			return false, fmt.Errorf("cel eval: %w", err)
		}

		result, ok := out.Value().(bool)
		if !ok {
			return false, fmt.Errorf("cel predicate must return a boolean, got %T", out.Value())
		}
		return result, nil
	}, nil
}

// program returns the cached compiled program for expression
func (e *Engine) program(expression string) (cel.Program, error) {
	if val, ok := e.prgCache.Load(expression); ok {
		return val.(cel.Program), nil
	}

	ast, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("cel compile: %w", issues.Err())
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("cel program: %w", err)
	}

	e.prgCache.Store(expression, prg)
	return prg, nil
}
