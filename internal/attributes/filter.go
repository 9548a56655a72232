package attributes

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter selects processes with a boolean expression.
type Filter struct {
	program *vm.Program
	rawExpr string
}

// NewFilter compiles exprStr. An empty expression matches everything.
func NewFilter(exprStr string) (*Filter, error) {
	if exprStr == "" {
		return &Filter{}, nil
	}

	program, err := expr.Compile(exprStr, expr.Env(typeEnv()), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("failed to compile filter expression: %w", err)
	}

	return &Filter{
		program: program,
		rawExpr: exprStr,
	}, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	return f.rawExpr
}

// Match reports whether s satisfies the filter.
func (f *Filter) Match(s Subject) (bool, error) {
	if f.program == nil {
		return true, nil
	}

	output, err := expr.Run(f.program, s.env())
	if err != nil {
		return false, fmt.Errorf("failed to evaluate filter for pid %d: %w", s.PID, err)
	}

	matched, ok := output.(bool)
	if !ok {
		return false, fmt.Errorf("filter returned %T, want bool", output)
	}
	return matched, nil
}
