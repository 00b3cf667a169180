package interp

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/nx-lang/nx/internal/ast"
	"github.com/nx-lang/nx/internal/diagnostics"
	"github.com/nx-lang/nx/internal/modules"
	"github.com/nx-lang/nx/internal/scope"
)

// Result is the outcome of evaluating one node. Returned is set once a
// return statement ran, and tells every enclosing statement list to stop.
type Result struct {
	Value    string
	Returned bool
}

func (interp *Interpreter) Evaluate(node ast.Node) Result {
	if interp.halted {
		return Result{Returned: true}
	}

	switch n := node.(type) {
	case nil:
		return Result{}
	case *ast.Literal:
		return Result{Value: interp.evalLiteral(n)}
	case *ast.BinaryOperation:
		left := interp.EvalValue(n.Left)
		right := interp.EvalValue(n.Right)
		return Result{Value: binaryOp(n.Op, left, right)}
	case *ast.FunctionCall:
		return Result{Value: interp.evalCall(n)}
	case *ast.IfStatement:
		branch := n.ElseBranch
		if truthy(interp.EvalValue(n.Condition)) {
			branch = n.ThenBranch
		}
		return interp.execBlock(branch)
	case *ast.ReturnStatement:
		return Result{Value: interp.EvalValue(n.Expression), Returned: true}
	case *ast.VariableDeclaration:
		value := ""
		if n.Initializer != nil {
			value = interp.EvalValue(n.Initializer)
		}
		interp.symbols.Set(n.Name, value)
		return Result{}
	case *ast.Function, *ast.Module:
		// Declarations were registered before execution started.
		return Result{}
	default:
		panic(fmt.Sprintf("interp: unexpected node %s", ast.KindOf(node)))
	}
}

// EvalValue evaluates an expression and returns its string value.
func (interp *Interpreter) EvalValue(node ast.Node) string {
	return interp.Evaluate(node).Value
}

// ExecBody runs a function body. The result is the returned value, or the
// value of the last statement when the body finishes without returning.
func (interp *Interpreter) ExecBody(body []ast.Node) string {
	return interp.execBlock(body).Value
}

func (interp *Interpreter) Symbols() *scope.SymbolTable {
	return interp.symbols
}

func (interp *Interpreter) execBlock(body []ast.Node) Result {
	var result Result
	for _, stmt := range body {
		result = interp.Evaluate(stmt)
		if result.Returned {
			return result
		}
	}
	return result
}

func (interp *Interpreter) evalLiteral(literal *ast.Literal) string {
	switch literal.Kind {
	case ast.LITERAL_STRING:
		value := literal.Value
		if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
			return value[1 : len(value)-1]
		}
		return value
	case ast.LITERAL_IDENTIFIER:
		if value := interp.symbols.Get(literal.Value); value != "" {
			return value
		}
		return literal.Value
	default:
		return literal.Value
	}
}

func (interp *Interpreter) evalCall(call *ast.FunctionCall) string {
	if interp.depth >= interp.maxDepth {
		interp.halted = true
		interp.collector.ReportAndSave(diagnostics.Diag{
			Kind:    diagnostics.RUNTIME,
			Pos:     call.Pos,
			Message: fmt.Sprintf("maximum call depth of %d exceeded calling '%s'", interp.maxDepth, call.Name),
		})
		return ""
	}

	interp.depth++
	defer func() { interp.depth-- }()

	start := time.Now()
	result, ok := interp.modules.CallFunction(call.Name, call.Args, interp)
	if !ok {
		interp.collector.ReportAndSave(diagnostics.Diag{
			Kind:    diagnostics.RUNTIME,
			Pos:     call.Pos,
			Message: fmt.Sprintf("Undefined function '%s'", call.Name),
		})
		return ""
	}

	if interp.tracer.Match(call.Name) {
		module, _, _ := modules.SplitQualified(call.Name)
		interp.logger.Debug("call",
			"module", module,
			"func", call.Name,
			"depth", interp.depth,
			"result", result,
			"elapsed", time.Since(start),
		)
	}
	return result
}

func binaryOp(op, left, right string) string {
	a, leftIsInt := parseInt(left)
	b, rightIsInt := parseInt(right)
	bothInt := leftIsInt && rightIsInt

	switch op {
	case "+":
		if bothInt {
			if sum, ok := addInt(a, b); ok {
				return strconv.FormatInt(sum, 10)
			}
		}
		return left + right
	case "-":
		if bothInt {
			if diff, ok := subInt(a, b); ok {
				return strconv.FormatInt(diff, 10)
			}
		}
		return "0"
	case "*":
		if bothInt {
			if product, ok := mulInt(a, b); ok {
				return strconv.FormatInt(product, 10)
			}
		}
		return "0"
	case "/":
		if bothInt && b != 0 && !(a == math.MinInt64 && b == -1) {
			return strconv.FormatInt(a/b, 10)
		}
		return "0"
	}

	if !ast.COMPARISON[op] {
		return ""
	}

	var cmp int
	if bothInt {
		switch {
		case a < b:
			cmp = -1
		case a > b:
			cmp = 1
		}
	} else {
		cmp = strings.Compare(left, right)
	}

	var holds bool
	switch op {
	case "==":
		holds = cmp == 0
	case "<":
		holds = cmp < 0
	case "<=":
		holds = cmp <= 0
	case ">":
		holds = cmp > 0
	case ">=":
		holds = cmp >= 0
	}
	return strconv.FormatBool(holds)
}

// truthy: "true" and "false" as spelled, integers by being non-zero, any
// other string by being non-empty.
func truthy(value string) bool {
	switch value {
	case "true":
		return true
	case "false":
		return false
	}
	if n, ok := parseInt(value); ok {
		return n != 0
	}
	return value != ""
}

// addInt, subInt and mulInt report false when the result does not fit in
// an int64. Callers then take the same path as for a non-integer operand.
func addInt(a, b int64) (int64, bool) {
	c := a + b
	if (a > 0 && b > 0 && c < 0) || (a < 0 && b < 0 && c >= 0) {
		return 0, false
	}
	return c, true
}

func subInt(a, b int64) (int64, bool) {
	c := a - b
	if (a >= 0 && b < 0 && c < 0) || (a < 0 && b > 0 && c >= 0) {
		return 0, false
	}
	return c, true
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	c := a * b
	if c/b != a {
		return 0, false
	}
	return c, true
}

func parseInt(value string) (int64, bool) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
