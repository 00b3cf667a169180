package interp

import (
	"fmt"
	"strconv"
	"strings"
)

// registerStdlib seeds the host functions reachable through std.io and
// std.math.
func (interp *Interpreter) registerStdlib() {
	interp.modules.RegisterFunction("std.io", "print", interp.print)
	interp.modules.RegisterFunction("std.io", "println", interp.println)
	interp.modules.RegisterFunction("std.math", "add", mathBinary(addInt))
	interp.modules.RegisterFunction("std.math", "subtract", mathBinary(subInt))
}

// print writes every argument without separator, then a newline.
func (interp *Interpreter) print(args []string) string {
	for _, arg := range args {
		fmt.Fprint(interp.stdout, arg)
	}
	fmt.Fprintln(interp.stdout)
	return ""
}

// println writes the concatenated arguments and a newline, and returns the
// concatenation.
func (interp *Interpreter) println(args []string) string {
	line := strings.Join(args, "")
	fmt.Fprintln(interp.stdout, line)
	return line
}

// mathBinary wraps an integer operation of exactly two operands. Any other
// arity, an operand that is not an integer, or an overflowing result gives
// "0".
func mathBinary(op func(a, b int64) (int64, bool)) func([]string) string {
	return func(args []string) string {
		if len(args) != 2 {
			return "0"
		}
		a, ok := parseInt(args[0])
		if !ok {
			return "0"
		}
		b, ok := parseInt(args[1])
		if !ok {
			return "0"
		}
		result, ok := op(a, b)
		if !ok {
			return "0"
		}
		return strconv.FormatInt(result, 10)
	}
}
