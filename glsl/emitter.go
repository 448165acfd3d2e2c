package glsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sai3097ganesh/geometry-dsl/ir"
)

// EmitError is returned when the emitter reaches an Op it has no
// printing rule for. Every Op the IR can contain is produced by the
// ir package's own constructors, so EmitError indicates a compiler
// bug rather than a user error.
type EmitError struct {
	Op ir.Op
}

func (e *EmitError) Error() string {
	return fmt.Sprintf("glsl: unknown op %q", e.Op)
}

// Emit renders node as a complete GLSL fragment: a single function,
// float sdf(vec3 p), whose body returns the expression tree inlined
// as one GLSL expression with no common-subexpression elimination.
func Emit(node *ir.Node) (string, error) {
	expr, err := emitExpr(node)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("float sdf(vec3 p) {\n    return ")
	b.WriteString(expr)
	b.WriteString(";\n}\n")
	return b.String(), nil
}

func emitExpr(n *ir.Node) (string, error) {
	switch n.Op {
	case ir.OpConst:
		return formatFloat(n.Value), nil
	case ir.OpVar:
		return "p", nil
	case ir.OpVec3:
		x, err := emitExpr(n.Args[0])
		if err != nil {
			return "", err
		}
		y, err := emitExpr(n.Args[1])
		if err != nil {
			return "", err
		}
		z, err := emitExpr(n.Args[2])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("vec3(%s, %s, %s)", x, y, z), nil
	case ir.OpAdd, ir.OpVecAdd:
		return emitInfix(n, "+")
	case ir.OpSub, ir.OpVecSub:
		return emitInfix(n, "-")
	case ir.OpMul:
		return emitInfix(n, "*")
	case ir.OpNeg:
		a, err := emitExpr(n.Args[0])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(-%s)", a), nil
	case ir.OpMin:
		return emitCall2(n, "min")
	case ir.OpMax, ir.OpVecMax:
		return emitCall2(n, "max")
	case ir.OpAtan2:
		return emitCall2(n, "atan")
	case ir.OpLength:
		return emitCall1(n, "length")
	case ir.OpAbs, ir.OpVecAbs:
		return emitCall1(n, "abs")
	case ir.OpSin:
		return emitCall1(n, "sin")
	case ir.OpCos:
		return emitCall1(n, "cos")
	case ir.OpFloor:
		return emitCall1(n, "floor")
	case ir.OpVecX:
		return emitSwizzle(n, "x")
	case ir.OpVecY:
		return emitSwizzle(n, "y")
	case ir.OpVecZ:
		return emitSwizzle(n, "z")
	default:
		return "", &EmitError{Op: n.Op}
	}
}

func emitInfix(n *ir.Node, op string) (string, error) {
	a, err := emitExpr(n.Args[0])
	if err != nil {
		return "", err
	}
	b, err := emitExpr(n.Args[1])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%s %s %s)", a, op, b), nil
}

func emitCall1(n *ir.Node, name string) (string, error) {
	a, err := emitExpr(n.Args[0])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s(%s)", name, a), nil
}

func emitCall2(n *ir.Node, name string) (string, error) {
	a, err := emitExpr(n.Args[0])
	if err != nil {
		return "", err
	}
	b, err := emitExpr(n.Args[1])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s(%s, %s)", name, a, b), nil
}

func emitSwizzle(n *ir.Node, component string) (string, error) {
	a, err := emitExpr(n.Args[0])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s.%s", a, component), nil
}

// formatFloat prints v the way GLSL requires: a literal with no
// decimal point is an integer, so whole-valued floats always get an
// explicit ".0".
func formatFloat(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10) + ".0"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
