package dsl

import (
	"fmt"
	"strconv"
)

// Expr is the sum type produced by the parser: a literal number, a
// 2- or 3-component vector literal, or a named call. Children are
// owned by their parent and the tree is immutable once parsed.
type Expr interface {
	exprNode()
}

// Number is a literal float.
type Number struct {
	Value float64
}

// Vec2 is a 2-component vector literal, used only for polygon
// vertices.
type Vec2 struct {
	X, Y Expr
}

// Vec3 is a 3-component vector literal.
type Vec3 struct {
	X, Y, Z Expr
}

// Call is a named function application: a primitive, a composition
// operator, or a shape/path descriptor. Name is always a non-empty
// identifier.
type Call struct {
	Name string
	Args []Expr
}

func (Number) exprNode() {}
func (Vec2) exprNode()   {}
func (Vec3) exprNode()   {}
func (Call) exprNode()   {}

// String renders expr back to DSL source text, with parenthesization
// fully normalized (every call's arguments are comma-joined inside a
// single pair of parens regardless of how the source grouped them;
// there is no infix syntax to normalize away).
func (n Number) String() string { return formatNumberLiteral(n.Value) }

func (n Vec2) String() string {
	return fmt.Sprintf("vec2(%s, %s)", exprString(n.X), exprString(n.Y))
}

func (n Vec3) String() string {
	return fmt.Sprintf("vec3(%s, %s, %s)", exprString(n.X), exprString(n.Y), exprString(n.Z))
}

func (n Call) String() string {
	s := n.Name + "("
	for i, a := range n.Args {
		if i > 0 {
			s += ", "
		}
		s += exprString(a)
	}
	return s + ")"
}

func exprString(e Expr) string {
	switch v := e.(type) {
	case Number:
		return v.String()
	case Vec2:
		return v.String()
	case Vec3:
		return v.String()
	case Call:
		return v.String()
	default:
		return "?"
	}
}

func formatNumberLiteral(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
