package ir

import (
	"fmt"
	"math"
)

// Point is the runtime representation of a vec3 value: the query
// point bound to Var, or any vector computed along the way.
type Point [3]float64

// EvalError is raised when Eval reaches an Op it does not recognize.
// Every Op the IR can contain is produced by this package's own
// constructors, so EvalError indicates a compiler bug, not a user
// error — the type tags on a Node are trusted, never re-validated.
type EvalError struct {
	Op Op
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("ir: unknown op %q reached during evaluation", e.Op)
}

// Eval evaluates the scalar field rooted at node with the free
// variable p bound to point. node.Type must be TypeF32 (the only
// kind of expression the DSL ever compiles a field down to).
func Eval(node *Node, point Point) (float64, error) {
	return evalScalar(node, point)
}

func evalScalar(node *Node, p Point) (float64, error) {
	switch node.Op {
	case OpConst:
		return node.Value, nil
	case OpAdd, OpSub, OpMul, OpMin, OpMax, OpAtan2:
		a, err := evalScalar(node.Args[0], p)
		if err != nil {
			return 0, err
		}
		b, err := evalScalar(node.Args[1], p)
		if err != nil {
			return 0, err
		}
		switch node.Op {
		case OpAdd:
			return a + b, nil
		case OpSub:
			return a - b, nil
		case OpMul:
			return a * b, nil
		case OpMin:
			return math.Min(a, b), nil
		case OpMax:
			return math.Max(a, b), nil
		case OpAtan2:
			return math.Atan2(a, b), nil
		}
	case OpNeg, OpAbs, OpSin, OpCos, OpFloor:
		a, err := evalScalar(node.Args[0], p)
		if err != nil {
			return 0, err
		}
		switch node.Op {
		case OpNeg:
			return -a, nil
		case OpAbs:
			return math.Abs(a), nil
		case OpSin:
			return math.Sin(a), nil
		case OpCos:
			return math.Cos(a), nil
		case OpFloor:
			return math.Floor(a), nil
		}
	case OpLength:
		v, err := evalVector(node.Args[0], p)
		if err != nil {
			return 0, err
		}
		return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2]), nil
	case OpVecX, OpVecY, OpVecZ:
		v, err := evalVector(node.Args[0], p)
		if err != nil {
			return 0, err
		}
		switch node.Op {
		case OpVecX:
			return v[0], nil
		case OpVecY:
			return v[1], nil
		case OpVecZ:
			return v[2], nil
		}
	}
	return 0, &EvalError{Op: node.Op}
}

func evalVector(node *Node, p Point) (Point, error) {
	switch node.Op {
	case OpVar:
		return p, nil
	case OpVec3:
		x, err := evalScalar(node.Args[0], p)
		if err != nil {
			return Point{}, err
		}
		y, err := evalScalar(node.Args[1], p)
		if err != nil {
			return Point{}, err
		}
		z, err := evalScalar(node.Args[2], p)
		if err != nil {
			return Point{}, err
		}
		return Point{x, y, z}, nil
	case OpVecAdd, OpVecSub, OpVecMax:
		a, err := evalVector(node.Args[0], p)
		if err != nil {
			return Point{}, err
		}
		b, err := evalVector(node.Args[1], p)
		if err != nil {
			return Point{}, err
		}
		switch node.Op {
		case OpVecAdd:
			return Point{a[0] + b[0], a[1] + b[1], a[2] + b[2]}, nil
		case OpVecSub:
			return Point{a[0] - b[0], a[1] - b[1], a[2] - b[2]}, nil
		case OpVecMax:
			return Point{math.Max(a[0], b[0]), math.Max(a[1], b[1]), math.Max(a[2], b[2])}, nil
		}
	case OpVecAbs:
		a, err := evalVector(node.Args[0], p)
		if err != nil {
			return Point{}, err
		}
		return Point{math.Abs(a[0]), math.Abs(a[1]), math.Abs(a[2])}, nil
	}
	return Point{}, &EvalError{Op: node.Op}
}
