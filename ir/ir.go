package ir

// ValueType is the closed set of runtime types an IR node can carry.
type ValueType uint8

const (
	TypeF32 ValueType = iota
	TypeVec3
)

// String returns the type's DSL-facing name.
func (t ValueType) String() string {
	switch t {
	case TypeF32:
		return "f32"
	case TypeVec3:
		return "vec3"
	default:
		return "unknown"
	}
}

// Op tags every IR node with the operation it performs. Scalar ops
// produce TypeF32; vector ops produce TypeVec3. Op is a closed
// enumeration: lowering only ever constructs nodes through the
// constructors below, so every Op reaching the evaluator or the GLSL
// emitter is one this file knows how to build.
type Op uint8

const (
	// Scalar ops (f32).
	OpConst Op = iota
	OpAdd
	OpSub
	OpNeg
	OpMul
	OpMin
	OpMax
	OpAbs
	OpLength
	OpVecX
	OpVecY
	OpVecZ
	OpSin
	OpCos
	OpAtan2
	OpFloor

	// Vector ops (vec3).
	OpVec3
	OpVar
	OpVecAdd
	OpVecSub
	OpVecAbs
	OpVecMax
)

// String returns the op's tag name, as used by Node.Pretty.
func (op Op) String() string {
	switch op {
	case OpConst:
		return "const"
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpNeg:
		return "neg"
	case OpMul:
		return "mul"
	case OpMin:
		return "min"
	case OpMax:
		return "max"
	case OpAbs:
		return "abs"
	case OpLength:
		return "length"
	case OpVecX:
		return "vec_x"
	case OpVecY:
		return "vec_y"
	case OpVecZ:
		return "vec_z"
	case OpSin:
		return "sin"
	case OpCos:
		return "cos"
	case OpAtan2:
		return "atan2"
	case OpFloor:
		return "floor"
	case OpVec3:
		return "vec3"
	case OpVar:
		return "var"
	case OpVecAdd:
		return "vec_add"
	case OpVecSub:
		return "vec_sub"
	case OpVecAbs:
		return "vec_abs"
	case OpVecMax:
		return "vec_max"
	default:
		return "unknown"
	}
}

// Node is a single IR tree node: an operation, its ordered arguments,
// the type it produces, and (for OpConst only) the literal value it
// carries. Nodes are never mutated after construction, but one node
// can have several parents: lowering reuses subexpressions (the Var
// node, a rotation's sin/cos terms, a swizzled component), and
// Substitute puts the same repl node at every Var site. In memory the
// IR is therefore a DAG; the evaluator and the GLSL emitter walk it
// as a tree, visiting a shared node once per parent.
type Node struct {
	Op    Op
	Args  []*Node
	Type  ValueType
	Value float64 // valid only when Op == OpConst
}

// Const builds a scalar literal.
func Const(v float64) *Node {
	return &Node{Op: OpConst, Type: TypeF32, Value: v}
}

// Var builds the single free variable, the query point p.
func Var() *Node {
	return &Node{Op: OpVar, Type: TypeVec3}
}

// Vec3 builds a vector from three scalar components.
func Vec3(x, y, z *Node) *Node {
	return &Node{Op: OpVec3, Args: []*Node{x, y, z}, Type: TypeVec3}
}

func scalarUnary(op Op, a *Node) *Node {
	return &Node{Op: op, Args: []*Node{a}, Type: TypeF32}
}

func scalarBinary(op Op, a, b *Node) *Node {
	return &Node{Op: op, Args: []*Node{a, b}, Type: TypeF32}
}

func vectorUnary(op Op, a *Node) *Node {
	return &Node{Op: op, Args: []*Node{a}, Type: TypeVec3}
}

func vectorBinary(op Op, a, b *Node) *Node {
	return &Node{Op: op, Args: []*Node{a, b}, Type: TypeVec3}
}

// Add, Sub, Mul, Min, Max build binary scalar ops.
func Add(a, b *Node) *Node { return scalarBinary(OpAdd, a, b) }
func Sub(a, b *Node) *Node { return scalarBinary(OpSub, a, b) }
func Mul(a, b *Node) *Node { return scalarBinary(OpMul, a, b) }
func Min(a, b *Node) *Node { return scalarBinary(OpMin, a, b) }
func Max(a, b *Node) *Node { return scalarBinary(OpMax, a, b) }

// Atan2 builds the two-argument arctangent.
func Atan2(y, x *Node) *Node { return scalarBinary(OpAtan2, y, x) }

// Neg, Abs, Sin, Cos, Floor build unary scalar ops.
func Neg(a *Node) *Node   { return scalarUnary(OpNeg, a) }
func Abs(a *Node) *Node   { return scalarUnary(OpAbs, a) }
func Sin(a *Node) *Node   { return scalarUnary(OpSin, a) }
func Cos(a *Node) *Node   { return scalarUnary(OpCos, a) }
func Floor(a *Node) *Node { return scalarUnary(OpFloor, a) }

// Length builds the vec3 -> f32 Euclidean norm.
func Length(a *Node) *Node { return scalarUnary(OpLength, a) }

// VecX, VecY, VecZ extract a scalar component from a vec3.
func VecX(a *Node) *Node { return scalarUnary(OpVecX, a) }
func VecY(a *Node) *Node { return scalarUnary(OpVecY, a) }
func VecZ(a *Node) *Node { return scalarUnary(OpVecZ, a) }

// VecAdd, VecSub, VecMax build binary vec3 ops.
func VecAdd(a, b *Node) *Node { return vectorBinary(OpVecAdd, a, b) }
func VecSub(a, b *Node) *Node { return vectorBinary(OpVecSub, a, b) }
func VecMax(a, b *Node) *Node { return vectorBinary(OpVecMax, a, b) }

// VecAbs builds the component-wise absolute value of a vec3.
func VecAbs(a *Node) *Node { return vectorUnary(OpVecAbs, a) }

// Substitute returns a deep copy of node with every Var() node
// replaced by repl. repl itself is not copied: every replaced site
// points at the same repl node. Because the IR has exactly one free variable,
// this single rewrite is hygienic by construction: there is no
// binder repl could be accidentally captured by.
func Substitute(node, repl *Node) *Node {
	if node.Op == OpVar {
		return repl
	}
	if len(node.Args) == 0 {
		return &Node{Op: node.Op, Type: node.Type, Value: node.Value}
	}
	args := make([]*Node, len(node.Args))
	for i, a := range node.Args {
		args[i] = Substitute(a, repl)
	}
	return &Node{Op: node.Op, Args: args, Type: node.Type, Value: node.Value}
}
