package dsl

import "fmt"

// Type is a member of the closed type enumeration the typechecker
// assigns. Field denotes a function vec3 -> f32; Poly2D, Circle2D,
// and Path are compile-time-only shape descriptors, legal only as
// the profile/path arguments of extrude, sweep, and blend2D.
type Type uint8

const (
	TypeF32 Type = iota
	TypeVec2
	TypeVec3
	TypeField
	TypePoly2D
	TypeCircle2D
	TypePath
)

// String returns the type's DSL-facing name.
func (t Type) String() string {
	switch t {
	case TypeF32:
		return "f32"
	case TypeVec2:
		return "vec2"
	case TypeVec3:
		return "vec3"
	case TypeField:
		return "field"
	case TypePoly2D:
		return "poly2d"
	case TypeCircle2D:
		return "circle2d"
	case TypePath:
		return "path"
	default:
		return "unknown"
	}
}

// TypeOf computes the type of the root of expr, or the first type
// error encountered while walking it.
func TypeOf(expr Expr) (Type, error) {
	switch e := expr.(type) {
	case Number:
		return TypeF32, nil
	case Vec2:
		if err := requireType(e.X, TypeF32, "vec2", 0); err != nil {
			return 0, err
		}
		if err := requireType(e.Y, TypeF32, "vec2", 1); err != nil {
			return 0, err
		}
		return TypeVec2, nil
	case Vec3:
		if err := requireType(e.X, TypeF32, "vec3", 0); err != nil {
			return 0, err
		}
		if err := requireType(e.Y, TypeF32, "vec3", 1); err != nil {
			return 0, err
		}
		if err := requireType(e.Z, TypeF32, "vec3", 2); err != nil {
			return 0, err
		}
		return TypeVec3, nil
	case Call:
		return typeOfCall(e)
	default:
		return 0, &TypeError{Message: "unknown expression", ArgIndex: -1}
	}
}

func requireType(e Expr, want Type, name string, idx int) error {
	got, err := TypeOf(e)
	if err != nil {
		return err
	}
	if got != want {
		return &TypeError{
			Message:  fmt.Sprintf("expects %s, got %s", want, got),
			Name:     name,
			ArgIndex: idx,
		}
	}
	return nil
}

func requireProfileType(e Expr, name string, idx int) (Type, error) {
	got, err := TypeOf(e)
	if err != nil {
		return 0, err
	}
	if got != TypePoly2D && got != TypeCircle2D {
		return 0, &TypeError{
			Message:  fmt.Sprintf("expects poly2d or circle2d, got %s", got),
			Name:     name,
			ArgIndex: idx,
		}
	}
	return got, nil
}

func fixedArity(c Call, expected []Type, ret Type) (Type, error) {
	if len(c.Args) != len(expected) {
		return 0, &TypeError{
			Message:  fmt.Sprintf("expects %d args, got %d", len(expected), len(c.Args)),
			Name:     c.Name,
			ArgIndex: -1,
		}
	}
	for i, want := range expected {
		if err := requireType(c.Args[i], want, c.Name, i); err != nil {
			return 0, err
		}
	}
	return ret, nil
}

func variadicMin(c Call, argType Type, min int, ret Type) (Type, error) {
	if len(c.Args) < min {
		return 0, &TypeError{
			Message:  fmt.Sprintf("expects at least %d args, got %d", min, len(c.Args)),
			Name:     c.Name,
			ArgIndex: -1,
		}
	}
	for i, arg := range c.Args {
		if err := requireType(arg, argType, c.Name, i); err != nil {
			return 0, err
		}
	}
	return ret, nil
}

func typeOfCall(c Call) (Type, error) {
	switch c.Name {
	case "sphere":
		return fixedArity(c, []Type{TypeF32}, TypeField)
	case "cylinder":
		return fixedArity(c, []Type{TypeF32, TypeF32}, TypeField)
	case "box":
		return fixedArity(c, []Type{TypeVec3}, TypeField)
	case "hex_nut":
		return fixedArity(c, []Type{TypeF32, TypeF32, TypeF32}, TypeField)
	case "circle":
		return fixedArity(c, []Type{TypeF32}, TypeCircle2D)
	case "polygon":
		return variadicMin(c, TypeVec2, 3, TypePoly2D)
	case "line":
		return fixedArity(c, []Type{TypeVec3, TypeVec3}, TypePath)
	case "polyline":
		return variadicMin(c, TypeVec3, 2, TypePath)
	case "helix":
		return fixedArity(c, []Type{TypeF32, TypeF32, TypeF32}, TypePath)
	case "union":
		return variadicMin(c, TypeField, 2, TypeField)
	case "difference":
		return fixedArity(c, []Type{TypeField, TypeField}, TypeField)
	case "rotate":
		return fixedArity(c, []Type{TypeField, TypeVec3}, TypeField)
	case "translate":
		return fixedArity(c, []Type{TypeField, TypeVec3}, TypeField)
	case "offset":
		return fixedArity(c, []Type{TypeField, TypeF32}, TypeField)
	case "extrude":
		if len(c.Args) != 2 {
			return 0, &TypeError{Message: "expects 2 args", Name: c.Name, ArgIndex: -1}
		}
		if _, err := requireProfileType(c.Args[0], c.Name, 0); err != nil {
			return 0, err
		}
		if err := requireType(c.Args[1], TypeF32, c.Name, 1); err != nil {
			return 0, err
		}
		return TypeField, nil
	case "sweep":
		if len(c.Args) != 2 {
			return 0, &TypeError{Message: "expects 2 args", Name: c.Name, ArgIndex: -1}
		}
		if _, err := requireProfileType(c.Args[0], c.Name, 0); err != nil {
			return 0, err
		}
		if err := requireType(c.Args[1], TypePath, c.Name, 1); err != nil {
			return 0, err
		}
		return TypeField, nil
	case "blend2D":
		if len(c.Args) != 3 {
			return 0, &TypeError{Message: "expects 3 args", Name: c.Name, ArgIndex: -1}
		}
		if _, err := requireProfileType(c.Args[0], c.Name, 0); err != nil {
			return 0, err
		}
		if _, err := requireProfileType(c.Args[1], c.Name, 1); err != nil {
			return 0, err
		}
		if err := requireType(c.Args[2], TypePath, c.Name, 2); err != nil {
			return 0, err
		}
		return TypeField, nil
	case "vec2":
		return fixedArity(c, []Type{TypeF32, TypeF32}, TypeVec2)
	case "vec3":
		return fixedArity(c, []Type{TypeF32, TypeF32, TypeF32}, TypeVec3)
	default:
		return 0, &TypeError{
			Message:  "unknown function " + c.Name,
			Name:     c.Name,
			ArgIndex: -1,
		}
	}
}
