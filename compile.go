// Package geometrydsl compiles a small functional language for
// describing 3D solids as signed-distance functions.
//
// A source program names shape primitives and composition operators;
// CompileToGLSL parses, typechecks, lowers, and emits GLSL fragment
// shader source implementing the solid as float sdf(vec3 p). EvalAt
// runs the same front end and evaluates the result directly at a
// query point without ever touching a GPU.
//
//	glsl, err := geometrydsl.CompileToGLSL("union(sphere(1), cylinder(0.5, 1), box(vec3(1,1,1)))")
//
//	d, err := geometrydsl.EvalAt("sphere(1)", [3]float64{0, 0, 0})
package geometrydsl

import (
	"fmt"

	"github.com/sai3097ganesh/geometry-dsl/dsl"
	"github.com/sai3097ganesh/geometry-dsl/glsl"
	"github.com/sai3097ganesh/geometry-dsl/ir"
)

// Parse tokenizes and parses src into an AST, the first stage of the
// pipeline.
func Parse(src string) (dsl.Expr, error) {
	expr, err := dsl.ParseSource(src)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return expr, nil
}

// Lower typechecks then lowers an already-parsed expression to IR.
func Lower(expr dsl.Expr) (*ir.Node, error) {
	if _, err := dsl.TypeOf(expr); err != nil {
		return nil, fmt.Errorf("typecheck: %w", err)
	}
	node, err := dsl.Lower(expr)
	if err != nil {
		return nil, fmt.Errorf("lower: %w", err)
	}
	return node, nil
}

// CompileToGLSL runs the full pipeline: parse, typecheck, lower, and
// emit GLSL source defining float sdf(vec3 p).
func CompileToGLSL(src string) (string, error) {
	expr, err := Parse(src)
	if err != nil {
		return "", err
	}
	node, err := Lower(expr)
	if err != nil {
		return "", err
	}
	out, err := glsl.Emit(node)
	if err != nil {
		return "", fmt.Errorf("emit: %w", err)
	}
	return out, nil
}

// EvalAt runs the full pipeline up to the IR and evaluates the
// resulting field at p.
func EvalAt(src string, p [3]float64) (float64, error) {
	expr, err := Parse(src)
	if err != nil {
		return 0, err
	}
	node, err := Lower(expr)
	if err != nil {
		return 0, err
	}
	v, err := ir.Eval(node, ir.Point{p[0], p[1], p[2]})
	if err != nil {
		return 0, fmt.Errorf("eval: %w", err)
	}
	return v, nil
}

// DumpIR parses and lowers src and returns its IR pretty-printed, for
// inspection and debugging (the -dump-ir flag on cmd/sdfc uses this).
func DumpIR(src string) (string, error) {
	expr, err := Parse(src)
	if err != nil {
		return "", err
	}
	node, err := Lower(expr)
	if err != nil {
		return "", err
	}
	return node.Pretty(), nil
}
