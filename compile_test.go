package geometrydsl

import (
	"strings"
	"testing"
)

func TestCompileToGLSLUnionOfThreeShapes(t *testing.T) {
	out, err := CompileToGLSL("union(sphere(1), cylinder(0.5, 1), box(vec3(1,1,1)))")
	if err != nil {
		t.Fatalf("CompileToGLSL: %v", err)
	}
	if !strings.HasPrefix(out, "float sdf(vec3 p) {") {
		t.Errorf("output does not start with the sdf header: %q", out)
	}
	if strings.Count(out, "return") != 1 {
		t.Errorf("expected exactly one return statement, got %q", out)
	}
	for _, want := range []string{"min(", "length(", "abs("} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
}

func TestCompileToGLSLPropagatesParseError(t *testing.T) {
	if _, err := CompileToGLSL("sphere("); err == nil {
		t.Fatal("expected a parse error, got nil")
	}
}

func TestCompileToGLSLPropagatesTypeError(t *testing.T) {
	if _, err := CompileToGLSL("sphere(vec3(1,2,3))"); err == nil {
		t.Fatal("expected a type error, got nil")
	}
}

func TestCompileToGLSLPropagatesLoweringError(t *testing.T) {
	src := "extrude(polygon(vec2(0,0), vec2(1,1), vec2(1,0), vec2(0,1)), 1)"
	if _, err := CompileToGLSL(src); err == nil {
		t.Fatal("expected a lowering error for a self-intersecting polygon, got nil")
	}
}

func TestEvalAtSphereOrigin(t *testing.T) {
	d, err := EvalAt("sphere(1)", [3]float64{0, 0, 0})
	if err != nil {
		t.Fatalf("EvalAt: %v", err)
	}
	if d != -1 {
		t.Errorf("EvalAt(sphere(1), origin) = %v, want -1", d)
	}
}

func TestEvalAtOutsideSphere(t *testing.T) {
	d, err := EvalAt("sphere(1)", [3]float64{2, 0, 0})
	if err != nil {
		t.Fatalf("EvalAt: %v", err)
	}
	if d != 1 {
		t.Errorf("EvalAt(sphere(1), (2,0,0)) = %v, want 1", d)
	}
}

func TestEvalAtPropagatesParseError(t *testing.T) {
	if _, err := EvalAt("sphere(", [3]float64{0, 0, 0}); err == nil {
		t.Fatal("expected a parse error, got nil")
	}
}

func TestParseThenLowerRoundTrip(t *testing.T) {
	expr, err := Parse("difference(box(vec3(1,1,1)), sphere(0.5))")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	node, err := Lower(expr)
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}
	if node == nil {
		t.Fatal("Lower returned a nil node with no error")
	}
}

func TestDumpIRContainsRecognizableStructure(t *testing.T) {
	out, err := DumpIR("sphere(1)")
	if err != nil {
		t.Fatalf("DumpIR: %v", err)
	}
	if out == "" {
		t.Error("DumpIR returned an empty string")
	}
	for _, want := range []string{"sub : f32", "length : f32", "var(p) : vec3"} {
		if !strings.Contains(out, want) {
			t.Errorf("DumpIR(sphere(1)) missing %q: %q", want, out)
		}
	}
}

func TestCompileToGLSLDeterministic(t *testing.T) {
	src := "rotate(translate(sphere(1), vec3(1,0,0)), vec3(0,90,0))"
	a, err := CompileToGLSL(src)
	if err != nil {
		t.Fatalf("CompileToGLSL: %v", err)
	}
	b, err := CompileToGLSL(src)
	if err != nil {
		t.Fatalf("CompileToGLSL: %v", err)
	}
	if a != b {
		t.Errorf("CompileToGLSL is not deterministic:\n%q\n%q", a, b)
	}
}
