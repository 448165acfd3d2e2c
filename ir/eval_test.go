package ir

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEvalSphere(t *testing.T) {
	// sphere(1): length(p) - 1
	sphere := Sub(Length(Var()), Const(1))

	tests := []struct {
		name string
		p    Point
		want float64
	}{
		{"center", Point{0, 0, 0}, -1},
		{"on axis outside", Point{2, 0, 0}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Eval(sphere, tt.p)
			if err != nil {
				t.Fatalf("Eval: %v", err)
			}
			if !almostEqual(got, tt.want) {
				t.Errorf("Eval(sphere, %v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestEvalDifferenceOfSpheres(t *testing.T) {
	sphereOf := func(r float64) *Node { return Sub(Length(Var()), Const(r)) }
	diff := Max(sphereOf(1), Neg(sphereOf(0.5)))
	got, err := Eval(diff, Point{0, 0, 0})
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if !almostEqual(got, 0.5) {
		t.Errorf("difference(sphere(1),sphere(0.5)) at origin = %v, want 0.5", got)
	}
}

func TestEvalTranslateLaw(t *testing.T) {
	// translate(sphere(1), vec3(1,0,0)) at (1,0,0) == sphere(1) at (0,0,0)
	v := Vec3(Const(1), Const(0), Const(0))
	shifted := VecSub(Var(), v)
	sphere := Sub(Length(Var()), Const(1))
	translated := Substitute(sphere, shifted)

	got, err := Eval(translated, Point{1, 0, 0})
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	want, _ := Eval(sphere, Point{0, 0, 0})
	if !almostEqual(got, want) {
		t.Errorf("translate law violated: got %v, want %v", got, want)
	}
}

func TestEvalUnionIdempotent(t *testing.T) {
	sphere := Sub(Length(Var()), Const(1))
	union := Min(sphere, sphere)
	p := Point{0.3, 0.1, -0.2}
	a, _ := Eval(sphere, p)
	b, _ := Eval(union, p)
	if !almostEqual(a, b) {
		t.Errorf("union(a,a) = %v, want %v", b, a)
	}
}

func TestEvalUnknownOpErrors(t *testing.T) {
	bad := &Node{Op: Op(255), Type: TypeF32}
	_, err := Eval(bad, Point{0, 0, 0})
	if err == nil {
		t.Fatal("expected EvalError for unknown op")
	}
	var evalErr *EvalError
	if _, ok := err.(*EvalError); !ok {
		t.Errorf("expected *EvalError, got %T", err)
	}
	_ = evalErr
}

func TestEvalFinite(t *testing.T) {
	sphere := Sub(Length(Var()), Const(1))
	got, err := Eval(sphere, Point{0, 0, 0})
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Errorf("Eval produced non-finite value %v", got)
	}
}
