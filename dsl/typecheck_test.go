package dsl

import "testing"

func mustParse(t *testing.T, src string) Expr {
	t.Helper()
	expr, err := ParseSource(src)
	if err != nil {
		t.Fatalf("ParseSource(%q): %v", src, err)
	}
	return expr
}

func TestTypeOfPrimitives(t *testing.T) {
	tests := []struct {
		src  string
		want Type
	}{
		{"sphere(1)", TypeField},
		{"cylinder(1, 0.5)", TypeField},
		{"box(vec3(1,1,1))", TypeField},
		{"hex_nut(1, 0.5, 0.25)", TypeField},
		{"circle(1)", TypeCircle2D},
		{"polygon(vec2(0,0), vec2(1,0), vec2(0,1))", TypePoly2D},
		{"line(vec3(0,0,0), vec3(1,0,0))", TypePath},
		{"polyline(vec3(0,0,0), vec3(1,0,0), vec3(2,0,0))", TypePath},
		{"helix(1, 0.5, 2)", TypePath},
		{"union(sphere(1), sphere(2))", TypeField},
		{"union(sphere(1), sphere(2), sphere(3))", TypeField},
		{"difference(sphere(1), sphere(0.5))", TypeField},
		{"rotate(sphere(1), vec3(90,0,0))", TypeField},
		{"translate(sphere(1), vec3(1,0,0))", TypeField},
		{"offset(sphere(1), 0.1)", TypeField},
		{"extrude(polygon(vec2(0,0), vec2(1,0), vec2(0,1)), 1)", TypeField},
		{"extrude(circle(1), 1)", TypeField},
		{"sweep(circle(0.2), line(vec3(0,0,0), vec3(1,0,0)))", TypeField},
		{"blend2D(circle(0.2), circle(0.5), line(vec3(0,0,0), vec3(1,0,0)))", TypeField},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := TypeOf(mustParse(t, tt.src))
			if err != nil {
				t.Fatalf("TypeOf: %v", err)
			}
			if got != tt.want {
				t.Errorf("TypeOf(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestTypeOfUnknownFunction(t *testing.T) {
	_, err := TypeOf(mustParse(t, "frobnicate(1)"))
	if err == nil {
		t.Fatal("expected TypeError for unknown function")
	}
	te, ok := err.(*TypeError)
	if !ok {
		t.Fatalf("expected *TypeError, got %T", err)
	}
	if te.Name != "frobnicate" {
		t.Errorf("TypeError.Name = %q, want frobnicate", te.Name)
	}
}

func TestTypeOfWrongArity(t *testing.T) {
	_, err := TypeOf(mustParse(t, "sphere(1, 2)"))
	if err == nil {
		t.Fatal("expected TypeError for sphere with 2 args")
	}
}

func TestTypeOfWrongArgumentType(t *testing.T) {
	_, err := TypeOf(mustParse(t, "sphere(vec3(1,1,1))"))
	if err == nil {
		t.Fatal("expected TypeError for sphere(vec3(...))")
	}
	te, ok := err.(*TypeError)
	if !ok {
		t.Fatalf("expected *TypeError, got %T", err)
	}
	if te.ArgIndex != 0 {
		t.Errorf("TypeError.ArgIndex = %d, want 0", te.ArgIndex)
	}
}

func TestTypeOfUnionRequiresAtLeastTwoFields(t *testing.T) {
	_, err := TypeOf(mustParse(t, "union(sphere(1))"))
	if err == nil {
		t.Fatal("expected TypeError for union with 1 arg")
	}
}

func TestTypeOfExtrudeAcceptsPolygonOrCircle(t *testing.T) {
	for _, src := range []string{
		"extrude(polygon(vec2(0,0), vec2(1,0), vec2(0,1)), 1)",
		"extrude(circle(1), 1)",
	} {
		if _, err := TypeOf(mustParse(t, src)); err != nil {
			t.Errorf("TypeOf(%q): %v", src, err)
		}
	}
}

func TestTypeOfExtrudeRejectsFieldProfile(t *testing.T) {
	_, err := TypeOf(mustParse(t, "extrude(sphere(1), 1)"))
	if err == nil {
		t.Fatal("expected TypeError for extrude with a field profile")
	}
}

func TestTypeOfDeterministic(t *testing.T) {
	expr := mustParse(t, "union(sphere(1), cylinder(1,1), box(vec3(1,1,1)))")
	first, err := TypeOf(expr)
	if err != nil {
		t.Fatalf("TypeOf: %v", err)
	}
	second, err := TypeOf(expr)
	if err != nil {
		t.Fatalf("TypeOf: %v", err)
	}
	if first != second {
		t.Errorf("TypeOf not deterministic: %v vs %v", first, second)
	}
}
