package ir

import "testing"

func TestSmoothMinApproachesMinAwayFromBlendZone(t *testing.T) {
	a, b := Const(0), Const(10)
	got, err := Eval(SmoothMin(a, b, 1), Point{})
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if !almostEqual(got, 0) {
		t.Errorf("SmoothMin(0, 10, k=1) = %v, want 0 (far outside blend radius)", got)
	}
}

func TestSmoothMinIsBelowMinAtEquidistance(t *testing.T) {
	a, b := Const(1), Const(1)
	got, err := Eval(SmoothMin(a, b, 2), Point{})
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got >= 1 {
		t.Errorf("SmoothMin(1, 1, k=2) = %v, want < 1 (fillet should dip below min at equidistance)", got)
	}
}

func TestSmoothMinZeroRadiusIsPlainMin(t *testing.T) {
	a, b := Const(3), Const(7)
	got, err := Eval(SmoothMin(a, b, 0), Point{})
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	want, _ := Eval(Min(a, b), Point{})
	if !almostEqual(got, want) {
		t.Errorf("SmoothMin(3, 7, k=0) = %v, want plain min %v", got, want)
	}
}
