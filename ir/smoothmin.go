package ir

// SmoothMin builds the quadratic-polynomial smooth minimum of a and b
// with blend radius k, the joint-fillet operator sweep lowering uses
// between consecutive segments of a line/polyline path (a helix sweep
// is lowered analytically and does not use it).
//
// k is a lowering-time constant, not an IR node: the radius is always
// known when the sweep is lowered, so folding 1/k into a constant
// multiplication avoids needing a division op in the IR at all.
//
//	h = clamp((k - |a-b|) / k, 0, 1)
//	smin(a, b, k) = min(a, b) - h^3 * k/6
//
// This is the polynomial form, not the exponential one: it matches
// the original prototype's _ir_smin numerically, not just
// qualitatively, so sweep joints fillet exactly as the source program
// intended.
func SmoothMin(a, b *Node, k float64) *Node {
	if k <= 0 {
		return Min(a, b)
	}

	diff := Abs(Sub(a, b))
	t := Sub(Const(1), Mul(Const(1/k), diff))
	h := Max(Min(t, Const(1)), Const(0))
	h3 := Mul(Mul(h, h), h)

	return Sub(Min(a, b), Mul(h3, Const(k/6)))
}
