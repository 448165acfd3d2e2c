package dsl

import (
	"math"

	"github.com/sai3097ganesh/geometry-dsl/geom"
	"github.com/sai3097ganesh/geometry-dsl/ir"
)

const (
	degToRad         = math.Pi / 180.0
	twoPi            = 2 * math.Pi
	helixSegmentsPer = 24 // sample density for the generic-path helix branch
)

// Lower expands expr, the parser's output, into the IR vocabulary.
// Callers are expected to have already typechecked expr; Lower still
// enforces the lowering-time invariants the typechecker cannot see
// (literal polygon vertices, polygon simplicity/convexity, non-empty
// sweep/blend2D path segments) and reports them as *LoweringError.
func Lower(expr Expr) (*ir.Node, error) {
	switch e := expr.(type) {
	case Number:
		return ir.Const(e.Value), nil
	case Vec3:
		x, err := Lower(e.X)
		if err != nil {
			return nil, err
		}
		y, err := Lower(e.Y)
		if err != nil {
			return nil, err
		}
		z, err := Lower(e.Z)
		if err != nil {
			return nil, err
		}
		return ir.Vec3(x, y, z), nil
	case Vec2:
		return nil, newLoweringError("vec2 has no standalone field lowering; it is only valid as a polygon vertex")
	case Call:
		return lowerCall(e)
	default:
		return nil, newLoweringError("unknown expression")
	}
}

func lowerCall(c Call) (*ir.Node, error) {
	switch c.Name {
	case "sphere":
		return lowerSphere(c)
	case "cylinder":
		return lowerCylinder(c)
	case "box":
		return lowerBox(c)
	case "hex_nut":
		return lowerHexNut(c)
	case "union":
		return lowerUnion(c)
	case "difference":
		return lowerDifference(c)
	case "rotate":
		return lowerRotate(c)
	case "translate":
		return lowerTranslate(c)
	case "offset":
		return lowerOffset(c)
	case "extrude":
		return lowerExtrude(c)
	case "sweep":
		return lowerSweep(c)
	case "blend2D":
		return lowerBlend2D(c)
	case "circle":
		return nil, newLoweringError("circle must be used with extrude, sweep, or blend2D")
	case "polygon":
		return nil, newLoweringError("polygon must be used with extrude, sweep, or blend2D")
	case "line", "polyline", "helix":
		return nil, newLoweringError("path must be used with sweep or blend2D")
	default:
		return nil, newLoweringError("unknown function %s", c.Name)
	}
}

// --- primitives ---------------------------------------------------

func lowerSphere(c Call) (*ir.Node, error) {
	r, err := Lower(c.Args[0])
	if err != nil {
		return nil, err
	}
	return ir.Sub(ir.Length(ir.Var()), r), nil
}

func lowerCylinder(c Call) (*ir.Node, error) {
	r, err := Lower(c.Args[0])
	if err != nil {
		return nil, err
	}
	h, err := Lower(c.Args[1])
	if err != nil {
		return nil, err
	}
	p := ir.Var()
	absY := ir.Abs(ir.VecY(p))
	dy := ir.Sub(absY, h)

	radial := ir.Length(ir.Vec3(ir.VecX(p), ir.Const(0), ir.VecZ(p)))
	dx := ir.Sub(radial, r)

	inside := ir.Min(ir.Max(dx, dy), ir.Const(0))
	out := ir.Length(ir.Vec3(ir.Max(dx, ir.Const(0)), ir.Max(dy, ir.Const(0)), ir.Const(0)))
	return ir.Add(inside, out), nil
}

func lowerBox(c Call) (*ir.Node, error) {
	size, err := Lower(c.Args[0])
	if err != nil {
		return nil, err
	}
	p := ir.Var()
	q := ir.VecSub(ir.VecAbs(p), size)
	qMax := ir.VecMax(q, ir.Vec3(ir.Const(0), ir.Const(0), ir.Const(0)))
	d1 := ir.Length(qMax)
	inner := ir.Max(ir.Max(ir.VecX(q), ir.VecY(q)), ir.VecZ(q))
	d2 := ir.Min(inner, ir.Const(0))
	return ir.Add(d1, d2), nil
}

func hexagonVertices(r float64) []geom.Vec2 {
	verts := make([]geom.Vec2, 6)
	for k := 0; k < 6; k++ {
		angle := float64(k) * (math.Pi / 3)
		verts[k] = geom.Vec2{X: r * math.Cos(angle), Y: r * math.Sin(angle)}
	}
	return verts
}

// lowerHexNut desugars to difference(rotate(extrude(polygon(hex), h),
// vec3(90,0,0)), cylinder(ri, h+0.01)): the same AST-rewrite the
// reference lowering performs, expressed by constructing and
// re-lowering the equivalent expression tree rather than duplicating
// extrude/rotate/difference's IR by hand.
func lowerHexNut(c Call) (*ir.Node, error) {
	if len(c.Args) != 3 {
		return nil, newLoweringError("hex_nut expects 3 args")
	}
	outerR, err := extractNumber(c.Args[0], "hex_nut arg 0")
	if err != nil {
		return nil, err
	}
	innerR, err := extractNumber(c.Args[1], "hex_nut arg 1")
	if err != nil {
		return nil, err
	}
	halfH, err := extractNumber(c.Args[2], "hex_nut arg 2")
	if err != nil {
		return nil, err
	}

	hex := hexagonVertices(outerR)
	polyArgs := make([]Expr, len(hex))
	for i, v := range hex {
		polyArgs[i] = Vec2{X: Number{Value: v.X}, Y: Number{Value: v.Y}}
	}
	prism := Call{
		Name: "rotate",
		Args: []Expr{
			Call{Name: "extrude", Args: []Expr{Call{Name: "polygon", Args: polyArgs}, Number{Value: halfH}}},
			Vec3{X: Number{Value: 90}, Y: Number{Value: 0}, Z: Number{Value: 0}},
		},
	}
	hole := Call{Name: "cylinder", Args: []Expr{Number{Value: innerR}, Number{Value: halfH + 0.01}}}
	return lowerCall(Call{Name: "difference", Args: []Expr{prism, hole}})
}

func lowerUnion(c Call) (*ir.Node, error) {
	if len(c.Args) < 2 {
		return nil, newLoweringError("union expects at least 2 args")
	}
	cur, err := Lower(c.Args[0])
	if err != nil {
		return nil, err
	}
	for _, arg := range c.Args[1:] {
		next, err := Lower(arg)
		if err != nil {
			return nil, err
		}
		cur = ir.Min(cur, next)
	}
	return cur, nil
}

func lowerDifference(c Call) (*ir.Node, error) {
	a, err := Lower(c.Args[0])
	if err != nil {
		return nil, err
	}
	b, err := Lower(c.Args[1])
	if err != nil {
		return nil, err
	}
	return ir.Max(a, ir.Neg(b)), nil
}

func lowerOffset(c Call) (*ir.Node, error) {
	g, err := Lower(c.Args[0])
	if err != nil {
		return nil, err
	}
	d, err := Lower(c.Args[1])
	if err != nil {
		return nil, err
	}
	return ir.Sub(g, d), nil
}

func lowerTranslate(c Call) (*ir.Node, error) {
	g, err := Lower(c.Args[0])
	if err != nil {
		return nil, err
	}
	v, err := Lower(c.Args[1])
	if err != nil {
		return nil, err
	}
	shifted := ir.VecSub(ir.Var(), v)
	return ir.Substitute(g, shifted), nil
}

// lowerRotate builds the inverse rotation Rz(-z)*Ry(-y)*Rx(-x) of p
// in degrees and substitutes it into g: the field itself never
// changes, only the point it is sampled at.
func lowerRotate(c Call) (*ir.Node, error) {
	g, err := Lower(c.Args[0])
	if err != nil {
		return nil, err
	}
	angles, err := Lower(c.Args[1])
	if err != nil {
		return nil, err
	}

	deg := ir.Const(degToRad)
	ax := ir.Mul(ir.Neg(ir.VecX(angles)), deg)
	ay := ir.Mul(ir.Neg(ir.VecY(angles)), deg)
	az := ir.Mul(ir.Neg(ir.VecZ(angles)), deg)

	cx, sx := ir.Cos(ax), ir.Sin(ax)
	cy, sy := ir.Cos(ay), ir.Sin(ay)
	cz, sz := ir.Cos(az), ir.Sin(az)

	p := ir.Var()
	x0, y0, z0 := ir.VecX(p), ir.VecY(p), ir.VecZ(p)

	x1 := x0
	y1 := ir.Sub(ir.Mul(y0, cx), ir.Mul(z0, sx))
	z1 := ir.Add(ir.Mul(y0, sx), ir.Mul(z0, cx))

	x2 := ir.Add(ir.Mul(x1, cy), ir.Mul(z1, sy))
	y2 := y1
	z2 := ir.Add(ir.Mul(ir.Neg(x1), sy), ir.Mul(z1, cy))

	x3 := ir.Sub(ir.Mul(x2, cz), ir.Mul(y2, sz))
	y3 := ir.Add(ir.Mul(x2, sz), ir.Mul(y2, cz))
	z3 := z2

	return ir.Substitute(g, ir.Vec3(x3, y3, z3)), nil
}

// --- extrude --------------------------------------------------------

func lowerExtrude(c Call) (*ir.Node, error) {
	if len(c.Args) != 2 {
		return nil, newLoweringError("extrude expects 2 args")
	}
	h, err := Lower(c.Args[1])
	if err != nil {
		return nil, err
	}
	p := ir.Var()
	px, py, pz := ir.VecX(p), ir.VecY(p), ir.VecZ(p)

	profile, ok := c.Args[0].(Call)
	if !ok {
		return nil, newLoweringError("extrude expects polygon(...) or circle(...) as first arg")
	}
	switch profile.Name {
	case "polygon":
		poly, err := extractPolygon(profile)
		if err != nil {
			return nil, err
		}
		return prismSDF(poly, h, px, py, pz), nil
	case "circle":
		if len(profile.Args) != 1 {
			return nil, newLoweringError("circle expects 1 arg")
		}
		r, err := extractNumber(profile.Args[0], "circle arg 0")
		if err != nil {
			return nil, err
		}
		radial := ir.Length(ir.Vec3(px, py, ir.Const(0)))
		dx := ir.Sub(radial, ir.Const(r))
		dz := ir.Sub(ir.Abs(pz), h)
		inside := ir.Min(ir.Max(dx, dz), ir.Const(0))
		out := ir.Length(ir.Vec3(ir.Max(dx, ir.Const(0)), ir.Max(dz, ir.Const(0)), ir.Const(0)))
		return ir.Add(inside, out), nil
	default:
		return nil, newLoweringError("extrude expects polygon(...) or circle(...) as first arg")
	}
}

// polygonSDF builds the 2D convex-polygon SDF max_i(n_i . (p2 - V_i))
// over profile-plane coordinates (px, py), where n_i is the outward
// normal of edge i.
func polygonSDF(poly []geom.Vec2, px, py *ir.Node) *ir.Node {
	var maxD *ir.Node
	n := len(poly)
	for i := 0; i < n; i++ {
		x1, y1 := poly[i].X, poly[i].Y
		x2, y2 := poly[(i+1)%n].X, poly[(i+1)%n].Y
		ex, ey := x2-x1, y2-y1
		nx, ny := ey, -ex
		nlen := math.Hypot(nx, ny)
		if nlen == 0 {
			continue
		}
		nx /= nlen
		ny /= nlen

		dx := ir.Sub(px, ir.Const(x1))
		dy := ir.Sub(py, ir.Const(y1))
		dot := ir.Add(ir.Mul(ir.Const(nx), dx), ir.Mul(ir.Const(ny), dy))
		if maxD == nil {
			maxD = dot
		} else {
			maxD = ir.Max(maxD, dot)
		}
	}
	return maxD
}

func prismSDF(poly []geom.Vec2, h, px, py, axis *ir.Node) *ir.Node {
	maxD := polygonSDF(poly, px, py)
	dAxis := ir.Sub(ir.Abs(axis), h)
	return ir.Max(maxD, dAxis)
}

func circleSDF(radius float64, px, py *ir.Node) *ir.Node {
	radial := ir.Length(ir.Vec3(px, py, ir.Const(0)))
	return ir.Sub(radial, ir.Const(radius))
}

func dot3Const(vec *ir.Node, cx, cy, cz float64) *ir.Node {
	dx := ir.Mul(ir.Const(cx), ir.VecX(vec))
	dy := ir.Mul(ir.Const(cy), ir.VecY(vec))
	dz := ir.Mul(ir.Const(cz), ir.VecZ(vec))
	return ir.Add(ir.Add(dx, dy), dz)
}

func dot3(a, b, c, x, y, z *ir.Node) *ir.Node {
	dx := ir.Mul(a, x)
	dy := ir.Mul(b, y)
	dz := ir.Mul(c, z)
	return ir.Add(ir.Add(dx, dy), dz)
}

func clamp01(v *ir.Node) *ir.Node {
	return ir.Min(ir.Max(v, ir.Const(0)), ir.Const(1))
}

func blendSDF(sdf1, sdf2, t *ir.Node) *ir.Node {
	oneMinusT := ir.Sub(ir.Const(1), t)
	return ir.Add(ir.Mul(oneMinusT, sdf1), ir.Mul(t, sdf2))
}

// --- literal extraction -------------------------------------------

func extractNumber(e Expr, label string) (float64, error) {
	n, ok := e.(Number)
	if !ok {
		return 0, newLoweringError("%s must be a numeric constant", label)
	}
	return n.Value, nil
}

func extractVec2(e Expr) (geom.Vec2, error) {
	v, ok := e.(Vec2)
	if !ok {
		return geom.Vec2{}, newLoweringError("polygon vertices must be vec2 constants")
	}
	x, okX := v.X.(Number)
	y, okY := v.Y.(Number)
	if !okX || !okY {
		return geom.Vec2{}, newLoweringError("vec2 components must be numeric constants")
	}
	return geom.Vec2{X: x.Value, Y: y.Value}, nil
}

type point3 struct{ X, Y, Z float64 }

func extractVec3(e Expr) (point3, error) {
	v, ok := e.(Vec3)
	if !ok {
		return point3{}, newLoweringError("path points must be vec3 constants")
	}
	x, okX := v.X.(Number)
	y, okY := v.Y.(Number)
	z, okZ := v.Z.(Number)
	if !okX || !okY || !okZ {
		return point3{}, newLoweringError("vec3 components must be numeric constants")
	}
	return point3{X: x.Value, Y: y.Value, Z: z.Value}, nil
}

func extractPolygon(c Call) ([]geom.Vec2, error) {
	if c.Name != "polygon" {
		return nil, newLoweringError("extrude expects polygon(...) as first arg")
	}
	if len(c.Args) < 3 {
		return nil, newLoweringError("polygon expects at least 3 args")
	}
	poly := make([]geom.Vec2, len(c.Args))
	for i, a := range c.Args {
		v, err := extractVec2(a)
		if err != nil {
			return nil, err
		}
		poly[i] = v
	}
	out, err := geom.Validate(poly)
	if err != nil {
		return nil, &LoweringError{Message: err.Error()}
	}
	return out, nil
}

func extractHelixParams(c Call) (radius, pitch, turns float64, err error) {
	if len(c.Args) != 3 {
		return 0, 0, 0, newLoweringError("helix expects 3 args")
	}
	radius, err = extractNumber(c.Args[0], "helix arg 0")
	if err != nil {
		return 0, 0, 0, err
	}
	pitch, err = extractNumber(c.Args[1], "helix arg 1")
	if err != nil {
		return 0, 0, 0, err
	}
	turns, err = extractNumber(c.Args[2], "helix arg 2")
	if err != nil {
		return 0, 0, 0, err
	}
	return radius, pitch, turns, nil
}

func extractHelixPolyline(c Call) ([]point3, error) {
	radius, pitch, turns, err := extractHelixParams(c)
	if err != nil {
		return nil, err
	}
	turnsClamped := math.Max(turns, 0)
	steps := int(math.Ceil(helixSegmentsPer * turnsClamped))
	if steps < 1 {
		steps = 1
	}
	totalAngle := twoPi * turns
	angleStep := 0.0
	if steps > 0 {
		angleStep = totalAngle / float64(steps)
	}
	points := make([]point3, steps+1)
	for i := 0; i <= steps; i++ {
		angle := angleStep * float64(i)
		y := pitch * angle / twoPi
		x := radius * math.Cos(angle)
		z := radius * math.Sin(angle)
		points[i] = point3{X: x, Y: y, Z: z}
	}
	return points, nil
}

func extractPath(e Expr) ([]point3, error) {
	c, ok := e.(Call)
	if !ok {
		return nil, newLoweringError("sweep expects line(...), polyline(...), or helix(...) as second arg")
	}
	switch c.Name {
	case "line":
		if len(c.Args) != 2 {
			return nil, newLoweringError("line expects 2 args")
		}
		a, err := extractVec3(c.Args[0])
		if err != nil {
			return nil, err
		}
		b, err := extractVec3(c.Args[1])
		if err != nil {
			return nil, err
		}
		return []point3{a, b}, nil
	case "polyline":
		if len(c.Args) < 2 {
			return nil, newLoweringError("polyline expects at least 2 args")
		}
		points := make([]point3, len(c.Args))
		for i, a := range c.Args {
			p, err := extractVec3(a)
			if err != nil {
				return nil, err
			}
			points[i] = p
		}
		return points, nil
	case "helix":
		return extractHelixPolyline(c)
	default:
		return nil, newLoweringError("sweep expects line(...), polyline(...), or helix(...) as second arg")
	}
}

// --- profile descriptor shared by sweep and blend2D -----------------

type profileKind uint8

const (
	profileCircle profileKind = iota
	profilePolygon
)

type profile struct {
	kind   profileKind
	radius float64
	poly   []geom.Vec2
}

func extractProfile(e Expr) (profile, error) {
	c, ok := e.(Call)
	if !ok {
		return profile{}, newLoweringError("expects polygon(...) or circle(...) as profile")
	}
	switch c.Name {
	case "polygon":
		poly, err := extractPolygon(c)
		if err != nil {
			return profile{}, err
		}
		return profile{kind: profilePolygon, poly: poly}, nil
	case "circle":
		if len(c.Args) != 1 {
			return profile{}, newLoweringError("circle expects 1 arg")
		}
		r, err := extractNumber(c.Args[0], "circle arg 0")
		if err != nil {
			return profile{}, err
		}
		return profile{kind: profileCircle, radius: r}, nil
	default:
		return profile{}, newLoweringError("expects polygon(...) or circle(...) as profile")
	}
}

func (pr profile) sdf(px, py *ir.Node) *ir.Node {
	if pr.kind == profileCircle {
		return circleSDF(pr.radius, px, py)
	}
	return polygonSDF(pr.poly, px, py)
}

// --- sweep ------------------------------------------------------------

func lowerSweep(c Call) (*ir.Node, error) {
	if len(c.Args) != 2 {
		return nil, newLoweringError("sweep expects 2 args")
	}
	pr, err := extractProfile(c.Args[0])
	if err != nil {
		return nil, err
	}
	if helixCall, ok := c.Args[1].(Call); ok && helixCall.Name == "helix" {
		return lowerSweepHelix(pr, helixCall)
	}
	path, err := extractPath(c.Args[1])
	if err != nil {
		return nil, err
	}
	return lowerSweepPath(pr, path)
}

type pathSegment struct {
	a, b       point3
	ab         point3 // b - a
	len2       float64
	tx, ty, tz float64 // unit tangent
}

func buildSegments(path []point3) []pathSegment {
	var segs []pathSegment
	for i := 0; i < len(path)-1; i++ {
		a, b := path[i], path[i+1]
		abx, aby, abz := b.X-a.X, b.Y-a.Y, b.Z-a.Z
		len2 := abx*abx + aby*aby + abz*abz
		if len2 == 0 {
			continue
		}
		tlen := math.Sqrt(len2)
		segs = append(segs, pathSegment{
			a: a, b: b,
			ab:   point3{X: abx, Y: aby, Z: abz},
			len2: len2,
			tx:   abx / tlen, ty: aby / tlen, tz: abz / tlen,
		})
	}
	return segs
}

// localFrame returns the orthonormal (normal, binormal) pair for a
// segment with unit tangent (tx,ty,tz), using (0,1,0) as the
// reference up vector unless the tangent is nearly vertical.
func localFrame(tx, ty, tz float64) (n, b point3, ok bool) {
	upx, upy, upz := 0.0, 1.0, 0.0
	if math.Abs(tx*upx+ty*upy+tz*upz) > 0.999 {
		upx, upy, upz = 1, 0, 0
	}
	nx := upy*tz - upz*ty
	ny := upz*tx - upx*tz
	nz := upx*ty - upy*tx
	nlen := math.Sqrt(nx*nx + ny*ny + nz*nz)
	if nlen == 0 {
		return point3{}, point3{}, false
	}
	nx, ny, nz = nx/nlen, ny/nlen, nz/nlen
	bx := ty*nz - tz*ny
	by := tz*nx - tx*nz
	bz := tx*ny - ty*nx
	return point3{nx, ny, nz}, point3{bx, by, bz}, true
}

// segmentLocal projects p onto the clamped segment and returns the
// profile-plane coordinates (px, py) and tangential distance qt at
// the closest point.
func segmentLocal(seg pathSegment, n, b point3) (px, py, qt *ir.Node) {
	p := ir.Var()
	aVec := ir.Vec3(ir.Const(seg.a.X), ir.Const(seg.a.Y), ir.Const(seg.a.Z))
	pa := ir.VecSub(p, aVec)
	dotPaAb := dot3Const(pa, seg.ab.X, seg.ab.Y, seg.ab.Z)
	tRaw := ir.Mul(dotPaAb, ir.Const(1/seg.len2))
	tClamped := clamp01(tRaw)

	abScaled := ir.Vec3(
		ir.Mul(ir.Const(seg.ab.X), tClamped),
		ir.Mul(ir.Const(seg.ab.Y), tClamped),
		ir.Mul(ir.Const(seg.ab.Z), tClamped),
	)
	closest := ir.VecAdd(aVec, abScaled)
	q := ir.VecSub(p, closest)

	px = dot3Const(q, n.X, n.Y, n.Z)
	py = dot3Const(q, b.X, b.Y, b.Z)
	qt = dot3Const(q, seg.tx, seg.ty, seg.tz)
	return px, py, qt
}

func lowerSweepPath(pr profile, path []point3) (*ir.Node, error) {
	segs := buildSegments(path)
	if len(segs) == 0 {
		return nil, newLoweringError("sweep path has no valid segments")
	}

	useRoundJoins := pr.kind == profileCircle
	var joinK []float64
	if useRoundJoins {
		joinK = make([]float64, len(segs)-1)
		for i := 1; i < len(segs); i++ {
			prev, cur := segs[i-1], segs[i]
			dot := prev.tx*cur.tx + prev.ty*cur.ty + prev.tz*cur.tz
			dot = math.Max(-1, math.Min(1, dot))
			joinK[i-1] = pr.radius * math.Max(0, (1-dot)*0.5)
		}
	}

	var cur *ir.Node
	lastIdx := len(segs) - 1
	for idx, seg := range segs {
		n, b, ok := localFrame(seg.tx, seg.ty, seg.tz)
		if !ok {
			continue
		}
		px, py, qt := segmentLocal(seg, n, b)

		var segSDF *ir.Node
		if pr.kind == profileCircle && useRoundJoins && idx != 0 && idx != lastIdx {
			qlen := ir.Length(ir.Vec3(px, py, qt))
			segSDF = ir.Sub(qlen, ir.Const(pr.radius))
		} else {
			profileD := pr.sdf(px, py)
			segSDF = ir.Max(profileD, ir.Abs(qt))
		}

		if cur == nil {
			cur = segSDF
			continue
		}
		if useRoundJoins {
			k := 0.0
			if idx-1 < len(joinK) {
				k = joinK[idx-1]
			}
			cur = ir.SmoothMin(cur, segSDF, k)
		} else {
			cur = ir.Min(cur, segSDF)
		}
	}
	return cur, nil
}

func lowerSweepHelix(pr profile, helixCall Call) (*ir.Node, error) {
	radius, pitch, turns, err := extractHelixParams(helixCall)
	if err != nil {
		return nil, err
	}
	h := pitch / twoPi
	totalAngle := twoPi * math.Max(turns, 0)

	p := ir.Var()
	px, py, pz := ir.VecX(p), ir.VecY(p), ir.VecZ(p)

	angle := ir.Atan2(pz, px)
	angleDiv := ir.Mul(angle, ir.Const(1/twoPi))
	angleMod := ir.Sub(angle, ir.Mul(ir.Const(twoPi), ir.Floor(angleDiv)))

	yOverH := ir.Const(0)
	if h != 0 {
		yOverH = ir.Mul(py, ir.Const(1/h))
	}
	kNum := ir.Sub(yOverH, angleMod)
	kDiv := ir.Mul(kNum, ir.Const(1/twoPi))
	k := ir.Floor(ir.Add(kDiv, ir.Const(0.5)))

	t := ir.Add(angleMod, ir.Mul(ir.Const(twoPi), k))
	if totalAngle > 0 {
		t = ir.Min(ir.Max(t, ir.Const(0)), ir.Const(totalAngle))
	}

	sinT, cosT := ir.Sin(t), ir.Cos(t)
	hx := ir.Mul(ir.Const(radius), cosT)
	hz := ir.Mul(ir.Const(radius), sinT)
	hy := ir.Mul(ir.Const(h), t)
	helixPos := ir.Vec3(hx, hy, hz)
	q := ir.VecSub(p, helixPos)

	var d *ir.Node
	if pr.kind == profileCircle {
		d = ir.Sub(ir.Length(q), ir.Const(pr.radius))
	} else {
		tlen := math.Hypot(radius, h)
		invTlen := 0.0
		if tlen > 0 {
			invTlen = 1 / tlen
		}
		nx, ny, nz := cosT, ir.Const(0), sinT
		tx := ir.Mul(ir.Const(-radius*invTlen), sinT)
		ty := ir.Const(h * invTlen)
		tz := ir.Mul(ir.Const(radius*invTlen), cosT)

		bx := ir.Mul(ty, nz)
		by := ir.Sub(ir.Mul(tz, nx), ir.Mul(tx, nz))
		bz := ir.Mul(ir.Neg(ty), nx)

		qx, qy, qz := ir.VecX(q), ir.VecY(q), ir.VecZ(q)
		lpx := dot3(qx, qy, qz, nx, ny, nz)
		lpy := dot3(qx, qy, qz, bx, by, bz)
		lqt := dot3(qx, qy, qz, tx, ty, tz)

		profileD := pr.sdf(lpx, lpy)
		d = ir.Max(profileD, ir.Abs(lqt))
	}

	if totalAngle > 0 {
		dCap := ir.Max(ir.Neg(py), ir.Sub(py, ir.Const(h*totalAngle)))
		d = ir.Max(d, dCap)
	}
	return d, nil
}

// --- blend2D ----------------------------------------------------------

func lowerBlend2D(c Call) (*ir.Node, error) {
	if len(c.Args) != 3 {
		return nil, newLoweringError("blend2D expects 3 args: profile1, profile2, path")
	}
	pr1, err := extractProfile(c.Args[0])
	if err != nil {
		return nil, err
	}
	pr2, err := extractProfile(c.Args[1])
	if err != nil {
		return nil, err
	}
	path, err := extractPath(c.Args[2])
	if err != nil {
		return nil, err
	}
	if len(path) < 2 {
		return nil, newLoweringError("blend2D path must have at least 2 points")
	}

	type blendSeg struct {
		pathSegment
		cumLen float64
	}
	var segs []blendSeg
	totalLen := 0.0
	for i := 0; i < len(path)-1; i++ {
		a, b := path[i], path[i+1]
		abx, aby, abz := b.X-a.X, b.Y-a.Y, b.Z-a.Z
		segLen := math.Sqrt(abx*abx + aby*aby + abz*abz)
		if segLen == 0 {
			continue
		}
		segs = append(segs, blendSeg{
			pathSegment: pathSegment{
				a: a, b: b,
				ab:   point3{X: abx, Y: aby, Z: abz},
				len2: segLen * segLen,
				tx:   abx / segLen, ty: aby / segLen, tz: abz / segLen,
			},
			cumLen: totalLen,
		})
		totalLen += segLen
	}
	if len(segs) == 0 {
		return nil, newLoweringError("blend2D path has no valid segments")
	}
	if totalLen == 0 {
		return nil, newLoweringError("blend2D path has zero length")
	}
	invTotalLen := 1 / totalLen

	var cur *ir.Node
	for _, seg := range segs {
		n, b, ok := localFrame(seg.tx, seg.ty, seg.tz)
		if !ok {
			continue
		}
		segLen := math.Sqrt(seg.len2)
		px, py, qt := segmentLocal(seg.pathSegment, n, b)

		p := ir.Var()
		aVec := ir.Vec3(ir.Const(seg.a.X), ir.Const(seg.a.Y), ir.Const(seg.a.Z))
		pa := ir.VecSub(p, aVec)
		dotPaAb := dot3Const(pa, seg.ab.X, seg.ab.Y, seg.ab.Z)
		tSegClamped := clamp01(ir.Mul(dotPaAb, ir.Const(1/seg.len2)))
		tOffset := ir.Mul(tSegClamped, ir.Const(segLen))
		tGlobal := ir.Mul(ir.Add(ir.Const(seg.cumLen), tOffset), ir.Const(invTotalLen))

		sdf1 := pr1.sdf(px, py)
		sdf2 := pr2.sdf(px, py)
		blended := blendSDF(sdf1, sdf2, tGlobal)
		segSDF := ir.Max(blended, ir.Abs(qt))

		if cur == nil {
			cur = segSDF
		} else {
			cur = ir.Min(cur, segSDF)
		}
	}
	if cur == nil {
		return nil, newLoweringError("blend2D path has no valid segments")
	}
	return cur, nil
}
