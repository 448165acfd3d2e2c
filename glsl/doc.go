// Package glsl emits GLSL fragment-shader source from a compiled IR
// tree.
//
// The output is a single function, float sdf(vec3 p), suitable for a
// ray marcher: ≤ 0 inside the solid, > 0 outside. There is no common
// subexpression elimination — every IR node becomes its own inlined
// GLSL subexpression — so the output can be large for deeply nested
// programs; that tradeoff is the same one naga's own backends make in
// favor of a straightforward, provably-correct writer.
package glsl
