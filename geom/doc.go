// Package geom provides 2D polygon predicates used while lowering
// profile shapes (extrude, sweep, blend2D) to IR.
//
// A profile polygon must be simple (no non-adjacent edges cross) and
// convex before it can be turned into a half-space intersection SDF;
// this package checks both properties and normalizes accepted
// polygons to counter-clockwise winding.
package geom
