// Package ir defines the typed intermediate representation the DSL
// front end lowers to, and the direct evaluator that walks it.
//
// The IR is a small closed algebra over two types, f32 and vec3, with
// a single free variable, Var, standing for the query point p. Every
// node carries its own type tag so downstream passes (the evaluator,
// the GLSL emitter) can dispatch without re-deriving types. Nodes are
// immutable after construction but may be referenced by more than one
// parent (see Node), and Substitute rewrites an expression by
// producing a new one rather than mutating in place.
//
// # Structure
//
// This mirrors naga's own separation of concerns: a Module groups
// Types/Functions for a full shader IR, ours groups nothing because
// there is exactly one expression tree per compiled program and
// exactly one free variable in it. Where naga needs an arena of
// handles to let subexpressions share storage, this IR does not
// need one — hygienic substitution from a single binding site is
// just a recursive tree rewrite (see Substitute).
package ir
