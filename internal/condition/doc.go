// Package condition evaluates legacy-engine predicates such as "lt IE 8"
// against a caller-supplied target environment. Predicates gate whether a
// manifest declaration is included in a scaffold plan.
//
// Parsing is strict: an unknown operator, an unrecognized engine, or a
// malformed version bound is an authoring error reported as
// *InvalidConditionError. Evaluation is pure.
package condition
