// Package textfn implements the string helpers exposed to the stylesheet
// preprocessing layer under their advertised names, stringReplace and
// extractLeadingInteger.
//
// The package-level functions are pure. Library wraps them with a name
// registry and an optional strict mode that reports lossy numeric coercion.
package textfn
