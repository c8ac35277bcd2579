// Package manifest parses and validates scaffold template manifests. A
// manifest is a YAML document listing the files of a template bundle in
// declaration order, each with a kind, optional media tag, optional
// legacy-engine condition and optional explicit destination. Manifests are
// validated against an embedded JSON Schema before use.
package manifest
