// Package plan turns an ordered list of manifest declarations into a
// scaffold plan for one target environment. For each declaration in order
// it evaluates the condition, resolves the destination and rejects
// destination collisions. The first error aborts the build; a partial plan
// is never returned.
package plan
