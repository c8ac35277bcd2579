package manifest

import "fmt"

// ParseKind returns the canonical kind for s, accepting aliases such as
// "javascript" and "css". Kinds are lower-case and matched exactly, as the
// manifest schema does. An empty string is generic.
func ParseKind(s string) (Kind, error) {
	if s == "" {
		return KindGeneric, nil
	}
	k, ok := kindAliases[s]
	if !ok {
		return "", fmt.Errorf("unknown file kind %q", s)
	}
	return k, nil
}

// IsValid reports whether k is a canonical kind.
func (k Kind) IsValid() bool {
	for _, v := range ValidKinds {
		if k == v {
			return true
		}
	}
	return false
}

// DiscoverKind returns the kind assigned to files discovered under category.
func DiscoverKind(category string) (Kind, bool) {
	k, ok := discoverKinds[category]
	return k, ok
}
