package condition

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// knownEngines maps lowercase engine identifiers to their canonical names.
var knownEngines = map[string]string{
	"ie": "IE",
}

// CanonicalEngine returns the canonical name of a legacy engine identifier.
// Matching is case-insensitive.
func CanonicalEngine(name string) (string, bool) {
	canonical, ok := knownEngines[strings.ToLower(strings.TrimSpace(name))]
	return canonical, ok
}

// Environment describes which legacy engines, and which of their versions,
// a generated project must support. An engine that is absent is not
// supported at all. The zero value supports no legacy engines.
//
// Environment is immutable once constructed and safe to share across
// goroutines.
type Environment struct {
	engines map[string]*semver.Version
}

// NewEnvironment builds an Environment from engine → version strings.
// Versions are parsed leniently ("7", "7.0" and "v7" are all accepted).
func NewEnvironment(versions map[string]string) (Environment, error) {
	engines := make(map[string]*semver.Version, len(versions))
	for name, raw := range versions {
		canonical, ok := CanonicalEngine(name)
		if !ok {
			return Environment{}, fmt.Errorf("unknown legacy engine %q", name)
		}
		v, err := parseVersion(raw)
		if err != nil {
			return Environment{}, fmt.Errorf("parsing %s version %q: %w", canonical, raw, err)
		}
		engines[canonical] = v
	}
	return Environment{engines: engines}, nil
}

// ParseEnvironment builds an Environment from ENGINE=VERSION pairs such as
// "IE=7". Later pairs for the same engine replace earlier ones. Empty
// entries are ignored.
func ParseEnvironment(pairs []string) (Environment, error) {
	versions := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, version, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(version) == "" {
			return Environment{}, fmt.Errorf("invalid target %q: expected ENGINE=VERSION", pair)
		}
		canonical, known := CanonicalEngine(name)
		if !known {
			return Environment{}, fmt.Errorf("invalid target %q: unknown legacy engine %q", pair, name)
		}
		versions[canonical] = strings.TrimSpace(version)
	}
	return NewEnvironment(versions)
}

// Version returns the targeted version of engine, if the engine is supported.
func (e Environment) Version(engine string) (*semver.Version, bool) {
	canonical, ok := CanonicalEngine(engine)
	if !ok {
		return nil, false
	}
	v, ok := e.engines[canonical]
	return v, ok
}

// Engines returns the supported engine names in sorted order.
func (e Environment) Engines() []string {
	names := make([]string, 0, len(e.engines))
	for name := range e.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String renders the environment as sorted ENGINE=VERSION pairs, or "modern"
// when no legacy engine is targeted.
func (e Environment) String() string {
	if len(e.engines) == 0 {
		return "modern"
	}
	parts := make([]string, 0, len(e.engines))
	for _, name := range e.Engines() {
		parts = append(parts, name+"="+e.engines[name].String())
	}
	return strings.Join(parts, ",")
}

// parseVersion strips a leading "v" and parses the version string.
func parseVersion(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")
	return semver.NewVersion(version)
}
