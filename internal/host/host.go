package host

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rwdkit/kickstart/internal/textfn"
)

// Mode identifies a registration strategy.
type Mode string

const (
	ModeFramework Mode = "framework"
	ModeLoadPath  Mode = "load-path"
)

// ErrUnknownMode is returned for a registration mode that is not supported.
var ErrUnknownMode = errors.New("unknown registration mode")

// AllModes returns all supported registration modes.
func AllModes() []Mode {
	return []Mode{ModeFramework, ModeLoadPath}
}

// ParseMode converts a string to a Mode. An empty string selects framework
// mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ModeFramework):
		return ModeFramework, nil
	case string(ModeLoadPath), "loadpath", "load_path":
		return ModeLoadPath, nil
	default:
		return "", fmt.Errorf("%w %q (want one of %s, %s)", ErrUnknownMode, s, ModeFramework, ModeLoadPath)
	}
}

// LoadPathVar is the variable name used when rendering load paths for a shell.
const LoadPathVar = "SASS_PATH"

// Environment is the explicit registration context handed to a Registrar.
// It records registered frameworks, the ordered load-path list and the text
// function library available to stylesheets. It is safe for concurrent use.
type Environment struct {
	mu         sync.Mutex
	frameworks map[string]string
	loadPaths  []string

	Functions *textfn.Library
}

// NewEnvironment returns an empty Environment using functions as its text
// function library. A nil library is replaced with a default one.
func NewEnvironment(functions *textfn.Library) *Environment {
	if functions == nil {
		functions = textfn.New()
	}
	return &Environment{
		frameworks: make(map[string]string),
		Functions:  functions,
	}
}

// RegisterFramework records dir under name. Re-registering a name replaces
// its directory.
func (e *Environment) RegisterFramework(name, dir string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frameworks[name] = dir
}

// AppendLoadPath adds dir to the end of the load-path list. Empty entries
// and entries already present are ignored.
func (e *Environment) AppendLoadPath(dir string) {
	if dir == "" {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, existing := range e.loadPaths {
		if existing == dir {
			return
		}
	}
	e.loadPaths = append(e.loadPaths, dir)
}

// Framework returns the directory registered under name.
func (e *Environment) Framework(name string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	dir, ok := e.frameworks[name]
	return dir, ok
}

// Frameworks returns the registered framework names in sorted order.
func (e *Environment) Frameworks() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	names := make([]string, 0, len(e.frameworks))
	for name := range e.frameworks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadPaths returns a copy of the load-path list in registration order.
func (e *Environment) LoadPaths() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.loadPaths...)
}

// LoadPathValue joins the load paths with the platform list separator, the
// form expected in a SASS_PATH style variable.
func (e *Environment) LoadPathValue() string {
	return strings.Join(e.LoadPaths(), string(os.PathListSeparator))
}

// Registrar publishes one bundle base directory.
type Registrar interface {
	Mode() Mode
	RegisterSearchPath(base string) error
}

// NewRegistrar returns the Registrar for mode. framework names the entry
// used in framework mode.
func NewRegistrar(mode Mode, framework string, env *Environment) (Registrar, error) {
	if env == nil {
		return nil, errors.New("registration environment is required")
	}
	switch mode {
	case ModeFramework:
		if framework == "" {
			return nil, errors.New("framework mode requires a framework name")
		}
		return &frameworkRegistrar{name: framework, env: env}, nil
	case ModeLoadPath:
		return &loadPathRegistrar{env: env}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownMode, mode)
	}
}

type frameworkRegistrar struct {
	name string
	env  *Environment
}

func (r *frameworkRegistrar) Mode() Mode { return ModeFramework }

func (r *frameworkRegistrar) RegisterSearchPath(base string) error {
	if base == "" {
		return errors.New("registering framework: empty base directory")
	}
	r.env.RegisterFramework(r.name, filepath.Clean(base))
	return nil
}

type loadPathRegistrar struct {
	env *Environment
}

func (r *loadPathRegistrar) Mode() Mode { return ModeLoadPath }

func (r *loadPathRegistrar) RegisterSearchPath(base string) error {
	if base == "" {
		return errors.New("registering load path: empty base directory")
	}
	r.env.AppendLoadPath(filepath.Join(base, "stylesheets"))
	return nil
}
