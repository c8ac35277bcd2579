package textfn

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"go.uber.org/zap"
)

// Advertised function names.
const (
	NameStringReplace         = "stringReplace"
	NameExtractLeadingInteger = "extractLeadingInteger"

	// legacyNthName is the name the nth helper was first published under.
	legacyNthName = "children-of-ie-nth"
)

// ErrUnknownFunction is returned by Lookup for names that are not registered.
var ErrUnknownFunction = errors.New("unknown function")

// Func is the calling convention used by the host preprocessing layer.
type Func func(args ...string) (string, error)

// Library exposes the text functions by name. It is safe for concurrent use.
type Library struct {
	strict bool
	logger *zap.Logger

	mu       sync.Mutex
	warnings []string
}

// Option configures a Library.
type Option func(*Library)

// WithStrict enables warnings when extractLeadingInteger coerces a token
// that is not entirely numeric.
func WithStrict(strict bool) Option {
	return func(l *Library) { l.strict = strict }
}

// WithLogger sets the logger strict-mode warnings are written to.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Library) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a Library.
func New(opts ...Option) *Library {
	l := &Library{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// StringReplace calls the package-level StringReplace.
func (l *Library) StringReplace(needle, replacement, haystack string) (string, error) {
	return StringReplace(needle, replacement, haystack)
}

// ExtractLeadingInteger calls the package-level ExtractLeadingInteger. In
// strict mode it records a warning when the token was not a clean integer
// once "n" was removed.
func (l *Library) ExtractLeadingInteger(token string) int {
	n, exact := extractLeadingInteger(token)
	if l.strict && !exact {
		msg := fmt.Sprintf("%s: %q is not an integer after removing %q; using %d", NameExtractLeadingInteger, token, placeholder, n)
		l.logger.Warn("lossy numeric coercion",
			zap.String("function", NameExtractLeadingInteger),
			zap.String("token", token),
			zap.Int("result", n))
		l.mu.Lock()
		l.warnings = append(l.warnings, msg)
		l.mu.Unlock()
	}
	return n
}

// Warnings returns the strict-mode warnings recorded so far.
func (l *Library) Warnings() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.warnings))
	copy(out, l.warnings)
	return out
}

// Lookup returns the function registered under name.
func (l *Library) Lookup(name string) (Func, error) {
	switch name {
	case NameStringReplace:
		return l.callStringReplace, nil
	case NameExtractLeadingInteger, legacyNthName:
		return l.callExtractLeadingInteger, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFunction, name)
	}
}

// Names returns the advertised function names in sorted order.
func (l *Library) Names() []string {
	names := []string{NameStringReplace, NameExtractLeadingInteger}
	sort.Strings(names)
	return names
}

func (l *Library) callStringReplace(args ...string) (string, error) {
	if len(args) != 3 {
		return "", &InvalidArgumentError{
			Func:   NameStringReplace,
			Arg:    "count",
			Reason: fmt.Sprintf("want 3 arguments (needle, replacement, haystack), got %d", len(args)),
		}
	}
	return l.StringReplace(args[0], args[1], args[2])
}

func (l *Library) callExtractLeadingInteger(args ...string) (string, error) {
	if len(args) != 1 {
		return "", &InvalidArgumentError{
			Func:   NameExtractLeadingInteger,
			Arg:    "count",
			Reason: fmt.Sprintf("want 1 argument (token), got %d", len(args)),
		}
	}
	return strconv.Itoa(l.ExtractLeadingInteger(args[0])), nil
}
