package condition

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Op is a comparison operator in a predicate.
type Op string

// Supported comparison operators.
const (
	OpLT  Op = "lt"
	OpLTE Op = "lte"
	OpEQ  Op = "eq"
	OpGT  Op = "gt"
	OpGTE Op = "gte"
)

var validOps = map[string]Op{
	"lt":  OpLT,
	"lte": OpLTE,
	"eq":  OpEQ,
	"gt":  OpGT,
	"gte": OpGTE,
}

// Predicate is a parsed condition: Op applied to the targeted version of
// Subject and an integer Bound. "lt IE 8" is {OpLT, "IE", 8}.
type Predicate struct {
	Op      Op
	Subject string
	Bound   int
	Raw     string
}

// InvalidConditionError reports a malformed or unrecognized condition string.
type InvalidConditionError struct {
	Condition string
	Reason    string
}

func (e *InvalidConditionError) Error() string {
	return fmt.Sprintf("invalid condition %q: %s", e.Condition, e.Reason)
}

// Parse parses a condition expression. The accepted forms are
// "<op> <engine> <version>" and "<engine> <version>", the latter meaning eq.
// An empty expression yields a nil predicate, which always matches.
func Parse(expr string) (*Predicate, error) {
	fields := strings.Fields(expr)
	if len(fields) == 0 {
		return nil, nil
	}

	var opToken, subject, bound string
	switch len(fields) {
	case 2:
		opToken, subject, bound = string(OpEQ), fields[0], fields[1]
	case 3:
		opToken, subject, bound = fields[0], fields[1], fields[2]
	default:
		return nil, &InvalidConditionError{Condition: expr, Reason: "expected \"<op> <engine> <version>\""}
	}

	op, ok := validOps[strings.ToLower(opToken)]
	if !ok {
		return nil, &InvalidConditionError{Condition: expr, Reason: fmt.Sprintf("unknown operator %q", opToken)}
	}

	canonical, ok := CanonicalEngine(subject)
	if !ok {
		return nil, &InvalidConditionError{Condition: expr, Reason: fmt.Sprintf("unrecognized engine %q", subject)}
	}

	n, err := strconv.Atoi(bound)
	if err != nil || n < 0 {
		return nil, &InvalidConditionError{Condition: expr, Reason: fmt.Sprintf("version bound %q is not a non-negative integer", bound)}
	}

	return &Predicate{Op: op, Subject: canonical, Bound: n, Raw: expr}, nil
}

// Evaluate reports whether env satisfies p. A nil predicate is always
// satisfied. A predicate over an engine the environment does not target is
// never satisfied.
func Evaluate(p *Predicate, env Environment) bool {
	if p == nil {
		return true
	}
	v, ok := env.Version(p.Subject)
	if !ok {
		return false
	}

	cmp := v.Compare(semver.New(uint64(p.Bound), 0, 0, "", ""))
	switch p.Op {
	case OpLT:
		return cmp < 0
	case OpLTE:
		return cmp <= 0
	case OpEQ:
		return cmp == 0
	case OpGT:
		return cmp > 0
	case OpGTE:
		return cmp >= 0
	default:
		return false
	}
}

// EvaluateString parses expr and evaluates it against env.
func EvaluateString(expr string, env Environment) (bool, error) {
	p, err := Parse(expr)
	if err != nil {
		return false, err
	}
	return Evaluate(p, env), nil
}

// String renders the predicate in canonical "<op> <engine> <version>" form.
func (p *Predicate) String() string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%s %s %d", p.Op, p.Subject, p.Bound)
}
