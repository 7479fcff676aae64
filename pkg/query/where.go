package query

import (
	"maps"
	"strconv"
	"strings"
)

// Op is a comparison operator applied to a filter value.
type Op string

const (
	OpGte Op = "gte"
	OpLte Op = "lte"
	OpGt  Op = "gt"
	OpLt  Op = "lt"
)

// Cond is an operator condition on a single field. Condition values are
// produced by the filter phase from prefixed parameters ("price=>=100")
// or supplied directly through BaseWhere.
type Cond struct {
	Op    Op
	Value any
}

// Contains is a case-insensitive substring condition produced by the search
// phase.
type Contains struct {
	Value string
}

// Where is the composed set of conditions a query plan executes with.
// Conds maps field paths (dot notation for nested documents) to either a
// literal equality value, a Cond or a Contains. Or holds the search branches:
// a row matches when all of Conds hold and, if Or is non-empty, at least one
// Or branch holds.
type Where struct {
	Conds map[string]any
	Or    []map[string]any
}

// IsZero reports whether no conditions have been composed.
func (w Where) IsZero() bool {
	return len(w.Conds) == 0 && len(w.Or) == 0
}

// clone deep-copies the condition maps so plans handed out by Where()/Args()
// cannot be mutated back into the builder.
func (w Where) clone() Where {
	out := Where{Conds: make(map[string]any, len(w.Conds))}
	maps.Copy(out.Conds, w.Conds)
	if len(w.Or) > 0 {
		out.Or = make([]map[string]any, len(w.Or))
		for i, branch := range w.Or {
			out.Or[i] = maps.Clone(branch)
		}
	}
	return out
}

// Path is a validated field path split into segments.
// "customer.fullName" becomes ["customer", "fullName"].
type Path []string

// ParsePath validates and splits a dot-notation field path.
// Empty segments ("a..b", trailing dots) are rejected.
func ParsePath(field string) (Path, error) {
	if field == "" {
		return nil, ErrInvalidSearchField
	}
	segments := strings.Split(field, ".")
	for _, seg := range segments {
		if seg == "" {
			return nil, ErrInvalidSearchField
		}
	}
	return Path(segments), nil
}

// String returns the canonical dot-notation form of the path.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// Root returns the first segment of the path.
func (p Path) Root() string {
	if len(p) == 0 {
		return ""
	}
	return p[0]
}

// parseValue interprets a raw filter parameter value. Prefixed comparison
// operators coerce numeric-looking operands to numbers; bare "true"/"false"
// become booleans; anything else stays a string. Unprefixed values are
// intentionally not number-coerced so that identifiers like "0012" keep their
// exact form in equality filters.
func parseValue(raw string) any {
	type prefix struct {
		token string
		op    Op
	}
	// Two-character prefixes first so ">=" is not read as ">" + "=100".
	prefixes := []prefix{
		{">=", OpGte},
		{"<=", OpLte},
		{">", OpGt},
		{"<", OpLt},
	}
	for _, p := range prefixes {
		if strings.HasPrefix(raw, p.token) {
			return Cond{Op: p.op, Value: parseOperand(raw[len(p.token):])}
		}
	}

	switch raw {
	case "true":
		return true
	case "false":
		return false
	}
	return raw
}

// parseOperand coerces a comparison operand to int64 or float64 when the
// text is numeric, falling back to the raw string (dates, lexicographic
// comparisons).
func parseOperand(raw string) any {
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}
