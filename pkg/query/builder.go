package query

import (
	"fmt"
	"strconv"
	"strings"
)

// Pagination defaults. Out-of-range page/limit values clamp to these instead
// of erroring so that hand-edited URLs still render a first page.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// DefaultSort orders newest records first when the request carries no sort
// parameter.
const DefaultSort = "-createdAt"

// SortField is one ordering criterion. Fields earlier in the sort list take
// tie-break priority over later ones.
type SortField struct {
	Field string
	Desc  bool
}

// Args is the fully composed query plan handed to a Source. It is also the
// escape hatch for callers that need bespoke includes or projections beyond
// the builder's chain.
type Args struct {
	Where   Where
	Sort    []SortField
	Skip    int
	Take    int
	Select  []string
	Include map[string]any
}

// Builder incrementally composes a query plan from request parameters.
// It accumulates state per instance and must not be shared across requests.
type Builder struct {
	params    Params
	where     Where
	protected map[string]struct{}
	sort      []SortField
	page      int
	limit     int
	paginated bool
	selected  []string
	include   map[string]any
	serial    bool
	maxLimit  int
	err       error
}

// Option configures a Builder at construction time.
type Option func(*Builder)

// WithMaxLimit overrides the page-size cap.
func WithMaxLimit(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.maxLimit = n
		}
	}
}

// WithSerialized disables the concurrent find+count pair in Execute, issuing
// the two calls sequentially against the same Where. Use when a caller needs
// the count to observe every write the find observed.
func WithSerialized() Option {
	return func(b *Builder) { b.serial = true }
}

// NewBuilder creates a builder with no trusted base conditions.
// Prefer NewTenantScoped for any tenant-owned collection.
func NewBuilder(params Params, opts ...Option) *Builder {
	b := &Builder{
		params:    params,
		where:     Where{Conds: make(map[string]any)},
		protected: make(map[string]struct{}),
		maxLimit:  MaxLimit,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewTenantScoped creates a builder whose tenant predicate is fixed at
// construction. The tenant field becomes protected: request parameters naming
// it fail with ErrProtectedField rather than overriding the trusted value.
func NewTenantScoped(field string, value any, params Params, opts ...Option) *Builder {
	b := NewBuilder(params, opts...)
	return b.BaseWhere(map[string]any{field: value})
}

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// Err returns the first validation error recorded by the chain, if any.
func (b *Builder) Err() error {
	return b.err
}

// BaseWhere merges trusted conditions into the plan and marks their fields
// protected from user-supplied filters. Values may be literals or Cond.
func (b *Builder) BaseWhere(conds map[string]any) *Builder {
	for field, value := range conds {
		b.where.Conds[field] = value
		b.protected[field] = struct{}{}
	}
	return b
}

// Search adds a case-insensitive substring match over the given fields when
// the request carries a search term. Fields may use dot notation for nested
// documents. A row matches when any field contains the term. Only one search
// per builder: a second call replaces the previous branches.
func (b *Builder) Search(fields ...string) *Builder {
	term := b.params.SearchTerm()
	if term == "" {
		return b
	}
	if len(fields) == 0 {
		return b.fail(ErrNoSearchFields)
	}

	branches := make([]map[string]any, 0, len(fields))
	for _, field := range fields {
		path, err := ParsePath(field)
		if err != nil {
			return b.fail(fmt.Errorf("%w: %q", ErrInvalidSearchField, field))
		}
		if _, ok := b.protected[path.String()]; ok {
			return b.fail(fmt.Errorf("%w: %q", ErrProtectedField, field))
		}
		branches = append(branches, map[string]any{path.String(): Contains{Value: term}})
	}
	b.where.Or = branches
	return b
}

// Filter turns every non-reserved parameter into a field condition. Prefixed
// values (">=", "<=", ">", "<") become comparison conditions with numeric
// operand coercion; bare "true"/"false" become booleans; everything else is an
// equality match on the raw string. Parameters naming a protected field fail
// the chain.
func (b *Builder) Filter() *Builder {
	for key, raw := range b.params {
		if IsReserved(key) {
			continue
		}
		if _, ok := b.protected[key]; ok {
			return b.fail(fmt.Errorf("%w: %q", ErrProtectedField, key))
		}
		b.where.Conds[key] = parseValue(raw)
	}
	return b
}

// Sort parses the comma-separated sort parameter ("-createdAt,name") into
// ordered criteria, "-" prefix meaning descending. Defaults to newest-first
// when the parameter is absent.
func (b *Builder) Sort() *Builder {
	spec := b.params[ParamSort]
	if spec == "" {
		spec = DefaultSort
	}

	parts := strings.Split(spec, ",")
	sort := make([]SortField, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		desc := strings.HasPrefix(part, "-")
		field := strings.TrimPrefix(part, "-")
		if field == "" {
			return b.fail(fmt.Errorf("%w: %q", ErrInvalidSortField, part))
		}
		sort = append(sort, SortField{Field: field, Desc: desc})
	}
	b.sort = sort
	return b
}

// Paginate reads page and limit parameters, clamping out-of-range values to
// the defaults and capping limit at the builder's maximum. Non-numeric values
// fail the chain.
func (b *Builder) Paginate() *Builder {
	page := DefaultPage
	if raw, ok := b.params[ParamPage]; ok && raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return b.fail(fmt.Errorf("%w: %q", ErrInvalidPageParam, raw))
		}
		if n >= 1 {
			page = n
		}
	}

	limit := DefaultLimit
	if raw, ok := b.params[ParamLimit]; ok && raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return b.fail(fmt.Errorf("%w: %q", ErrInvalidLimitParam, raw))
		}
		if n >= 1 {
			limit = n
		}
	}
	if limit > b.maxLimit {
		limit = b.maxLimit
	}

	b.page = page
	b.limit = limit
	b.paginated = true
	return b
}

// Fields parses the comma-separated projection parameter. Exclusion syntax
// ("-field") is rejected with ErrFieldExclusion: a document projection cannot
// express "everything except" without a known field list, and silently
// ignoring the minus sign hides the caller's intent.
func (b *Builder) Fields() *Builder {
	raw := b.params[ParamFields]
	if raw == "" {
		return b
	}

	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		if strings.HasPrefix(field, "-") {
			return b.fail(fmt.Errorf("%w: %q", ErrFieldExclusion, field))
		}
		if _, err := ParsePath(field); err != nil {
			return b.fail(fmt.Errorf("%w: %q", ErrInvalidFieldName, field))
		}
		b.selected = append(b.selected, field)
	}
	return b
}

// Include merges relation-include directives, last writer winning on key
// collision. Sources that cannot express relation loading ignore it; the
// directives stay available through Args for bespoke callers.
func (b *Builder) Include(includes map[string]any) *Builder {
	if b.include == nil {
		b.include = make(map[string]any, len(includes))
	}
	for key, value := range includes {
		b.include[key] = value
	}
	return b
}

// Where returns a copy of the composed conditions, or the chain's validation
// error.
func (b *Builder) Where() (Where, error) {
	if b.err != nil {
		return Where{}, b.err
	}
	return b.where.clone(), nil
}

// Args returns the full composed plan. Pagination defaults apply even when
// Paginate was not called so that a plan never fetches unbounded result sets;
// callers that genuinely need everything should page through it.
func (b *Builder) Args() (Args, error) {
	if b.err != nil {
		return Args{}, b.err
	}

	page, limit := b.page, b.limit
	if !b.paginated {
		page, limit = DefaultPage, DefaultLimit
	}

	return Args{
		Where:   b.where.clone(),
		Sort:    b.sort,
		Skip:    (page - 1) * limit,
		Take:    limit,
		Select:  b.selected,
		Include: b.include,
	}, nil
}

func (b *Builder) currentPage() int {
	if b.paginated {
		return b.page
	}
	return DefaultPage
}
