package query

import "errors"

var (
	ErrProtectedField      = errors.New("query: filter on protected field")
	ErrInvalidSearchField  = errors.New("query: invalid search field path")
	ErrNoSearchFields      = errors.New("query: search term given but no searchable fields")
	ErrInvalidSortField    = errors.New("query: invalid sort field")
	ErrInvalidPageParam    = errors.New("query: invalid page parameter")
	ErrInvalidLimitParam   = errors.New("query: invalid limit parameter")
	ErrFieldExclusion      = errors.New("query: field exclusion syntax is not supported")
	ErrInvalidFieldName    = errors.New("query: invalid field name in projection")
	ErrUnknownColumn       = errors.New("query: no column mapping for field")
	ErrNilSource           = errors.New("query: datasource is required")
	ErrFailedToFetchData   = errors.New("query: failed to fetch data")
	ErrFailedToCountTotal  = errors.New("query: failed to count total")
	ErrFailedToDecodeModel = errors.New("query: failed to decode model")
)

// validationErrs are the eager-validation failures produced while composing
// a plan from request parameters, as opposed to execution failures.
var validationErrs = []error{
	ErrProtectedField,
	ErrInvalidSearchField,
	ErrNoSearchFields,
	ErrInvalidSortField,
	ErrInvalidPageParam,
	ErrInvalidLimitParam,
	ErrFieldExclusion,
	ErrInvalidFieldName,
	ErrUnknownColumn,
}

// IsValidationError reports whether err stems from malformed request
// parameters. HTTP layers map these to 400 rather than 500.
func IsValidationError(err error) bool {
	for _, sentinel := range validationErrs {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
