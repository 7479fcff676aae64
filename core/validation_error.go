package core

import "strings"

// ValidationError maps field names to their validation failure messages.
// Rendered as 422 with per-field details in the JSON error envelope.
type ValidationError map[string][]string

// Error implements the error interface.
func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	var b strings.Builder
	b.WriteString("validation failed:")
	for field, msgs := range e {
		b.WriteString(" ")
		b.WriteString(field)
		b.WriteString("=")
		b.WriteString(strings.Join(msgs, ","))
	}
	return b.String()
}

// Add appends a message to a field's failure list.
func (e ValidationError) Add(field, message string) {
	e[field] = append(e[field], message)
}
