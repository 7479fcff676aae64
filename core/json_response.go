package core

import (
	"encoding/json"
	"errors"
	"maps"
	"net/http"
)

// JSONBody is the JSON envelope: successful responses carry data plus
// optional meta (pagination etc.), failures carry only the error detail.
type JSONBody struct {
	Data  any          `json:"data,omitempty"`
	Meta  any          `json:"meta,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail carries the machine-readable error payload.
type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

type jsonResponse struct {
	status int
	body   JSONBody
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSON creates a 200 response with the given data.
func JSON(data any) Response {
	return jsonResponse{status: http.StatusOK, body: JSONBody{Data: data}}
}

// JSONWithMeta creates a 200 response with data and meta, used by list
// endpoints to attach pagination.
func JSONWithMeta(data, meta any) Response {
	return jsonResponse{status: http.StatusOK, body: JSONBody{Data: data, Meta: meta}}
}

// JSONStatus creates a response with a custom status code.
func JSONStatus(status int, data any) Response {
	return jsonResponse{status: status, body: JSONBody{Data: data}}
}

// JSONError renders an error in the envelope. ValidationError becomes 422
// with per-field details, HTTPError keeps its code and key, anything else
// is a 500 with the message suppressed.
func JSONError(err error) Response {
	status := http.StatusInternalServerError
	detail := &ErrorDetail{
		Code:    "internal_server_error",
		Message: http.StatusText(http.StatusInternalServerError),
	}

	var valErr ValidationError
	var httpErr HTTPError
	switch {
	case errors.As(err, &valErr):
		status = http.StatusUnprocessableEntity
		detail.Code = "validation_error"
		detail.Message = "validation failed"
		if len(valErr) > 0 {
			detail.Details = make(map[string][]string, len(valErr))
			maps.Copy(detail.Details, valErr)
		}
	case errors.As(err, &httpErr):
		status = httpErr.Code
		detail.Code = httpErr.Key
		detail.Message = http.StatusText(httpErr.Code)
	}

	return jsonResponse{status: status, body: JSONBody{Error: detail}}
}
