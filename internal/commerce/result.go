package commerce

import (
	"context"
	"errors"
	"net/http"
)

// CodeNotFound is the error tag returned for lookups that miss.
const CodeNotFound = "not-found"

// ErrNotFound matches every not-found APIError with errors.Is.
var ErrNotFound = errors.New("not found")

// placeholderURL is the request URL reported in every Result.
const placeholderURL = "https://example.com"

// APIError is the error half of a Result. It is also the Go error returned
// by lookups called WithThrowOnError.
type APIError struct {
	Code string `json:"error"`
}

func (e *APIError) Error() string {
	return e.Code
}

func (e *APIError) Unwrap() error {
	if e.Code == CodeNotFound {
		return ErrNotFound
	}
	return nil
}

// Result is the envelope every operation answers with. Exactly one of Data and Error is set.
// Request and Response only mirror the shape of an HTTP client result and carry no content.
type Result[T any] struct {
	Data     *T
	Error    *APIError
	Request  *http.Request
	Response *http.Response
}

// OK reports whether the result carries data.
func (r *Result[T]) OK() bool {
	return r != nil && r.Error == nil && r.Data != nil
}

func success[T any](ctx context.Context, data T) *Result[T] {
	req, resp := placeholders(ctx)
	return &Result[T]{Data: &data, Request: req, Response: resp}
}

func failure[T any](ctx context.Context, apiErr *APIError) *Result[T] {
	req, resp := placeholders(ctx)
	return &Result[T]{Error: apiErr, Request: req, Response: resp}
}

// notFound reports a missed lookup on the channel the caller selected.
func notFound[T any](ctx context.Context, co callOptions) (*Result[T], error) {
	apiErr := &APIError{Code: CodeNotFound}
	if co.throwOnError {
		return nil, apiErr
	}
	return failure[T](ctx, apiErr), nil
}

func placeholders(ctx context.Context) (*http.Request, *http.Response) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, placeholderURL, nil)
	if err != nil {
		// placeholderURL is a constant that always parses
		panic(err)
	}
	resp := &http.Response{
		Status:     "200 OK",
		StatusCode: http.StatusOK,
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     http.Header{},
		Body:       http.NoBody,
		Request:    req,
	}
	return req, resp
}
