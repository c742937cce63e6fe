package testutil

import "net/http"

// WithBearer sets the Authorization header.
func WithBearer(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

// WithAcceptLanguage sets the Accept-Language header.
func WithAcceptLanguage(req *http.Request, value string) *http.Request {
	req.Header.Set("Accept-Language", value)
	return req
}
