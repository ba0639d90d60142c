// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ErrorResponse is the JSON envelope written for every error produced by the
// bootstrap layer itself (unmatched routes, rejected bodies, forwarded
// controller errors).
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes a single failed request.
type ErrorBody struct {
	// Status mirrors the HTTP status code of the response.
	Status int `json:"status"`

	// URL is the reconstructed absolute request URL (scheme, host and
	// original path). Omitted for errors that are not tied to routing.
	URL string `json:"url,omitempty"`

	// Method is the HTTP method of the failed request.
	Method string `json:"method,omitempty"`

	// Message is a human-readable description of the failure.
	Message string `json:"message"`
}

// NewErrorResponse builds an [ErrorResponse] with only status and message set.
func NewErrorResponse(status int, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorBody{Status: status, Message: message}}
}
