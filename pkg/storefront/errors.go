// Copyright (c) 2026 Minimart. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storefront

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind classifies a client-side failure so callers can branch on the
// failure mode without string matching.
type Kind string

const (
	// KindTimeout marks a request that exceeded the client's deadline.
	KindTimeout Kind = "timeout"
	// KindNetwork marks a transport-level failure (DNS, refused connection).
	KindNetwork Kind = "network"
	// KindAPI marks a well-formed error response from the server.
	KindAPI Kind = "api"
	// KindDecode marks a response body the client could not parse.
	KindDecode Kind = "decode"
)

// Error is the canonical error type returned by the storefront client.
//
// For KindAPI errors, Status and Code carry the server's HTTP status and
// machine-readable error code; Message carries the server's error text.
type Error struct {
	Kind    Kind
	Message string
	Code    string
	Status  int
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("storefront: %s (%d %s)", e.Message, e.Status, e.Code)
	}
	return "storefront: " + e.Message
}

// Unwrap exposes the underlying cause for [errors.Is] / [errors.As].
func (e *Error) Unwrap() error { return e.Err }

// IsTimeout reports whether err is a storefront timeout error.
func IsTimeout(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Kind == KindTimeout
}

// APIStatus returns the server HTTP status carried by err, or 0 when err
// is not a server-reported API error.
func APIStatus(err error) int {
	var se *Error
	if errors.As(err, &se) && se.Kind == KindAPI {
		return se.Status
	}
	return 0
}

// classifyTransport converts a transport error from http.Client.Do into a
// storefront [Error], distinguishing deadline expiry from other failures.
func classifyTransport(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Message: "request deadline exceeded", Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindTimeout, Message: "request deadline exceeded", Err: err}
	}

	return &Error{Kind: KindNetwork, Message: "request failed", Err: err}
}
