// Package api contains the transport layer for talking to the ordering
// backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) covering
//     authentication, profile, cart, favorites, orders, the public menu,
//     and the administrative endpoints.
//  2. A concrete REST/JSON implementation (see HTTPClient) that attaches a
//     bearer header when a token is supplied, tags every request with a
//     correlation id, and translates non-success statuses into StatusError
//     values carrying the server-supplied message.
//
// # Error Handling
//
// Authorization failures can be matched with errors.Is: a 401 response
// satisfies ErrUnauthorized and a 403 satisfies ErrForbidden. Transport
// failures wrap ErrUnavailable. Every operation issues exactly one request;
// retries and deadlines are left to the caller's context.
package api
