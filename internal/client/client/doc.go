// Package client talks to the devconnector HTTP API.
//
// Client is the transport-agnostic contract used by the CLI services;
// HTTPClient implements it over net/http with JSON bodies and attaches the
// access token in the x-auth-token header once SetToken has been called.
//
// Error handling: a transport failure wraps ErrUnavailable, a 401 wraps
// ErrUnauthorized, and any other non-2xx reply is returned as *APIError
// carrying the server's message. Match with errors.Is / errors.As.
package client
