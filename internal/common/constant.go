// Package common contains shared constants and sentinel errors.
package common

const (
	// AuthorizationHeaderName carries bearer tokens in both directions: clients
	// send it, and the access gate sets it on responses when it rotates a token.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme prefixes tokens in AuthorizationHeaderName.
	BearerScheme = "Bearer"
)
