package common

import "time"

// AuthTokenHeaderName is the HTTP header carrying the signed access token on
// every protected request.
const AuthTokenHeaderName = "x-auth-token"

// TokenValidityDuration is the lifetime of an issued access token.
const TokenValidityDuration = 5 * 24 * time.Hour
