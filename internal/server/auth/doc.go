// Package auth implements the authentication and authorization core of the
// API: bcrypt password hashing, issuing and verifying signed access tokens,
// the request-scoped identity, and the ownership guard applied before
// destructive mutations.
//
// Tokens are stateless. A token stays valid until it expires even if its
// user has been deleted, because verification trusts the signature and
// never consults the user store.
package auth
