package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/devconnector/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// UserClaim is the only identity carried in a token.
type UserClaim struct {
	ID string `json:"id"`
}

// Claims is the token payload: { "user": { "id": ... }, "exp": ..., "iat": ... }.
type Claims struct {
	User UserClaim `json:"user"`
	jwt.RegisteredClaims
}

// Issuer signs access tokens with a server-held HMAC secret.
type Issuer struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

// NewIssuer fails with common.ErrMissingSecret when secret is empty, so an
// unsigned token can never be produced.
func NewIssuer(secret []byte, validity time.Duration) (*Issuer, error) {
	if len(secret) == 0 {
		return nil, common.ErrMissingSecret
	}
	if validity <= 0 {
		validity = common.TokenValidityDuration
	}
	return &Issuer{secret: secret, validity: validity, now: time.Now}, nil
}

// Issue returns a signed HS256 token for userID expiring after the
// configured validity.
func (i *Issuer) Issue(userID string) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		User: UserClaim{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.validity)),
		},
	})

	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// Status is the terminal state of verifying one request.
type Status int

const (
	// StatusMissing: no token header on the request.
	StatusMissing Status = iota
	// StatusInvalid: malformed, wrongly signed or expired token.
	StatusInvalid
	// StatusValid: the request carries a good token.
	StatusValid
	// StatusFailed: the verifier itself could not run.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusMissing:
		return "missing"
	case StatusInvalid:
		return "invalid"
	case StatusValid:
		return "valid"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of Verifier.Verify. UserID is set only for
// StatusValid; Err explains every other status.
type Outcome struct {
	Status Status
	UserID string
	Err    error
}

// Verifier checks tokens produced by an Issuer sharing the same secret.
type Verifier struct {
	secret []byte
	now    func() time.Time
}

func NewVerifier(secret []byte) (*Verifier, error) {
	if len(secret) == 0 {
		return nil, common.ErrMissingSecret
	}
	return &Verifier{secret: secret, now: time.Now}, nil
}

// Verify inspects the x-auth-token header and decides the request's fate.
// It depends on nothing but the headers, so it runs without a server.
func (v *Verifier) Verify(h http.Header) Outcome {
	token := strings.TrimSpace(h.Get(common.AuthTokenHeaderName))
	if token == "" {
		return Outcome{Status: StatusMissing, Err: common.ErrTokenMissing}
	}
	if v == nil || len(v.secret) == 0 {
		return Outcome{Status: StatusFailed, Err: common.ErrMissingSecret}
	}

	userID, err := v.GetUserIDFromToken(token)
	if err != nil {
		return Outcome{Status: StatusInvalid, Err: err}
	}
	return Outcome{Status: StatusValid, UserID: userID}
}

// GetUserIDFromToken validates signature, algorithm and expiry and returns
// the embedded user id. A token is expired from its exp second onwards.
func (v *Verifier) GetUserIDFromToken(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}
	if !v.now().Before(claims.ExpiresAt.Time) {
		return "", common.ErrTokenExpired
	}
	if claims.User.ID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.User.ID, nil
}
