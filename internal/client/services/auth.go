// Package services contains application services for the devconnector CLI.
// This file defines the session service: register, login, logout and the
// current-user lookup.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/devconnector/internal/client/client"
	"github.com/dmitrijs2005/devconnector/internal/client/models"
	"github.com/dmitrijs2005/devconnector/internal/common"
)

// ErrNotLoggedIn is returned by calls that need a session when none exists.
var ErrNotLoggedIn = errors.New("not logged in")

// AuthService keeps the access token for the session. Tokens are not stored
// on disk; the CLI asks for credentials on every start.
type AuthService interface {
	Register(ctx context.Context, name, email string, password []byte) error
	Login(ctx context.Context, email string, password []byte) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*models.User, error)
	LoggedIn() bool
	Ping(ctx context.Context) error
}

type authService struct {
	client client.Client

	mu       sync.Mutex
	loggedIn bool
}

func NewAuthService(c client.Client) AuthService {
	return &authService{client: c}
}

// Register creates the account and starts a session with the returned token.
func (a *authService) Register(ctx context.Context, name, email string, password []byte) error {
	token, err := a.client.Register(ctx, name, common.NormalizeEmail(email), password)
	if err != nil {
		return err
	}
	a.start(token)
	return nil
}

func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	token, err := a.client.Login(ctx, common.NormalizeEmail(email), password)
	if err != nil {
		return err
	}
	a.start(token)
	return nil
}

func (a *authService) start(token string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.client.SetToken(token)
	a.loggedIn = true
}

// Logout drops the token locally. The server keeps no session state.
func (a *authService) Logout(context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.client.SetToken("")
	a.loggedIn = false
	return nil
}

func (a *authService) LoggedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loggedIn
}

func (a *authService) Me(ctx context.Context) (*models.User, error) {
	if !a.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	u, err := a.client.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting current user: %w", err)
	}
	return u, nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
