package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/devconnector/internal/client/client"
	"github.com/dmitrijs2005/devconnector/internal/client/config"
	"github.com/dmitrijs2005/devconnector/internal/client/services"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	postService services.PostService
	avatars     services.AvatarService
	userName    string
	reader      *bufio.Reader
	out         io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	return &App{
		config:      c,
		authService: services.NewAuthService(apiClient),
		postService: services.NewPostService(apiClient),
		avatars:     services.NewAvatarService(apiClient),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.authService.LoggedIn()
}

func (a *App) status() string {
	if a.userName == "" {
		return "offline"
	}
	return a.userName
}

func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to devconnector CLI (type 'help' for commands)")
	if err := a.authService.Ping(ctx); err != nil {
		printlnFn("Server is not reachable:", err)
	}
	runREPL(ctx, a, a.status, bufio.NewScanner(a.reader))
}
