package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/devconnector/internal/common"
	"github.com/dmitrijs2005/devconnector/internal/logging"
	"github.com/dmitrijs2005/devconnector/internal/server/auth"
	"github.com/dmitrijs2005/devconnector/internal/server/config"
	"github.com/dmitrijs2005/devconnector/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/devconnector/internal/server/services"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "http-test-secret"

type testAPI struct {
	t       *testing.T
	handler http.Handler
	issuer  *auth.Issuer
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = testSecret
	cfg.RequestTimeout = 5 * time.Second
	cfg.AuthRateLimit = 0
	return cfg
}

func newTestAPI(t *testing.T, cfg *config.Config) *testAPI {
	t.Helper()

	m := repomanager.NewMemoryRepositoryManager()

	iss, err := auth.NewIssuer([]byte(cfg.SecretKey), cfg.TokenValidityDuration)
	require.NoError(t, err)
	ver, err := auth.NewVerifier([]byte(cfg.SecretKey))
	require.NoError(t, err)

	srv := NewHTTPServer(cfg, logging.NewDiscardLogger(), ver, Services{
		Users:    services.NewUserService(m, auth.NewPasswordHasherWithCost(bcrypt.MinCost), iss),
		Profiles: services.NewProfileService(m),
		Posts:    services.NewPostService(m),
		Avatars:  services.NewAvatarService(m, cfg),
	})

	return &testAPI{t: t, handler: srv.Handler(), issuer: iss}
}

// do sends a JSON request and returns the recorder. body may be nil.
func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(common.AuthTokenHeaderName, token)
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) register(name, email, password string) string {
	a.t.Helper()

	rec := a.do(http.MethodPost, "/api/users", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())

	var out tokenResponse
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.NotEmpty(a.t, out.Token)
	return out.Token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}
