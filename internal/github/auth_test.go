package github

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/pr-review/internal/config"
	"github.com/sevigo/pr-review/internal/core"
)

const (
	testAppID          = 1234
	testInstallationID = 5678
)

func writeAppKey(t *testing.T) string {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "app.pem")
	block := &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(block), 0600))
	return path
}

// jwtIssuer returns the "iss" claim of a bearer JWT without verifying it.
func jwtIssuer(t *testing.T, authorization string) string {
	t.Helper()
	parts := strings.Split(strings.TrimPrefix(authorization, "Bearer "), ".")
	require.Len(t, parts, 3, "expected a JWT, got %q", authorization)

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	var claims map[string]any
	require.NoError(t, json.Unmarshal(payload, &claims))
	iss, _ := claims["iss"].(string)
	return iss
}

// fakeEnterprise serves the installation token endpoint and the file
// listing of an Enterprise Server and records the Authorization headers.
type fakeEnterprise struct {
	token string

	mu         sync.Mutex
	tokenAuth  []string
	filesAuth  []string
	tokenCalls int
}

func (f *fakeEnterprise) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.Method == http.MethodPost && r.URL.Path == fmt.Sprintf("/api/v3/app/installations/%d/access_tokens", testInstallationID):
		f.tokenCalls++
		f.tokenAuth = append(f.tokenAuth, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"token": %q, "expires_at": "2030-01-01T00:00:00Z"}`, f.token)
	case r.Method == http.MethodGet && r.URL.Path == "/api/v3/repos/acme/widgets/pulls/42/files":
		f.filesAuth = append(f.filesAuth, r.Header.Get("Authorization"))
		fmt.Fprint(w, `[{"filename": "main.go", "patch": "+line1"}]`)
	default:
		http.NotFound(w, r)
	}
}

func appConfig(t *testing.T, serverURL string) *config.Config {
	t.Helper()
	return &config.Config{GitHub: config.GitHubConfig{
		APIURL:         serverURL + "/api/v3",
		AppID:          testAppID,
		InstallationID: testInstallationID,
		PrivateKeyPath: writeAppKey(t),
	}}
}

func TestNewClient_GitHubAppInstallation(t *testing.T) {
	fake := &fakeEnterprise{token: "ghs_installation"}
	server := httptest.NewServer(fake)
	defer server.Close()

	cfg := appConfig(t, server.URL)
	require.True(t, cfg.GitHub.UsesApp())

	client, err := NewClient(context.Background(), cfg, discardLogger())
	require.NoError(t, err)

	files, err := client.GetChangedFiles(context.Background(), "acme", "widgets", 42)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "main.go", files[0].Filename)

	require.Equal(t, 1, fake.tokenCalls)
	assert.Equal(t, fmt.Sprint(testAppID), jwtIssuer(t, fake.tokenAuth[0]))
	assert.Equal(t, []string{"Bearer ghs_installation"}, fake.filesAuth)
}

func TestCreateInstallationClient_Errors(t *testing.T) {
	t.Run("missing private key file", func(t *testing.T) {
		cfg := config.GitHubConfig{
			AppID:          testAppID,
			InstallationID: testInstallationID,
			PrivateKeyPath: filepath.Join(t.TempDir(), "missing.pem"),
		}
		_, err := CreateInstallationClient(context.Background(), cfg, discardLogger())
		assert.ErrorContains(t, err, "failed to read private key")
	})

	t.Run("malformed private key", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.pem")
		require.NoError(t, os.WriteFile(path, []byte("not a key"), 0600))
		cfg := config.GitHubConfig{AppID: testAppID, InstallationID: testInstallationID, PrivateKeyPath: path}

		_, err := CreateInstallationClient(context.Background(), cfg, discardLogger())
		assert.ErrorContains(t, err, "failed to create GitHub App transport")
	})

	t.Run("empty installation token", func(t *testing.T) {
		fake := &fakeEnterprise{token: ""}
		server := httptest.NewServer(fake)
		defer server.Close()

		_, err := CreateInstallationClient(context.Background(), appConfig(t, server.URL).GitHub, discardLogger())
		assert.ErrorContains(t, err, "empty installation token")
		assert.Equal(t, 1, fake.tokenCalls)
		assert.Empty(t, fake.filesAuth)
	})

	t.Run("token endpoint rejects the app", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"message": "A JSON web token could not be decoded"}`)
		}))
		defer server.Close()

		_, err := CreateInstallationClient(context.Background(), appConfig(t, server.URL).GitHub, discardLogger())
		var reqErr *core.RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Equal(t, http.StatusUnauthorized, reqErr.StatusCode)
	})
}
