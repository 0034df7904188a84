package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"

	"github.com/sevigo/pr-review/internal/config"
)

// NewClient picks the authentication method from cfg: a GitHub App
// installation when its credentials are complete, the token otherwise.
func NewClient(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Client, error) {
	if cfg.GitHub.UsesApp() {
		return CreateInstallationClient(ctx, cfg.GitHub, logger)
	}
	return NewPATClient(ctx, cfg.GitHub.Token, cfg.GitHub.APIURL, logger)
}

// NewPATClient creates a new GitHub client authenticated with a token, such as
// the GITHUB_TOKEN provided to CI jobs or a Personal Access Token.
func NewPATClient(ctx context.Context, token, apiURL string, logger *slog.Logger) (Client, error) {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	client, err := withAPIURL(github.NewClient(tc), apiURL)
	if err != nil {
		return nil, err
	}
	return &gitHubClient{client: client, logger: logger}, nil
}

// CreateInstallationClient creates a GitHub client that is authenticated as a specific application installation.
func CreateInstallationClient(ctx context.Context, cfg config.GitHubConfig, logger *slog.Logger) (Client, error) {
	logger.Info("creating GitHub installation client", "app_id", cfg.AppID, "installation_id", cfg.InstallationID)

	privateKey, err := os.ReadFile(cfg.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key from %s: %w", cfg.PrivateKeyPath, err)
	}

	// The apps transport signs JWTs; it is only used to mint the installation token.
	appTransport, err := ghinstallation.NewAppsTransport(http.DefaultTransport, cfg.AppID, privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub App transport: %w", err)
	}
	if cfg.IsEnterprise() {
		appTransport.BaseURL = strings.TrimRight(cfg.APIURL, "/")
	}
	appClient, err := withAPIURL(github.NewClient(&http.Client{Transport: appTransport}), cfg.APIURL)
	if err != nil {
		return nil, err
	}

	token, resp, err := appClient.Apps.CreateInstallationToken(ctx, cfg.InstallationID, nil)
	if err != nil {
		return nil, newRequestError(fmt.Sprintf("create installation token for installation %d", cfg.InstallationID), resp, err)
	}
	if token.GetToken() == "" {
		return nil, fmt.Errorf("received an empty installation token")
	}
	logger.Info("created installation token", "installation_id", cfg.InstallationID, "expires_at", token.GetExpiresAt())

	return NewPATClient(ctx, token.GetToken(), cfg.APIURL, logger)
}

// withAPIURL points client at a GitHub Enterprise Server when apiURL is not
// the public endpoint.
func withAPIURL(client *github.Client, apiURL string) (*github.Client, error) {
	if !config.IsEnterpriseAPIURL(apiURL) {
		return client, nil
	}
	apiURL = strings.TrimRight(apiURL, "/")
	uploadURL := strings.TrimSuffix(apiURL, "/api/v3")
	enterprise, err := client.WithEnterpriseURLs(apiURL, uploadURL)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API URL %q: %w", apiURL, err)
	}
	return enterprise, nil
}
