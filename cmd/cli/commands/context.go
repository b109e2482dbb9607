package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/evehartley/homebalance/internal/config"
	"github.com/evehartley/homebalance/pkg/clients/gmailclient"
	"github.com/evehartley/homebalance/pkg/postgres"
	"github.com/evehartley/homebalance/pkg/utils"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg         *config.Config
	OAuthCfg    *config.OAuthClientConfig
	GmailClient *gmailclient.Client
	Database    *postgres.DB
	Logger      *zap.Logger
	Ctx         context.Context
}

// EnsureGmailClient initializes the Gmail client on first use, running
// the OAuth flow if no valid token is cached. Commands that never send
// email skip this entirely.
func (app *AppContext) EnsureGmailClient() (*gmailclient.Client, error) {
	if app.GmailClient != nil {
		return app.GmailClient, nil
	}
	if app.OAuthCfg == nil {
		return nil, fmt.Errorf("no oauth client configuration loaded - cannot send email")
	}

	oauthConfig, err := utils.GetOAuthConfig(app.OAuthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}

	token, err := utils.GetTokenWithFlow(app.Ctx, oauthConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain oauth token: %w", err)
	}

	client, err := gmailclient.NewClient(app.Ctx, app.OAuthCfg, token)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail client: %w", err)
	}

	app.GmailClient = client
	return client, nil
}
