// Package gmailclient delivers rendered fairness reports by email
// through the Gmail API.
package gmailclient

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/evehartley/homebalance/internal/config"
	"github.com/evehartley/homebalance/pkg/utils"
)

// Client wraps the Gmail API service used for report delivery
type Client struct {
	service      *gmail.Service
	sendMutex    sync.Mutex
	lastSendTime time.Time
}

// NewClient creates a Gmail client from an existing OAuth token. The
// token only needs the gmail.send scope; the client never reads mail.
func NewClient(ctx context.Context, oauthCfg *config.OAuthClientConfig, token *oauth2.Token) (*Client, error) {
	oauthConfig, err := utils.GetOAuthConfig(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}

	service, err := gmail.NewService(ctx, option.WithHTTPClient(oauthConfig.Client(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	return &Client{service: service}, nil
}
