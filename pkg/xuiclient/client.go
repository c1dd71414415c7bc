// Package xuiclient is a typed client for the administrative API of an
// x-ui/3x-ui panel.
package xuiclient

import (
	"context"

	"github.com/sirupsen/logrus"

	"xui-panel-client/internal/config"
)

// Client groups the panel APIs over a single session
type Client struct {
	transport *RestyTransport

	Settings      *SettingAPI
	AsyncSettings *AsyncSettingAPI
	Inbounds      *InboundAPI
}

// NewClient creates a panel client
func NewClient(panelConfig config.PanelConfig, logger logrus.FieldLogger) *Client {
	transport := NewRestyTransport(panelConfig, logger)

	return &Client{
		transport:     transport,
		Settings:      NewSettingAPI(transport, logger),
		AsyncSettings: NewAsyncSettingAPI(transport, logger),
		Inbounds:      NewInboundAPI(transport, logger),
	}
}

// Login opens the panel session ahead of the first call
func (c *Client) Login(ctx context.Context) error {
	return c.transport.Login(ctx)
}
