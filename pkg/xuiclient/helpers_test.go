package xuiclient

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"xui-panel-client/internal/config"
	"xui-panel-client/internal/paneltest"
)

func newTestPanel(t *testing.T) *paneltest.Server {
	t.Helper()
	srv := paneltest.NewServer()
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, host, username, password string) (*Client, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	client := NewClient(config.PanelConfig{
		Host:      host,
		Username:  username,
		Password:  password,
		TLSVerify: true,
		Timeout:   5,
	}, logger)
	return client, hook
}

func hasMessage(hook *test.Hook, msg string) bool {
	for _, e := range hook.AllEntries() {
		if e.Message == msg {
			return true
		}
	}
	return false
}

// stubTransport answers every call with fn
type stubTransport struct {
	fn func(ctx context.Context, endpoint string, body any) (*Response, error)
}

func (s stubTransport) Get(ctx context.Context, endpoint string) (*Response, error) {
	return s.fn(ctx, endpoint, nil)
}

func (s stubTransport) Post(ctx context.Context, endpoint string, body any) (*Response, error) {
	return s.fn(ctx, endpoint, body)
}
