package xuiclient

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"xui-panel-client/internal/config"
	"xui-panel-client/internal/constants"
	xerrors "xui-panel-client/internal/errors"
)

// Transport sends requests to the panel and unwraps the response envelope.
// A non-success outcome is reported as *errors.RequestFailedError.
type Transport interface {
	Get(ctx context.Context, endpoint string) (*Response, error)
	Post(ctx context.Context, endpoint string, body any) (*Response, error)
}

// Response represents the envelope every panel endpoint answers with
type Response struct {
	Success bool            `json:"success"`
	Msg     string          `json:"msg"`
	Obj     json.RawMessage `json:"obj"`
}

// RestyTransport is a Transport that keeps a panel session cookie
type RestyTransport struct {
	httpClient  *resty.Client
	panelConfig config.PanelConfig
	cookieCache *cache.Cache
	logger      logrus.FieldLogger
}

// NewRestyTransport creates a transport for the given panel
func NewRestyTransport(panelConfig config.PanelConfig, logger logrus.FieldLogger) *RestyTransport {
	timeout := panelConfig.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultTimeout
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(panelConfig.Host, "/")).
		SetTimeout(time.Duration(timeout) * time.Second).
		SetRetryCount(panelConfig.RetryCount).
		SetRetryWaitTime(constants.DefaultRetryWaitTime * time.Second).
		SetRetryMaxWaitTime(constants.DefaultRetryMaxWaitTime * time.Second).
		SetTLSClientConfig(&tls.Config{InsecureSkipVerify: !panelConfig.TLSVerify})

	return &RestyTransport{
		httpClient:  httpClient,
		panelConfig: panelConfig,
		cookieCache: cache.New(constants.CacheExpiration*time.Minute, constants.CacheCleanupInterval*time.Minute),
		logger:      logger,
	}
}

// Login opens a panel session unless one is cached. Panels reached without
// credentials are used anonymously.
func (t *RestyTransport) Login(ctx context.Context) error {
	_, err := t.session(ctx)
	return err
}

// Get issues a GET request against endpoint
func (t *RestyTransport) Get(ctx context.Context, endpoint string) (*Response, error) {
	return t.do(ctx, http.MethodGet, endpoint, nil, true)
}

// Post issues a POST request with a JSON body against endpoint
func (t *RestyTransport) Post(ctx context.Context, endpoint string, body any) (*Response, error) {
	return t.do(ctx, http.MethodPost, endpoint, body, true)
}

func (t *RestyTransport) do(ctx context.Context, method, endpoint string, body any, relogin bool) (*Response, error) {
	cookies, err := t.session(ctx)
	if err != nil {
		return nil, err
	}

	req := t.httpClient.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json")
	if cookies != nil {
		req.SetCookies(cookies)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, "/"+strings.TrimLeft(endpoint, "/"))
	if err != nil {
		return nil, &xerrors.RequestFailedError{Operation: method, Endpoint: endpoint, Err: err}
	}

	t.logger.Debugf("%s %s - Status: %d, Response: %s", method, endpoint, resp.StatusCode(), string(resp.Body()))

	if resp.StatusCode() == http.StatusUnauthorized && relogin && t.hasCredentials() {
		t.cookieCache.Delete(constants.SessionCacheKey)
		return t.do(ctx, method, endpoint, body, false)
	}

	if !resp.IsSuccess() {
		return nil, &xerrors.RequestFailedError{
			Operation: method,
			Endpoint:  endpoint,
			Status:    resp.StatusCode(),
			Message:   string(resp.Body()),
		}
	}

	var apiResp Response
	if err := json.Unmarshal(resp.Body(), &apiResp); err != nil {
		return nil, &xerrors.RequestFailedError{
			Operation: method,
			Endpoint:  endpoint,
			Status:    resp.StatusCode(),
			Err:       fmt.Errorf("failed to parse response: %w", err),
		}
	}

	if !apiResp.Success {
		return nil, &xerrors.RequestFailedError{
			Operation: method,
			Endpoint:  endpoint,
			Status:    resp.StatusCode(),
			Message:   apiResp.Msg,
		}
	}

	return &apiResp, nil
}

func (t *RestyTransport) hasCredentials() bool {
	return t.panelConfig.Username != ""
}

// session returns the cached session cookies, logging in when needed
func (t *RestyTransport) session(ctx context.Context) ([]*http.Cookie, error) {
	if !t.hasCredentials() {
		return nil, nil
	}

	if cookies, found := t.cookieCache.Get(constants.SessionCacheKey); found {
		return cookies.([]*http.Cookie), nil
	}

	t.logger.Infof("Logging in to panel at %s", t.panelConfig.Host)
	t.logger.Debugf("Using username: %s", t.panelConfig.Username)

	payload := map[string]string{
		"username": t.panelConfig.Username,
		"password": t.panelConfig.Password,
	}
	if t.panelConfig.TwoFactorCode != "" {
		payload["twoFactorCode"] = t.panelConfig.TwoFactorCode
	}

	resp, err := t.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(payload).
		Post("/" + constants.EndpointLogin)
	if err != nil {
		return nil, &xerrors.RequestFailedError{Operation: "login", Endpoint: constants.EndpointLogin, Err: err}
	}

	if resp.StatusCode() != http.StatusOK {
		t.logger.Errorf("Login failed - Status: %d, Response: %s", resp.StatusCode(), string(resp.Body()))
		return nil, &xerrors.RequestFailedError{
			Operation: "login",
			Endpoint:  constants.EndpointLogin,
			Status:    resp.StatusCode(),
			Message:   string(resp.Body()),
		}
	}

	var apiResp Response
	if err := json.Unmarshal(resp.Body(), &apiResp); err != nil {
		return nil, &xerrors.RequestFailedError{
			Operation: "login",
			Endpoint:  constants.EndpointLogin,
			Err:       fmt.Errorf("failed to parse login response: %w", err),
		}
	}

	if !apiResp.Success {
		return nil, &xerrors.RequestFailedError{Operation: "login", Endpoint: constants.EndpointLogin, Message: apiResp.Msg}
	}

	cookies := resp.Cookies()
	if len(cookies) == 0 {
		return nil, &xerrors.RequestFailedError{
			Operation: "login",
			Endpoint:  constants.EndpointLogin,
			Message:   "no session cookie received from server",
		}
	}

	t.cookieCache.Set(constants.SessionCacheKey, cookies, cache.DefaultExpiration)
	t.logger.Info("Successfully logged in to panel")
	return cookies, nil
}
