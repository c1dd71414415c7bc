package xuiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	xerrors "xui-panel-client/internal/errors"
	"xui-panel-client/internal/models"
)

func TestSettingAPI_GetAll(t *testing.T) {
	srv := newTestPanel(t)
	srv.SetSettings(`{"webPort": 2053, "pageSize": 25}`)
	client, hook := newTestClient(t, srv.URL, "", "")

	got, err := client.Settings.GetAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := models.DefaultPanelSettings()
	want.WebPort = 2053
	want.PageSize = 25
	if !got.Equal(want) {
		t.Fatalf("got %s\nwant %s", got, want)
	}

	if !hasMessage(hook, "Getting all settings...") || !hasMessage(hook, "All settings retrieved successfully.") {
		t.Fatalf("missing log entries: %v", hook.AllEntries())
	}

	reqs := srv.Requests("/panel/setting/all")
	if len(reqs) != 1 || reqs[0].Method != http.MethodPost {
		t.Fatalf("requests=%v", reqs)
	}
}

func TestSettingAPI_GetAllSemanticNames(t *testing.T) {
	srv := newTestPanel(t)
	srv.SetSettings(`{"web_listen": "127.0.0.1", "tgBotEnable": true}`)
	client, _ := newTestClient(t, srv.URL, "", "")

	got, err := client.Settings.GetAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.WebListen != "127.0.0.1" || !got.TgBotEnable {
		t.Fatalf("unexpected settings: %s", got)
	}
}

func TestSettingAPI_GetAllDecodeFailure(t *testing.T) {
	logger, hook := test.NewNullLogger()
	api := NewSettingAPI(stubTransport{fn: func(context.Context, string, any) (*Response, error) {
		return &Response{Success: true, Obj: json.RawMessage(`{"webPort": "abc"}`)}, nil
	}}, logger)

	_, err := api.GetAll(context.Background())
	if !errors.Is(err, xerrors.ErrTypeMismatch) {
		t.Fatalf("expected type mismatch, got %v", err)
	}
	if hasMessage(hook, "All settings retrieved successfully.") {
		t.Fatalf("success logged after a failed decode")
	}
	if hook.LastEntry() == nil || hook.LastEntry().Level != logrus.ErrorLevel {
		t.Fatalf("expected an error entry, got %v", hook.LastEntry())
	}
}

func TestSettingAPI_GetAllRequestFailure(t *testing.T) {
	srv := newTestPanel(t)
	srv.Fail("/panel/setting/all", http.StatusOK, "denied")
	client, hook := newTestClient(t, srv.URL, "", "")

	_, err := client.Settings.GetAll(context.Background())
	if !errors.Is(err, xerrors.ErrRequestFailed) {
		t.Fatalf("expected request failure, got %v", err)
	}

	var rf *xerrors.RequestFailedError
	if !errors.As(err, &rf) || rf.Message != "denied" {
		t.Fatalf("unexpected error: %v", err)
	}
	if hasMessage(hook, "All settings retrieved successfully.") {
		t.Fatalf("success logged after a failed request")
	}
}

func TestSettingAPI_Update(t *testing.T) {
	srv := newTestPanel(t)
	client, hook := newTestClient(t, srv.URL, "", "")

	settings := models.DefaultPanelSettings()
	settings.WebPort = 54321
	settings.SubEnable = true

	if err := client.Settings.Update(context.Background(), settings); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reqs := srv.Requests("/panel/setting/update")
	if len(reqs) != 1 {
		t.Fatalf("requests=%d, want=1", len(reqs))
	}

	var body map[string]any
	if err := json.Unmarshal(reqs[0].Body, &body); err != nil {
		t.Fatalf("body is not a JSON object: %s", reqs[0].Body)
	}
	fields := models.PanelSettingsSchema().Fields()
	if len(body) != len(fields) {
		t.Fatalf("body has %d keys, want %d", len(body), len(fields))
	}
	for _, f := range fields {
		if _, ok := body[f.Wire]; !ok {
			t.Fatalf("body is missing %s", f.Wire)
		}
	}
	if body[models.PanelSettingsWebPort] != float64(54321) || body[models.PanelSettingsSubEnable] != true {
		t.Fatalf("unexpected body: %s", reqs[0].Body)
	}

	got, err := client.Settings.GetAll(context.Background())
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if !got.Equal(settings) {
		t.Fatalf("stored settings differ:\n%s\n%s", got, settings)
	}

	if !hasMessage(hook, "Updating settings...") || !hasMessage(hook, "Settings updated successfully.") {
		t.Fatalf("missing log entries: %v", hook.AllEntries())
	}
}

func TestSettingAPI_UpdateFailure(t *testing.T) {
	srv := newTestPanel(t)
	srv.Fail("/panel/setting/update", http.StatusInternalServerError, "boom")
	client, hook := newTestClient(t, srv.URL, "", "")

	err := client.Settings.Update(context.Background(), models.DefaultPanelSettings())
	if !errors.Is(err, xerrors.ErrRequestFailed) {
		t.Fatalf("expected request failure, got %v", err)
	}
	if hasMessage(hook, "Settings updated successfully.") {
		t.Fatalf("success logged after a failed request")
	}
}

func TestSettingAPI_RestartPanel(t *testing.T) {
	srv := newTestPanel(t)
	client, hook := newTestClient(t, srv.URL, "", "")

	if err := client.Settings.RestartPanel(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reqs := srv.Requests("/panel/setting/restartPanel")
	if len(reqs) != 1 {
		t.Fatalf("requests=%d, want=1", len(reqs))
	}
	if body := strings.TrimSpace(string(reqs[0].Body)); body != "{}" {
		t.Fatalf("body=%q, want={}", body)
	}
	if !hasMessage(hook, "Restarting panel...") || !hasMessage(hook, "Panel restarted successfully.") {
		t.Fatalf("missing log entries: %v", hook.AllEntries())
	}
}

func TestSettingAPI_RestartPanelFailure(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{name: "server error", status: http.StatusInternalServerError},
		{name: "unsuccessful envelope", status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestPanel(t)
			srv.Fail("/panel/setting/restartPanel", tt.status, "restart refused")
			client, hook := newTestClient(t, srv.URL, "", "")

			err := client.Settings.RestartPanel(context.Background())
			if !errors.Is(err, xerrors.ErrRequestFailed) {
				t.Fatalf("expected request failure, got %v", err)
			}
			if hasMessage(hook, "Panel restarted successfully.") {
				t.Fatalf("success logged after a failed request")
			}
			if !hasMessage(hook, "Restarting panel...") {
				t.Fatalf("start of the operation not logged")
			}
		})
	}
}
