package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	xerrors "xui-panel-client/internal/errors"
	"xui-panel-client/internal/models"
	"xui-panel-client/internal/paneltest"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{"XUI_HOST", "XUI_USERNAME", "XUI_PASSWORD", "XUI_TWO_FACTOR_CODE", "LOG_LEVEL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	var out bytes.Buffer
	err := newApp(&out, io.Discard).Run(append([]string{Name, "--env-file", ""}, args...))
	return out.String(), err
}

func newPanel(t *testing.T) *paneltest.Server {
	t.Helper()
	srv := paneltest.NewServer()
	t.Cleanup(srv.Close)
	return srv
}

func TestSettingsGetYAML(t *testing.T) {
	srv := newPanel(t)
	srv.SetSettings(`{"webPort": 2053}`)

	out, err := runApp(t, "--host", srv.URL, "settings", "get", "--output", "yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]any
	if err := yaml.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, out)
	}
	if decoded["webPort"] != 2053 || decoded["pageSize"] != 50 {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestSettingsSet(t *testing.T) {
	srv := newPanel(t)

	out, err := runApp(t, "--host", srv.URL, "settings", "set", "webPort=2053", "sub_enable=true")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `"webPort": 2053`) {
		t.Fatalf("unexpected output:\n%s", out)
	}

	var stored models.PanelSettings
	if err := json.Unmarshal(srv.Settings(), &stored); err != nil {
		t.Fatalf("stored settings: %v", err)
	}
	if stored.WebPort != 2053 || !stored.SubEnable {
		t.Fatalf("unexpected stored settings: %s", stored)
	}
}

func TestSettingsRestart(t *testing.T) {
	srv := newPanel(t)

	out, err := runApp(t, "--host", srv.URL, "settings", "restart", "--notify")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "panel restarted" {
		t.Fatalf("unexpected output: %q", out)
	}
	if n := len(srv.Requests("/panel/setting/restartPanel")); n != 1 {
		t.Fatalf("restart requests=%d, want=1", n)
	}
}

func TestInboundsShow(t *testing.T) {
	srv := newPanel(t)
	srv.AddInbound(`{"id": 5, "up": 0, "down": 0, "total": 0, "remark": "r", "enable": true, "expiryTime": 0,
		"clientStats": null, "listen": "", "port": 1080, "protocol": "socks", "settings": "{}",
		"streamSettings": "{\"network\":\"tcp\",\"security\":\"none\",\"tcpSettings\":{}}", "tag": "inbound-1080",
		"sniffing": "{\"enabled\":false}"}`)

	out, err := runApp(t, "--host", srv.URL, "inbounds", "show", "5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "Inbound(id=5, ") || !strings.Contains(out, `tag="inbound-1080"`) {
		t.Fatalf("unexpected output: %s", out)
	}

	for _, arg := range []string{"x", "12abc", "5.0", "-5"} {
		if _, err := runApp(t, "--host", srv.URL, "inbounds", "show", arg); err == nil {
			t.Fatalf("expected an error for inbound id %q", arg)
		}
	}
	if n := len(srv.Requests("/panel/api/inbounds/get/12")); n != 0 {
		t.Fatalf("requests for inbound 12=%d, want=0", n)
	}
}

func TestSubLinkWithQR(t *testing.T) {
	srv := newPanel(t)
	srv.SetSettings(`{"subDomain": "sub.example.com", "subPort": 443, "subCertFile": "c", "subKeyFile": "k"}`)
	file := filepath.Join(t.TempDir(), "qr.png")

	out, err := runApp(t, "--host", srv.URL, "sub", "link", "--qr", file, "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "https://sub.example.com/sub/abc" {
		t.Fatalf("unexpected output: %q", out)
	}
	if info, err := os.Stat(file); err != nil || info.Size() == 0 {
		t.Fatalf("qr code not written: %v", err)
	}

	if _, err := runApp(t, "--host", srv.URL, "sub", "link", "--qr", file, "--qr-size", "128", "--qr-level", "highest", "abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, err := os.Open(file)
	if err != nil {
		t.Fatalf("qr code not written: %v", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil || cfg.Width != 128 {
		t.Fatalf("qr code width=%d err=%v, want=128", cfg.Width, err)
	}

	if _, err := runApp(t, "--host", srv.URL, "sub", "link", "--qr", file, "--qr-level", "extreme", "abc"); err == nil {
		t.Fatalf("expected an error for an unknown recovery level")
	}
}

const vlessInbound = `{"id": 6, "up": 0, "down": 0, "total": 0, "remark": "v", "enable": true, "expiryTime": 0,
	"clientStats": [{"id": 1, "inboundId": 6, "enable": true, "email": "hank", "up": 10, "down": 20, "expiryTime": 0, "total": 0, "reset": 0}],
	"listen": "", "port": 443, "protocol": "vless",
	"settings": "{\"clients\":[{\"id\":\"3f1b0c3e-4d7a-4f4e-9a5b-0d6c2e8f9a10\",\"email\":\"hank\",\"enable\":true}],\"decryption\":\"none\"}",
	"streamSettings": "{\"network\":\"tcp\",\"security\":\"none\"}", "tag": "inbound-443",
	"sniffing": "{\"enabled\":false}"}`

func TestClientsAdd(t *testing.T) {
	srv := newPanel(t)
	srv.AddInbound(vlessInbound)

	out, err := runApp(t, "--host", srv.URL, "clients", "add", "--inbound", "6", "--total-gb", "10", "--expiry-days", "30", "ivy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "Client(") || !strings.Contains(out, `email="ivy"`) {
		t.Fatalf("unexpected output: %s", out)
	}

	raw, ok := srv.Inbound(6)
	if !ok {
		t.Fatalf("inbound 6 missing")
	}
	var inbound models.Inbound
	if err := json.Unmarshal(raw, &inbound); err != nil {
		t.Fatalf("stored inbound: %v", err)
	}
	ivy, ok := inbound.Settings.FindClient("ivy")
	if !ok {
		t.Fatalf("client ivy was not stored")
	}
	if len(ivy.ID.Value) != 36 || ivy.TotalGB != 10<<30 || ivy.ExpiryTime <= 0 || !ivy.Enable {
		t.Fatalf("unexpected client: %s", ivy)
	}

	if _, err := runApp(t, "--host", srv.URL, "clients", "add", "--inbound", "6", "hank"); err == nil {
		t.Fatalf("expected an error for an existing email")
	}
	if _, err := runApp(t, "--host", srv.URL, "clients", "add", "jo"); err == nil {
		t.Fatalf("expected an error without --inbound")
	}
}

func TestClientsReset(t *testing.T) {
	srv := newPanel(t)
	srv.AddInbound(vlessInbound)

	out, err := runApp(t, "--host", srv.URL, "clients", "reset", "--inbound", "6", "hank")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "traffic of hank reset" {
		t.Fatalf("unexpected output: %q", out)
	}

	raw, _ := srv.Inbound(6)
	var inbound models.Inbound
	if err := json.Unmarshal(raw, &inbound); err != nil {
		t.Fatalf("stored inbound: %v", err)
	}
	if st := inbound.ClientStats[0]; st.Up != 0 || st.Down != 0 {
		t.Fatalf("unexpected client stats: %+v", st)
	}
}

func TestInvalidHost(t *testing.T) {
	_, err := runApp(t, "--host", "ftp://panel.example.com", "settings", "get")

	var ce *xerrors.ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("expected a configuration error, got %v", err)
	}
}
