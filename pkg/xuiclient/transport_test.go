package xuiclient

import (
	"context"
	"errors"
	"testing"

	xerrors "xui-panel-client/internal/errors"
)

func TestRestyTransport_LoginOnce(t *testing.T) {
	srv := newTestPanel(t)
	srv.RequireLogin("admin", "secret")
	client, _ := newTestClient(t, srv.URL, "admin", "secret")
	ctx := context.Background()

	if err := client.Login(ctx); err != nil {
		t.Fatalf("login: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := client.Settings.GetAll(ctx); err != nil {
			t.Fatalf("get all #%d: %v", i, err)
		}
	}
	if srv.Logins() != 1 {
		t.Fatalf("logins=%d, want=1", srv.Logins())
	}
}

func TestRestyTransport_ReloginAfterExpiredSession(t *testing.T) {
	srv := newTestPanel(t)
	srv.RequireLogin("admin", "secret")
	client, _ := newTestClient(t, srv.URL, "admin", "secret")
	ctx := context.Background()

	if _, err := client.Settings.GetAll(ctx); err != nil {
		t.Fatalf("first call: %v", err)
	}

	srv.ExpireSessions()

	if err := client.Settings.RestartPanel(ctx); err != nil {
		t.Fatalf("call after expiry: %v", err)
	}
	if srv.Logins() != 2 {
		t.Fatalf("logins=%d, want=2", srv.Logins())
	}
	if n := len(srv.Requests("/panel/setting/restartPanel")); n != 2 {
		t.Fatalf("restart requests=%d, want=2", n)
	}
}

func TestRestyTransport_WrongCredentials(t *testing.T) {
	srv := newTestPanel(t)
	srv.RequireLogin("admin", "secret")
	client, hook := newTestClient(t, srv.URL, "admin", "wrong")

	err := client.Settings.RestartPanel(context.Background())
	if !errors.Is(err, xerrors.ErrRequestFailed) {
		t.Fatalf("expected request failure, got %v", err)
	}

	var rf *xerrors.RequestFailedError
	if !errors.As(err, &rf) || rf.Operation != "login" {
		t.Fatalf("expected a login failure, got %v", err)
	}
	if len(srv.Requests("/panel/setting/restartPanel")) != 0 {
		t.Fatalf("restart sent without a session")
	}
	if hasMessage(hook, "Panel restarted successfully.") {
		t.Fatalf("success logged after a failed login")
	}
}

func TestRestyTransport_UnauthorizedWithoutCredentials(t *testing.T) {
	srv := newTestPanel(t)
	srv.RequireLogin("admin", "secret")
	client, _ := newTestClient(t, srv.URL, "", "")

	_, err := client.Settings.GetAll(context.Background())

	var rf *xerrors.RequestFailedError
	if !errors.As(err, &rf) || rf.Status != 401 {
		t.Fatalf("expected a 401 request failure, got %v", err)
	}
	if srv.Logins() != 0 {
		t.Fatalf("logins=%d, want=0", srv.Logins())
	}
}

func TestRestyTransport_Unreachable(t *testing.T) {
	srv := newTestPanel(t)
	host := srv.URL
	srv.Close()

	client, _ := newTestClient(t, host, "", "")
	_, err := client.Settings.GetAll(context.Background())
	if !errors.Is(err, xerrors.ErrRequestFailed) {
		t.Fatalf("expected request failure, got %v", err)
	}
}
