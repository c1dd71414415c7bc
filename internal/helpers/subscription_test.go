package helpers

import (
	"testing"

	"xui-panel-client/internal/models"
)

func TestSubscriptionURL(t *testing.T) {
	tests := []struct {
		name   string
		modify func(s *models.PanelSettings)
		host   string
		subID  string
		want   string
	}{
		{
			name:   "defaults use the panel hostname",
			modify: func(s *models.PanelSettings) {},
			host:   "https://panel.example.com:2053/base/",
			subID:  "abc",
			want:   "http://panel.example.com:2096/sub/abc",
		},
		{
			name: "tls on the standard port",
			modify: func(s *models.PanelSettings) {
				s.SubDomain = "sub.example.com"
				s.SubCertFile = "/etc/ssl/cert.pem"
				s.SubKeyFile = "/etc/ssl/key.pem"
				s.SubPort = 443
			},
			host:  "https://panel.example.com",
			subID: "abc",
			want:  "https://sub.example.com/sub/abc",
		},
		{
			name: "plain http on port 80",
			modify: func(s *models.PanelSettings) {
				s.SubPort = 80
				s.SubPath = "feed"
			},
			host:  "http://10.0.0.1:54321",
			subID: "abc",
			want:  "http://10.0.0.1/feed/abc",
		},
		{
			name: "configured uri wins",
			modify: func(s *models.PanelSettings) {
				s.SubURI = "https://cdn.example.com/s"
				s.SubDomain = "ignored.example.com"
			},
			host:  "https://panel.example.com",
			subID: "abc",
			want:  "https://cdn.example.com/s/abc",
		},
		{
			name:   "subscription id is escaped",
			modify: func(s *models.PanelSettings) {},
			host:   "http://panel.example.com",
			subID:  "a b",
			want:   "http://panel.example.com:2096/sub/a%20b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := models.DefaultPanelSettings()
			tt.modify(&s)

			got, err := SubscriptionURL(s, tt.host, tt.subID)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got=%q, want=%q", got, tt.want)
			}
		})
	}
}

func TestJSONSubscriptionURL(t *testing.T) {
	s := models.DefaultPanelSettings()

	got, err := JSONSubscriptionURL(s, "http://panel.example.com", "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "http://panel.example.com:2096/json/abc"; got != want {
		t.Fatalf("got=%q, want=%q", got, want)
	}

	s.SubJSONURI = "https://cdn.example.com/json/"
	got, err = JSONSubscriptionURL(s, "http://panel.example.com", "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "https://cdn.example.com/json/abc"; got != want {
		t.Fatalf("got=%q, want=%q", got, want)
	}
}

func TestSubscriptionURL_Errors(t *testing.T) {
	s := models.DefaultPanelSettings()

	if _, err := SubscriptionURL(s, "http://panel.example.com", ""); err == nil {
		t.Fatalf("expected an error for an empty subscription id")
	}
	if _, err := SubscriptionURL(s, "not a url", "abc"); err == nil {
		t.Fatalf("expected an error for a host without hostname")
	}
}
