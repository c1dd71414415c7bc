package helpers

import (
	"strings"
	"testing"

	"xui-panel-client/internal/constants"
	"xui-panel-client/internal/models"
)

func TestCalculateInboundTraffic(t *testing.T) {
	down, up := CalculateInboundTraffic([]models.ClientStat{
		{Email: "a", Down: 100, Up: 10},
		{Email: "b", Down: 200, Up: 20},
	})
	if down != 300 || up != 30 {
		t.Fatalf("down=%d up=%d, want 300 and 30", down, up)
	}
}

func TestFormatTableLine(t *testing.T) {
	got := FormatTableLine("alice", constants.BytesInGB, constants.BytesInGB/2)
	want := "alice             |   1.00 |   0.50\n"
	if got != want {
		t.Fatalf("got=%q, want=%q", got, want)
	}

	got = FormatTableLine("a-very-long-email@example.com", 0, 0)
	if !strings.HasPrefix(got, "a-very-long-em...") {
		t.Fatalf("email not truncated: %q", got)
	}
}

func TestFormatNetworkUsageReport(t *testing.T) {
	report := FormatNetworkUsageReport([]models.Inbound{
		{
			ID: 1, Remark: "main", Protocol: "vless", Port: 443, Enable: true,
			ClientStats: []models.ClientStat{
				{Email: "alice", Down: 2 * constants.BytesInGB, Up: constants.BytesInGB},
			},
		},
		{ID: 2, Remark: "spare", Protocol: "trojan", Port: 8443},
	})

	for _, want := range []string{
		"Inbound #1: main (vless:443, enabled)",
		"Inbound #2: spare (trojan:8443, disabled)",
		"no client traffic recorded",
		"alice             |   2.00 |   1.00",
		"Grand Total:      |   2.00 |   1.00",
	} {
		if !strings.Contains(report, want) {
			t.Fatalf("report missing %q:\n%s", want, report)
		}
	}
}
