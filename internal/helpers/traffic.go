package helpers

import (
	"fmt"
	"strings"

	"xui-panel-client/internal/constants"
	"xui-panel-client/internal/models"
)

// FormatNetworkUsageReport formats a network usage report of every inbound
func FormatNetworkUsageReport(inbounds []models.Inbound) string {
	var sb strings.Builder
	sb.WriteString("Network Usage Report:\n")
	sb.WriteString("Email             | ↓ (GB) | ↑ (GB)\n")
	sb.WriteString("------------------|--------|--------\n")

	var totalUp int64 = 0
	var totalDown int64 = 0

	for _, inbound := range inbounds {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("Inbound #%d: %s (%s:%d, %s)\n",
			inbound.ID, inbound.Remark, inbound.Protocol, inbound.Port, FormatEnabled(inbound.Enable)))

		if len(inbound.ClientStats) == 0 {
			sb.WriteString("no client traffic recorded\n")
			continue
		}

		inboundDown, inboundUp := CalculateInboundTraffic(inbound.ClientStats)
		totalDown += inboundDown
		totalUp += inboundUp

		for _, client := range inbound.ClientStats {
			sb.WriteString(FormatTableLine(client.Email, client.Down, client.Up))
		}

		sb.WriteString("-----------\n")
		sb.WriteString(FormatTableLine("Total:", inboundDown, inboundUp))
	}

	sb.WriteString("\n")
	sb.WriteString(FormatTableLine("Grand Total:", totalDown, totalUp))

	return sb.String()
}

// CalculateInboundTraffic calculates total traffic for an inbound (in bytes)
func CalculateInboundTraffic(clientStats []models.ClientStat) (down int64, up int64) {
	for _, client := range clientStats {
		down += client.Down
		up += client.Up
	}
	return
}

// FormatTableLine formats a single line of the traffic table
func FormatTableLine(email string, downBytes int64, upBytes int64) string {
	downGB := float64(downBytes) / constants.BytesInGB
	upGB := float64(upBytes) / constants.BytesInGB

	displayEmail := email
	if len(email) > constants.MaxEmailDisplayLength {
		displayEmail = email[:constants.MaxEmailSuffixLength] + "..."
	}

	return fmt.Sprintf("%-17s | %6.2f | %6.2f\n", displayEmail, downGB, upGB)
}

// FormatEnabled renders an enable flag
func FormatEnabled(enable bool) string {
	if enable {
		return "enabled"
	}
	return "disabled"
}
