package models

import "xui-panel-client/internal/wire"

// Wire names of the inbound fields
const (
	InboundID             = "id"
	InboundUp             = "up"
	InboundDown           = "down"
	InboundTotal          = "total"
	InboundRemark         = "remark"
	InboundEnable         = "enable"
	InboundExpiryTime     = "expiryTime"
	InboundClientStats    = "clientStats"
	InboundListen         = "listen"
	InboundPort           = "port"
	InboundProtocol       = "protocol"
	InboundSettings       = "settings"
	InboundStreamSettings = "streamSettings"
	InboundTag            = "tag"
	InboundSniffing       = "sniffing"
)

// Wire names of the client traffic fields
const (
	ClientStatID         = "id"
	ClientStatInboundID  = "inboundId"
	ClientStatEnable     = "enable"
	ClientStatEmail      = "email"
	ClientStatUp         = "up"
	ClientStatDown       = "down"
	ClientStatExpiryTime = "expiryTime"
	ClientStatTotal      = "total"
	ClientStatReset      = "reset"
)

// Inbound represents a panel-managed listener.
//
// ClientStats and Settings.Clients are separate views: the former is the
// traffic accounting kept by the panel, the latter the configured users.
// They are not reconciled.
type Inbound struct {
	ID             int
	Up             int64
	Down           int64
	Total          int64
	Remark         string
	Enable         bool
	ExpiryTime     int64
	ClientStats    []ClientStat
	Listen         string
	Port           int
	Protocol       string
	Settings       Settings
	StreamSettings StreamSettings
	Tag            string
	Sniffing       Sniffing
}

// ClientStat represents traffic statistics for a client
type ClientStat struct {
	ID         int
	InboundID  int
	Enable     bool
	Email      string
	Up         int64
	Down       int64
	ExpiryTime int64
	Total      int64
	Reset      int64
}

var clientStatSchema = wire.NewSchema("ClientStat",
	wire.Int(ClientStatID, "id", 0, func(c *ClientStat) *int { return &c.ID }),
	wire.Int(ClientStatInboundID, "inbound_id", 0, func(c *ClientStat) *int { return &c.InboundID }),
	wire.Bool(ClientStatEnable, "enable", false, func(c *ClientStat) *bool { return &c.Enable }),
	wire.String(ClientStatEmail, "email", "", func(c *ClientStat) *string { return &c.Email }),
	wire.Int64(ClientStatUp, "up", 0, func(c *ClientStat) *int64 { return &c.Up }),
	wire.Int64(ClientStatDown, "down", 0, func(c *ClientStat) *int64 { return &c.Down }),
	wire.Int64(ClientStatExpiryTime, "expiry_time", 0, func(c *ClientStat) *int64 { return &c.ExpiryTime }),
	wire.Int64(ClientStatTotal, "total", 0, func(c *ClientStat) *int64 { return &c.Total }),
	wire.Int64(ClientStatReset, "reset", 0, func(c *ClientStat) *int64 { return &c.Reset }),
)

var inboundSchema = wire.NewSchema("Inbound",
	wire.Int(InboundID, "id", 0, func(i *Inbound) *int { return &i.ID }).Required(),
	wire.Int64(InboundUp, "up", 0, func(i *Inbound) *int64 { return &i.Up }).Required(),
	wire.Int64(InboundDown, "down", 0, func(i *Inbound) *int64 { return &i.Down }).Required(),
	wire.Int64(InboundTotal, "total", 0, func(i *Inbound) *int64 { return &i.Total }).Required(),
	wire.String(InboundRemark, "remark", "", func(i *Inbound) *string { return &i.Remark }).Required(),
	wire.Bool(InboundEnable, "enable", false, func(i *Inbound) *bool { return &i.Enable }).Required(),
	wire.Int64(InboundExpiryTime, "expiry_time", 0, func(i *Inbound) *int64 { return &i.ExpiryTime }).Required(),
	wire.Records(InboundClientStats, "client_stats", clientStatSchema, func(i *Inbound) *[]ClientStat { return &i.ClientStats }).Required(),
	wire.String(InboundListen, "listen", "", func(i *Inbound) *string { return &i.Listen }).Required(),
	wire.Int(InboundPort, "port", 0, func(i *Inbound) *int { return &i.Port }).Required(),
	wire.String(InboundProtocol, "protocol", "", func(i *Inbound) *string { return &i.Protocol }).Required(),
	wire.Record(InboundSettings, "settings", settingsSchema, func(i *Inbound) *Settings { return &i.Settings }).Required(),
	wire.Record(InboundStreamSettings, "stream_settings", streamSettingsSchema, func(i *Inbound) *StreamSettings { return &i.StreamSettings }).Required(),
	wire.String(InboundTag, "tag", "", func(i *Inbound) *string { return &i.Tag }).Required(),
	wire.Record(InboundSniffing, "sniffing", sniffingSchema, func(i *Inbound) *Sniffing { return &i.Sniffing }).Required(),
)

// InboundSchema returns the alias table of Inbound
func InboundSchema() *wire.Schema[Inbound] {
	return inboundSchema
}

// UnmarshalJSON decodes an inbound; nested settings may be JSON text
func (i *Inbound) UnmarshalJSON(data []byte) error {
	return inboundSchema.Decode(data, i)
}

// MarshalJSON encodes the inbound with wire field names
func (i Inbound) MarshalJSON() ([]byte, error) {
	return inboundSchema.Encode(&i)
}

// Equal reports whether both inbounds hold the same values
func (i Inbound) Equal(other Inbound) bool {
	return inboundSchema.Equal(&i, &other)
}

// String enumerates every field
func (i Inbound) String() string {
	return inboundSchema.Describe(&i)
}

// UnmarshalJSON decodes a traffic record given as an object or as JSON text
func (c *ClientStat) UnmarshalJSON(data []byte) error {
	return clientStatSchema.DecodeSubdocument(data, c)
}

// MarshalJSON encodes the traffic record with wire field names
func (c ClientStat) MarshalJSON() ([]byte, error) {
	return clientStatSchema.Encode(&c)
}

// String enumerates every field
func (c ClientStat) String() string {
	return clientStatSchema.Describe(&c)
}
