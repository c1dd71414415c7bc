package models

import "xui-panel-client/internal/wire"

// Wire names of the stream settings fields
const (
	StreamSettingsSecurity        = "security"
	StreamSettingsNetwork         = "network"
	StreamSettingsTCPSettings     = "tcpSettings"
	StreamSettingsExternalProxy   = "externalProxy"
	StreamSettingsRealitySettings = "realitySettings"
	StreamSettingsXTLSSettings    = "xtlsSettings"
	StreamSettingsTLSSettings     = "tlsSettings"
)

// StreamSettings holds the transport configuration of an inbound. The panel
// may deliver the whole record, or any of its sub-objects, as JSON text.
type StreamSettings struct {
	Security        string
	Network         string
	TCPSettings     map[string]any
	ExternalProxy   []any
	RealitySettings map[string]any
	XTLSSettings    map[string]any
	TLSSettings     map[string]any
}

var streamSettingsSchema = wire.NewSchema("StreamSettings",
	wire.String(StreamSettingsSecurity, "security", "", func(s *StreamSettings) *string { return &s.Security }).Required(),
	wire.String(StreamSettingsNetwork, "network", "", func(s *StreamSettings) *string { return &s.Network }).Required(),
	wire.Object(StreamSettingsTCPSettings, "tcp_settings", func(s *StreamSettings) *map[string]any { return &s.TCPSettings }).Required(),
	wire.List(StreamSettingsExternalProxy, "external_proxy", func(s *StreamSettings) *[]any { return &s.ExternalProxy }),
	wire.Object(StreamSettingsRealitySettings, "reality_settings", func(s *StreamSettings) *map[string]any { return &s.RealitySettings }),
	wire.Object(StreamSettingsXTLSSettings, "xtls_settings", func(s *StreamSettings) *map[string]any { return &s.XTLSSettings }),
	wire.Object(StreamSettingsTLSSettings, "tls_settings", func(s *StreamSettings) *map[string]any { return &s.TLSSettings }),
)

// UnmarshalJSON decodes stream settings given as an object or as JSON text
func (s *StreamSettings) UnmarshalJSON(data []byte) error {
	return streamSettingsSchema.DecodeSubdocument(data, s)
}

// MarshalJSON encodes the stream settings with wire field names
func (s StreamSettings) MarshalJSON() ([]byte, error) {
	return streamSettingsSchema.Encode(&s)
}

// Equal reports whether both values hold the same configuration
func (s StreamSettings) Equal(other StreamSettings) bool {
	return streamSettingsSchema.Equal(&s, &other)
}

// String enumerates every field
func (s StreamSettings) String() string {
	return streamSettingsSchema.Describe(&s)
}
