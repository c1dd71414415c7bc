package models

import "xui-panel-client/internal/wire"

// Wire names of the sniffing fields
const (
	SniffingEnabled      = "enabled"
	SniffingDestOverride = "destOverride"
	SniffingMetadataOnly = "metadataOnly"
	SniffingRouteOnly    = "routeOnly"
)

// Sniffing holds the traffic sniffing options of an inbound
type Sniffing struct {
	Enabled      bool
	DestOverride []string
	MetadataOnly bool
	RouteOnly    bool
}

var sniffingSchema = wire.NewSchema("Sniffing",
	wire.Bool(SniffingEnabled, "enabled", false, func(s *Sniffing) *bool { return &s.Enabled }).Required(),
	wire.Strings(SniffingDestOverride, "dest_override", func(s *Sniffing) *[]string { return &s.DestOverride }),
	wire.Bool(SniffingMetadataOnly, "metadata_only", false, func(s *Sniffing) *bool { return &s.MetadataOnly }),
	wire.Bool(SniffingRouteOnly, "route_only", false, func(s *Sniffing) *bool { return &s.RouteOnly }),
)

// UnmarshalJSON decodes sniffing given as an object or as JSON text
func (s *Sniffing) UnmarshalJSON(data []byte) error {
	return sniffingSchema.DecodeSubdocument(data, s)
}

// MarshalJSON encodes the sniffing options with wire field names
func (s Sniffing) MarshalJSON() ([]byte, error) {
	return sniffingSchema.Encode(&s)
}

// Equal reports whether both values hold the same options
func (s Sniffing) Equal(other Sniffing) bool {
	return sniffingSchema.Equal(&s, &other)
}

// String enumerates every field
func (s Sniffing) String() string {
	return sniffingSchema.Describe(&s)
}
