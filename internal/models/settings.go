package models

import "xui-panel-client/internal/wire"

// Wire names of the inbound settings fields
const (
	SettingsClients    = "clients"
	SettingsDecryption = "decryption"
	SettingsFallbacks  = "fallbacks"
)

// Settings holds the protocol specific part of an inbound
type Settings struct {
	Clients    []Client
	Decryption string
	Fallbacks  []any
}

var settingsSchema = wire.NewSchema("Settings",
	wire.Records(SettingsClients, "clients", clientSchema, func(s *Settings) *[]Client { return &s.Clients }),
	wire.String(SettingsDecryption, "decryption", "", func(s *Settings) *string { return &s.Decryption }),
	wire.List(SettingsFallbacks, "fallbacks", func(s *Settings) *[]any { return &s.Fallbacks }),
)

// UnmarshalJSON decodes settings given as an object or as JSON text
func (s *Settings) UnmarshalJSON(data []byte) error {
	return settingsSchema.DecodeSubdocument(data, s)
}

// MarshalJSON encodes the settings with wire field names
func (s Settings) MarshalJSON() ([]byte, error) {
	return settingsSchema.Encode(&s)
}

// Equal reports whether both settings hold the same values
func (s Settings) Equal(other Settings) bool {
	return settingsSchema.Equal(&s, &other)
}

// String enumerates every field
func (s Settings) String() string {
	return settingsSchema.Describe(&s)
}

// FindClient returns the client with the given email
func (s Settings) FindClient(email string) (Client, bool) {
	for _, c := range s.Clients {
		if c.Email == email {
			return c, true
		}
	}
	return Client{}, false
}
