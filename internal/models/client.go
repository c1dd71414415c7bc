package models

import (
	"crypto/rand"
	"encoding/base64"
	"strings"

	"github.com/google/uuid"

	"xui-panel-client/internal/wire"
)

// Wire names of the client fields
const (
	ClientID         = "id"
	ClientSecurity   = "security"
	ClientPassword   = "password"
	ClientFlow       = "flow"
	ClientEmail      = "email"
	ClientLimitIP    = "limitIp"
	ClientTotalGB    = "totalGB"
	ClientExpiryTime = "expiryTime"
	ClientEnable     = "enable"
	ClientTgID       = "tgId"
	ClientSubID      = "subId"
	ClientComment    = "comment"
	ClientReset      = "reset"
	ClientMethod     = "method"
	ClientInboundID  = "inboundId"
)

// Client represents a provisioned user of an inbound, as listed in the
// clients array of the inbound settings
type Client struct {
	ID         wire.Ident // UUID for vless/vmess, empty for trojan and shadowsocks
	Security   string
	Password   string
	Flow       string
	Email      string
	LimitIP    int
	TotalGB    int64 // bytes, despite the name
	ExpiryTime int64 // unix milliseconds, 0 means never
	Enable     bool
	TgID       wire.Ident
	SubID      string
	Comment    string
	Reset      int
	Method     string
	InboundID  int
}

var clientSchema = wire.NewSchema("Client",
	wire.Identifier(ClientID, "id", func(c *Client) *wire.Ident { return &c.ID }),
	wire.String(ClientSecurity, "security", "", func(c *Client) *string { return &c.Security }),
	wire.String(ClientPassword, "password", "", func(c *Client) *string { return &c.Password }),
	wire.String(ClientFlow, "flow", "", func(c *Client) *string { return &c.Flow }),
	wire.String(ClientEmail, "email", "", func(c *Client) *string { return &c.Email }).Required(),
	wire.Int(ClientLimitIP, "limit_ip", 0, func(c *Client) *int { return &c.LimitIP }),
	wire.Int64(ClientTotalGB, "total_gb", 0, func(c *Client) *int64 { return &c.TotalGB }),
	wire.Int64(ClientExpiryTime, "expiry_time", 0, func(c *Client) *int64 { return &c.ExpiryTime }),
	wire.Bool(ClientEnable, "enable", false, func(c *Client) *bool { return &c.Enable }).Required(),
	wire.Identifier(ClientTgID, "tg_id", func(c *Client) *wire.Ident { return &c.TgID }),
	wire.String(ClientSubID, "sub_id", "", func(c *Client) *string { return &c.SubID }),
	wire.String(ClientComment, "comment", "", func(c *Client) *string { return &c.Comment }),
	wire.Int(ClientReset, "reset", 0, func(c *Client) *int { return &c.Reset }),
	wire.String(ClientMethod, "method", "", func(c *Client) *string { return &c.Method }),
	wire.Int(ClientInboundID, "inbound_id", 0, func(c *Client) *int { return &c.InboundID }),
)

// NewClient creates an enabled vless/vmess client with a fresh UUID and
// subscription id. The Telegram id is a numeric 0, as current panels expect.
func NewClient(email string) Client {
	c := clientSchema.Defaults()
	c.ID = wire.TextIdent(uuid.NewString())
	c.Email = email
	c.Enable = true
	c.TgID = wire.NumberIdent(0)
	c.SubID = GenerateSubID()
	return c
}

// NewClientFor creates a client with the credential the inbound protocol
// authenticates with: a UUID id for vless/vmess, a password for trojan and
// shadowsocks.
func NewClientFor(protocol, email string) Client {
	c := NewClient(email)
	switch strings.ToLower(protocol) {
	case "trojan":
		c.Password = c.ID.Value
		c.ID = wire.Ident{}
	case "shadowsocks":
		c.Password = generateKey()
		c.ID = wire.Ident{}
	}
	return c
}

// UnmarshalJSON decodes a client given as an object or as JSON text
func (c *Client) UnmarshalJSON(data []byte) error {
	return clientSchema.DecodeSubdocument(data, c)
}

// MarshalJSON encodes the client with wire field names
func (c Client) MarshalJSON() ([]byte, error) {
	return clientSchema.Encode(&c)
}

// Equal reports whether both clients hold the same values
func (c Client) Equal(other Client) bool {
	return c == other
}

// String enumerates every field
func (c Client) String() string {
	return clientSchema.Describe(&c)
}

// subIDLength is the length of the subscription ids the panel generates
const subIDLength = 16

// GenerateSubID returns a random alphanumeric subscription id
func GenerateSubID() string {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return strings.ReplaceAll(uuid.NewString(), "-", "")[:subIDLength]
	}

	id := strings.NewReplacer("-", "", "_", "").Replace(base64.RawURLEncoding.EncodeToString(raw))
	if len(id) > subIDLength {
		id = id[:subIDLength]
	}
	return id
}

func generateKey() string {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	return base64.StdEncoding.EncodeToString(raw)
}
