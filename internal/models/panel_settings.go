package models

import (
	"encoding/json"

	"xui-panel-client/internal/wire"
)

// Wire names of the panel settings fields
const (
	PanelSettingsWebListen        = "webListen"
	PanelSettingsWebDomain        = "webDomain"
	PanelSettingsWebPort          = "webPort"
	PanelSettingsWebCertFile      = "webCertFile"
	PanelSettingsWebKeyFile       = "webKeyFile"
	PanelSettingsWebBasePath      = "webBasePath"
	PanelSettingsSessionMaxAge    = "sessionMaxAge"
	PanelSettingsPageSize         = "pageSize"
	PanelSettingsExpireDiff       = "expireDiff"
	PanelSettingsTrafficDiff      = "trafficDiff"
	PanelSettingsRemarkModel      = "remarkModel"
	PanelSettingsTgBotEnable      = "tgBotEnable"
	PanelSettingsTgBotToken       = "tgBotToken"
	PanelSettingsTgBotProxy       = "tgBotProxy"
	PanelSettingsTgBotAPIServer   = "tgBotAPIServer"
	PanelSettingsTgBotChatID      = "tgBotChatId"
	PanelSettingsTgRunTime        = "tgRunTime"
	PanelSettingsTgBotBackup      = "tgBotBackup"
	PanelSettingsTgBotLoginNotify = "tgBotLoginNotify"
	PanelSettingsTgCPU            = "tgCpu"
	PanelSettingsTgLang           = "tgLang"
	PanelSettingsTimeLocation     = "timeLocation"
	PanelSettingsSecretEnable     = "secretEnable"
	PanelSettingsSubEnable        = "subEnable"
	PanelSettingsSubListen        = "subListen"
	PanelSettingsSubPort          = "subPort"
	PanelSettingsSubPath          = "subPath"
	PanelSettingsSubDomain        = "subDomain"
	PanelSettingsSubCertFile      = "subCertFile"
	PanelSettingsSubKeyFile       = "subKeyFile"
	PanelSettingsSubUpdates       = "subUpdates"
	PanelSettingsSubEncrypt       = "subEncrypt"
	PanelSettingsSubShowInfo      = "subShowInfo"
	PanelSettingsSubURI           = "subURI"
	PanelSettingsSubJSONPath      = "subJsonPath"
	PanelSettingsSubJSONURI       = "subJsonURI"
	PanelSettingsSubJSONFragment  = "subJsonFragment"
	PanelSettingsSubJSONNoises    = "subJsonNoises"
	PanelSettingsSubJSONMux       = "subJsonMux"
	PanelSettingsSubJSONRules     = "subJsonRules"
	PanelSettingsDatepicker       = "datepicker"
)

// PanelSettings represents the settings of the panel as returned by
// panel/setting/all. Every field has a default, so a partial payload still
// yields a complete record.
type PanelSettings struct {
	WebListen        string // Web server listen address
	WebDomain        string // Domain the web server answers for
	WebPort          int    // Web server port
	WebCertFile      string
	WebKeyFile       string
	WebBasePath      string // Base path of the web interface
	SessionMaxAge    int    // Minutes
	PageSize         int
	ExpireDiff       int
	TrafficDiff      int
	RemarkModel      string
	TgBotEnable      bool
	TgBotToken       string
	TgBotProxy       string
	TgBotAPIServer   string
	TgBotChatID      string // Comma separated chat ids
	TgRunTime        string // Cron spec of the bot reports
	TgBotBackup      bool
	TgBotLoginNotify bool
	TgCPU            int // CPU threshold in percent
	TgLang           string
	TimeLocation     string
	SecretEnable     bool
	SubEnable        bool
	SubListen        string
	SubPort          int
	SubPath          string
	SubDomain        string
	SubCertFile      string
	SubKeyFile       string
	SubUpdates       int // Hours between client refreshes
	SubEncrypt       bool
	SubShowInfo      bool
	SubURI           string
	SubJSONPath      string
	SubJSONURI       string
	SubJSONFragment  string
	SubJSONNoises    string
	SubJSONMux       string
	SubJSONRules     string
	Datepicker       string
}

var panelSettingsSchema = wire.NewSchema("PanelSettings",
	wire.String(PanelSettingsWebListen, "web_listen", "", func(s *PanelSettings) *string { return &s.WebListen }),
	wire.String(PanelSettingsWebDomain, "web_domain", "", func(s *PanelSettings) *string { return &s.WebDomain }),
	wire.Int(PanelSettingsWebPort, "web_port", 0, func(s *PanelSettings) *int { return &s.WebPort }),
	wire.String(PanelSettingsWebCertFile, "web_cert_file", "", func(s *PanelSettings) *string { return &s.WebCertFile }),
	wire.String(PanelSettingsWebKeyFile, "web_key_file", "", func(s *PanelSettings) *string { return &s.WebKeyFile }),
	wire.String(PanelSettingsWebBasePath, "web_base_path", "", func(s *PanelSettings) *string { return &s.WebBasePath }),
	wire.Int(PanelSettingsSessionMaxAge, "session_max_age", 60, func(s *PanelSettings) *int { return &s.SessionMaxAge }),
	wire.Int(PanelSettingsPageSize, "page_size", 50, func(s *PanelSettings) *int { return &s.PageSize }),
	wire.Int(PanelSettingsExpireDiff, "expire_diff", 0, func(s *PanelSettings) *int { return &s.ExpireDiff }),
	wire.Int(PanelSettingsTrafficDiff, "traffic_diff", 0, func(s *PanelSettings) *int { return &s.TrafficDiff }),
	wire.String(PanelSettingsRemarkModel, "remark_model", "-ieo", func(s *PanelSettings) *string { return &s.RemarkModel }),
	wire.Bool(PanelSettingsTgBotEnable, "tg_bot_enable", false, func(s *PanelSettings) *bool { return &s.TgBotEnable }),
	wire.String(PanelSettingsTgBotToken, "tg_bot_token", "", func(s *PanelSettings) *string { return &s.TgBotToken }),
	wire.String(PanelSettingsTgBotProxy, "tg_bot_proxy", "", func(s *PanelSettings) *string { return &s.TgBotProxy }),
	wire.String(PanelSettingsTgBotAPIServer, "tg_bot_api_server", "", func(s *PanelSettings) *string { return &s.TgBotAPIServer }),
	wire.String(PanelSettingsTgBotChatID, "tg_bot_chat_id", "", func(s *PanelSettings) *string { return &s.TgBotChatID }),
	wire.String(PanelSettingsTgRunTime, "tg_run_time", "@daily", func(s *PanelSettings) *string { return &s.TgRunTime }),
	wire.Bool(PanelSettingsTgBotBackup, "tg_bot_backup", false, func(s *PanelSettings) *bool { return &s.TgBotBackup }),
	wire.Bool(PanelSettingsTgBotLoginNotify, "tg_bot_login_notify", true, func(s *PanelSettings) *bool { return &s.TgBotLoginNotify }),
	wire.Int(PanelSettingsTgCPU, "tg_cpu", 80, func(s *PanelSettings) *int { return &s.TgCPU }),
	wire.String(PanelSettingsTgLang, "tg_lang", "en-US", func(s *PanelSettings) *string { return &s.TgLang }),
	wire.String(PanelSettingsTimeLocation, "time_location", "Asia/Tehran", func(s *PanelSettings) *string { return &s.TimeLocation }),
	wire.Bool(PanelSettingsSecretEnable, "secret_enable", false, func(s *PanelSettings) *bool { return &s.SecretEnable }),
	wire.Bool(PanelSettingsSubEnable, "sub_enable", false, func(s *PanelSettings) *bool { return &s.SubEnable }),
	wire.String(PanelSettingsSubListen, "sub_listen", "", func(s *PanelSettings) *string { return &s.SubListen }),
	wire.Int(PanelSettingsSubPort, "sub_port", 2096, func(s *PanelSettings) *int { return &s.SubPort }),
	wire.String(PanelSettingsSubPath, "sub_path", "/sub/", func(s *PanelSettings) *string { return &s.SubPath }),
	wire.String(PanelSettingsSubDomain, "sub_domain", "", func(s *PanelSettings) *string { return &s.SubDomain }),
	wire.String(PanelSettingsSubCertFile, "sub_cert_file", "", func(s *PanelSettings) *string { return &s.SubCertFile }),
	wire.String(PanelSettingsSubKeyFile, "sub_key_file", "", func(s *PanelSettings) *string { return &s.SubKeyFile }),
	wire.Int(PanelSettingsSubUpdates, "sub_updates", 12, func(s *PanelSettings) *int { return &s.SubUpdates }),
	wire.Bool(PanelSettingsSubEncrypt, "sub_encrypt", true, func(s *PanelSettings) *bool { return &s.SubEncrypt }),
	wire.Bool(PanelSettingsSubShowInfo, "sub_show_info", true, func(s *PanelSettings) *bool { return &s.SubShowInfo }),
	wire.String(PanelSettingsSubURI, "sub_uri", "", func(s *PanelSettings) *string { return &s.SubURI }),
	wire.String(PanelSettingsSubJSONPath, "sub_json_path", "/json/", func(s *PanelSettings) *string { return &s.SubJSONPath }),
	wire.String(PanelSettingsSubJSONURI, "sub_json_uri", "", func(s *PanelSettings) *string { return &s.SubJSONURI }),
	wire.String(PanelSettingsSubJSONFragment, "sub_json_fragment", "", func(s *PanelSettings) *string { return &s.SubJSONFragment }),
	wire.String(PanelSettingsSubJSONNoises, "sub_json_noises", "", func(s *PanelSettings) *string { return &s.SubJSONNoises }),
	wire.String(PanelSettingsSubJSONMux, "sub_json_mux", "", func(s *PanelSettings) *string { return &s.SubJSONMux }),
	wire.String(PanelSettingsSubJSONRules, "sub_json_rules", "", func(s *PanelSettings) *string { return &s.SubJSONRules }),
	wire.String(PanelSettingsDatepicker, "datepicker", "gregorian", func(s *PanelSettings) *string { return &s.Datepicker }),
)

// PanelSettingsSchema returns the alias table of PanelSettings
func PanelSettingsSchema() *wire.Schema[PanelSettings] {
	return panelSettingsSchema
}

// DefaultPanelSettings returns the settings the panel ships with
func DefaultPanelSettings() PanelSettings {
	return panelSettingsSchema.Defaults()
}

// UnmarshalJSON decodes wire or semantic field names, defaulting absent keys
func (s *PanelSettings) UnmarshalJSON(data []byte) error {
	return panelSettingsSchema.Decode(data, s)
}

// MarshalJSON encodes the settings with wire field names
func (s PanelSettings) MarshalJSON() ([]byte, error) {
	return panelSettingsSchema.Encode(&s)
}

// Set assigns a single field by wire or semantic name
func (s *PanelSettings) Set(key string, raw json.RawMessage) error {
	return panelSettingsSchema.Set(s, key, raw)
}

// Equal reports whether both settings hold the same values
func (s PanelSettings) Equal(other PanelSettings) bool {
	return s == other
}

// String enumerates every field
func (s PanelSettings) String() string {
	return panelSettingsSchema.Describe(&s)
}
