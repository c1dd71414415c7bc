package constants

const (
	// Panel endpoints, relative to the panel base URL
	EndpointLogin              = "login"
	EndpointSettingAll         = "panel/setting/all"
	EndpointSettingUpdate      = "panel/setting/update"
	EndpointSettingRestart     = "panel/setting/restartPanel"
	EndpointInboundList        = "panel/api/inbounds/list"
	EndpointInboundGetTemplate = "panel/api/inbounds/get/%d"
	EndpointInboundAddClient   = "panel/api/inbounds/addClient"
	EndpointInboundResetClient = "panel/api/inbounds/%d/resetClientTraffic/%s"

	// Traffic constants
	BytesInGB = 1024 * 1024 * 1024

	// Network constants
	DefaultTimeout          = 30
	DefaultRetryCount       = 0
	DefaultRetryWaitTime    = 5
	DefaultRetryMaxWaitTime = 20

	// Cache constants
	CacheExpiration      = 30 // minutes
	CacheCleanupInterval = 10 // minutes
	SessionCacheKey      = "session"

	// Formatting constants
	MaxEmailDisplayLength = 17
	MaxEmailSuffixLength  = 14
	TimestampFormat       = "2006-01-02 15:04:05"

	// QR code constants
	QRCodeSize = 256
)
