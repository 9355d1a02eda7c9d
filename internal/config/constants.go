package config

// Default values
const (
	DefaultPort               = 8080
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "text"
	DefaultLogDir             = "logs"
	DefaultEnvironment        = "dev"
	DefaultServiceName        = "buzzhive"
	DefaultVersion            = "dev"
	DefaultStoreDriver        = "postgres"
	DefaultSQLitePath         = "buzzhive.db"
	DefaultDBName             = "buzzhive"
	DefaultDBMaxConns         = 20
	DefaultGeminiModel        = "gemini-2.0-flash"
	DefaultGeminiBaseURL      = "https://generativelanguage.googleapis.com"
	DefaultSnapshotCacheSize  = 1024
	DefaultTipsRateLimit      = 0.2
	DefaultTipsRateBurst      = 3
	DefaultMaxOfflineHours    = 12.0
	DefaultTrustedProxiesList = ""

	maxSensibleOfflineHours = 48.0
)

// Store drivers
const (
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
)
