package config

const EnvPrefix = "DROPTRACKER"

const AppEnvDev = "dev"

const (
	DBDriverSQLite   = "sqlite"
	DBDriverPostgres = "postgres"

	DefaultSQLiteDSN     = "file:data/droptracker.db?_foreign_keys=on&_busy_timeout=5000"
	DefaultAdminPassword = "admin123"
)

const (
	EnvAppEnv              = "DROPTRACKER_APP_ENV"
	EnvPort                = "DROPTRACKER_APP_PORT"
	EnvLogFormat           = "DROPTRACKER_LOG_FORMAT"
	EnvDBDriver            = "DROPTRACKER_DB_DRIVER"
	EnvDBDSN               = "DROPTRACKER_DB_DSN"
	EnvRedisURL            = "DROPTRACKER_REDIS_URL"
	EnvJWTSecret           = "DROPTRACKER_JWT_SECRET"
	EnvJWTIssuer           = "DROPTRACKER_JWT_ISSUER"
	EnvJWTExpMins          = "DROPTRACKER_JWT_EXPIRATION_MINUTES"
	EnvAdminUsername       = "DROPTRACKER_ADMIN_USERNAME"
	EnvAdminPassword       = "DROPTRACKER_ADMIN_PASSWORD"
	EnvReportsTimezone     = "DROPTRACKER_REPORTS_TIMEZONE"
	EnvReportsStrictPeriod = "DROPTRACKER_REPORTS_STRICT_PERIOD"
	EnvCORSAllowedOrigins  = "DROPTRACKER_CORS_ALLOWED_ORIGINS"
)
