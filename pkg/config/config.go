package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	Admin         AdminConfig
	Catalog       CatalogConfig
	Reports       ReportsConfig
	AuthRateLimit AuthRateLimitConfig
	CORS          CORSConfig
	Metrics       MetricsConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if _, err := cfg.Reports.Location(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env             string        `envconfig:"DROPTRACKER_APP_ENV" default:"dev"`
	Port            string        `envconfig:"DROPTRACKER_APP_PORT" default:"3001"`
	LogLevel        string        `envconfig:"DROPTRACKER_LOG_LEVEL" default:"info"`
	LogWarnStack    bool          `envconfig:"DROPTRACKER_LOG_WARN_STACK" default:"false"`
	LogFormat       string        `envconfig:"DROPTRACKER_LOG_FORMAT"`
	ShutdownTimeout time.Duration `envconfig:"DROPTRACKER_SHUTDOWN_TIMEOUT" default:"10s"`
}

// LogOutputFormat picks the logger format. An explicit DROPTRACKER_LOG_FORMAT
// wins; dev defaults to console output, every other env leaves it to the logger.
func (a AppConfig) LogOutputFormat() string {
	if a.LogFormat != "" {
		return strings.ToLower(a.LogFormat)
	}
	if strings.EqualFold(a.Env, AppEnvDev) {
		return "console"
	}
	return ""
}

type DBConfig struct {
	Driver string `envconfig:"DROPTRACKER_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"DROPTRACKER_DB_DSN"`

	MaxOpenConns    int           `envconfig:"DROPTRACKER_DB_MAX_OPEN_CONNS" default:"0"`
	MaxIdleConns    int           `envconfig:"DROPTRACKER_DB_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"DROPTRACKER_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DROPTRACKER_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the embedded engine is selected.
func (d DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(d.Driver), DBDriverSQLite)
}

// OpenConns returns the pool limit, defaulting to a single writer for sqlite.
func (d DBConfig) OpenConns() int {
	if d.MaxOpenConns > 0 {
		return d.MaxOpenConns
	}
	if d.IsSQLite() {
		return 1
	}
	return 20
}

type RedisConfig struct {
	URL          string        `envconfig:"DROPTRACKER_REDIS_URL"`
	Address      string        `envconfig:"DROPTRACKER_REDIS_ADDR"`
	Password     string        `envconfig:"DROPTRACKER_REDIS_PASSWORD"`
	DB           int           `envconfig:"DROPTRACKER_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"DROPTRACKER_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DROPTRACKER_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DROPTRACKER_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DROPTRACKER_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DROPTRACKER_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"DROPTRACKER_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"DROPTRACKER_JWT_ISSUER" default:"droptracker"`
	ExpirationMinutes int    `envconfig:"DROPTRACKER_JWT_EXPIRATION_MINUTES" default:"1440"`
}

// TTL returns the session lifetime.
func (j JWTConfig) TTL() time.Duration {
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"DROPTRACKER_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"DROPTRACKER_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"DROPTRACKER_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"DROPTRACKER_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"DROPTRACKER_ARGON_KEY_LEN" default:"32"`
}

type AdminConfig struct {
	Username string `envconfig:"DROPTRACKER_ADMIN_USERNAME" default:"admin"`
	Password string `envconfig:"DROPTRACKER_ADMIN_PASSWORD" default:"admin123"`
}

// UsesDefaultPassword flags the bootstrap password shipped with the project.
func (a AdminConfig) UsesDefaultPassword() bool {
	return a.Password == DefaultAdminPassword
}

type CatalogConfig struct {
	Seed bool `envconfig:"DROPTRACKER_CATALOG_SEED" default:"true"`
}

type ReportsConfig struct {
	Timezone      string `envconfig:"DROPTRACKER_REPORTS_TIMEZONE" default:"UTC"`
	StrictPeriod  bool   `envconfig:"DROPTRACKER_REPORTS_STRICT_PERIOD" default:"false"`
	RecentEntries int    `envconfig:"DROPTRACKER_REPORTS_RECENT_ENTRIES" default:"5"`
}

// Location resolves the timezone that day boundaries are computed in.
func (r ReportsConfig) Location() (*time.Location, error) {
	name := strings.TrimSpace(r.Timezone)
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("loading reports timezone %q: %w", name, err)
	}
	return loc, nil
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"DROPTRACKER_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUsernameLimit int           `envconfig:"DROPTRACKER_AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"DROPTRACKER_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"DROPTRACKER_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type MetricsConfig struct {
	Enabled bool   `envconfig:"DROPTRACKER_METRICS_ENABLED" default:"true"`
	Path    string `envconfig:"DROPTRACKER_METRICS_PATH" default:"/metrics"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"DROPTRACKER_AUTO_MIGRATE" default:"true"`
}

func (db *DBConfig) ensureDSN() error {
	driver := strings.ToLower(strings.TrimSpace(db.Driver))
	switch driver {
	case DBDriverSQLite:
		if db.DSN == "" {
			db.DSN = DefaultSQLiteDSN
		}
	case DBDriverPostgres:
		if db.DSN == "" {
			return fmt.Errorf("%s is required when %s=%s", EnvDBDSN, EnvDBDriver, DBDriverPostgres)
		}
	default:
		return fmt.Errorf("unsupported %s %q", EnvDBDriver, db.Driver)
	}
	db.Driver = driver
	return nil
}
