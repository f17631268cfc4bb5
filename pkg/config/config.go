package config

import (
	"fmt"
	"net/url"
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
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Bootstrap     BootstrapConfig
	Invoice       InvoiceConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"DUKAAN_APP_ENV" required:"true"`
	Port         string `envconfig:"DUKAAN_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"DUKAAN_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DUKAAN_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"DUKAAN_DB_DSN"`
	Driver string `envconfig:"DUKAAN_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"DUKAAN_DB_HOST"`
	LegacyPort     int    `envconfig:"DUKAAN_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"DUKAAN_DB_USER"`
	LegacyPassword string `envconfig:"DUKAAN_DB_PASSWORD"`
	LegacyName     string `envconfig:"DUKAAN_DB_NAME"`
	LegacySSLMode  string `envconfig:"DUKAAN_DB_SSLMODE" default:"disable"`

	SQLitePath string `envconfig:"DUKAAN_SQLITE_PATH" default:"dukaan.db"`

	MaxOpenConns    int           `envconfig:"DUKAAN_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"DUKAAN_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"DUKAAN_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DUKAAN_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"DUKAAN_REDIS_URL"`
	Address      string        `envconfig:"DUKAAN_REDIS_ADDR"`
	Password     string        `envconfig:"DUKAAN_REDIS_PASSWORD"`
	DB           int           `envconfig:"DUKAAN_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"DUKAAN_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DUKAAN_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DUKAAN_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DUKAAN_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DUKAAN_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint was configured at all.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"DUKAAN_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"DUKAAN_JWT_ISSUER" default:"dukaan"`
	ExpirationMinutes int    `envconfig:"DUKAAN_JWT_EXPIRATION_MINUTES" default:"720"`
}

// AccessTokenTTL returns the access token lifetime.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"DUKAAN_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"DUKAAN_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"DUKAAN_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"DUKAAN_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"DUKAAN_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow    time.Duration `envconfig:"DUKAAN_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUserLimit int           `envconfig:"DUKAAN_AUTH_RATE_LIMIT_LOGIN_USER_LIMIT" default:"5"`
	LoginIPLimit   int           `envconfig:"DUKAAN_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

// BootstrapConfig seeds the first operator login when the table is empty.
// Leaving the password unset skips seeding entirely.
type BootstrapConfig struct {
	OperatorUsername string `envconfig:"DUKAAN_BOOTSTRAP_OPERATOR_USERNAME" default:"admin"`
	OperatorPassword string `envconfig:"DUKAAN_BOOTSTRAP_OPERATOR_PASSWORD"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"DUKAAN_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"DUKAAN_AUTO_MIGRATE" default:"false"`
}

type InvoiceConfig struct {
	IssuerName    string        `envconfig:"DUKAAN_INVOICE_ISSUER_NAME" required:"true"`
	IssuerTagline string        `envconfig:"DUKAAN_INVOICE_ISSUER_TAGLINE"`
	IssuerContact string        `envconfig:"DUKAAN_INVOICE_ISSUER_CONTACT"`
	IssuerGSTIN   string        `envconfig:"DUKAAN_INVOICE_ISSUER_GSTIN"`
	LogoURL       string        `envconfig:"DUKAAN_INVOICE_LOGO_URL"`
	WatermarkURL  string        `envconfig:"DUKAAN_INVOICE_WATERMARK_URL"`
	PaymentQRURL  string        `envconfig:"DUKAAN_INVOICE_PAYMENT_QR_URL"`
	AssetTimeout  time.Duration `envconfig:"DUKAAN_INVOICE_ASSET_TIMEOUT" default:"3s"`
	CacheTTL      time.Duration `envconfig:"DUKAAN_INVOICE_CACHE_TTL" default:"24h"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.Driver == DriverSQLite {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
