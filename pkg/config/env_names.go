package config

// EnvPrefix is passed to envconfig; individual fields carry full names so the
// prefix only matters for fields without explicit tags.
const EnvPrefix = "DUKAAN"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	EnvAppEnv   = "DUKAAN_APP_ENV"
	EnvPort     = "DUKAAN_APP_PORT"
	EnvDBDSN    = "DUKAAN_DB_DSN"
	EnvDBHost   = "DUKAAN_DB_HOST"
	EnvDBUser   = "DUKAAN_DB_USER"
	EnvDBName   = "DUKAAN_DB_NAME"
	EnvRedisURL = "DUKAAN_REDIS_URL"

	EnvJWTSecret  = "DUKAAN_JWT_SECRET"
	EnvJWTIssuer  = "DUKAAN_JWT_ISSUER"
	EnvJWTExpMins = "DUKAAN_JWT_EXPIRATION_MINUTES"

	EnvInvoiceIssuerName = "DUKAAN_INVOICE_ISSUER_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
