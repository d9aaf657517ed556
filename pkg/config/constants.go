package config

// EnvPrefix is the envconfig prefix applied to every variable.
const EnvPrefix = "livemart"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

const (
	EnvAppEnv     = "LIVEMART_APP_ENV"
	EnvPort       = "LIVEMART_APP_PORT"
	EnvDBDSN      = "LIVEMART_DB_DSN"
	EnvDBHost     = "LIVEMART_DB_HOST"
	EnvDBUser     = "LIVEMART_DB_USER"
	EnvDBName     = "LIVEMART_DB_NAME"
	EnvRedisURL   = "LIVEMART_REDIS_URL"
	EnvJWTSecret  = "LIVEMART_JWT_SECRET"
	EnvJWTIssuer  = "LIVEMART_JWT_ISSUER"
	EnvJWTExpMins = "LIVEMART_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
