package config

// EnvPrefix is passed to envconfig; individual tags spell the full names.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "FITDESK_DB_DSN"
	EnvDBHost = "FITDESK_DB_HOST"
	EnvDBUser = "FITDESK_DB_USER"
	EnvDBName = "FITDESK_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
