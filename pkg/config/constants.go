package config

const EnvPrefix = "employee_gw"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv              = "EMPLOYEE_GW_APP_ENV"
	EnvPort                = "EMPLOYEE_GW_APP_PORT"
	EnvLogLevel            = "EMPLOYEE_GW_LOG_LEVEL"
	EnvUpstreamBaseURL     = "EMPLOYEE_GW_UPSTREAM_BASE_URL"
	EnvUpstreamMaxAttempts = "EMPLOYEE_GW_UPSTREAM_MAX_ATTEMPTS"
	EnvUpstreamRetryDelay  = "EMPLOYEE_GW_UPSTREAM_RETRY_DELAY"
	EnvUpstreamHTTPTimeout = "EMPLOYEE_GW_UPSTREAM_HTTP_TIMEOUT"
)
