package config

const (
	EnvPrefix = "STOREFRONT"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv    = "STOREFRONT_APP_ENV"
	EnvPort      = "STOREFRONT_APP_PORT"
	EnvLogLevel  = "STOREFRONT_LOG_LEVEL"
	EnvDBDSN     = "STOREFRONT_DB_DSN"
	EnvDBHost    = "STOREFRONT_DB_HOST"
	EnvDBPort    = "STOREFRONT_DB_PORT"
	EnvDBUser    = "STOREFRONT_DB_USER"
	EnvDBName    = "STOREFRONT_DB_NAME"
	EnvRedisURL  = "STOREFRONT_REDIS_URL"
	EnvJWTSecret = "STOREFRONT_JWT_SECRET"
	EnvUseSQLite = "STOREFRONT_USE_SQLITE"

	EnvCheckoutLimit        = "STOREFRONT_RATE_LIMIT_CHECKOUT_LIMIT"
	EnvDefaultShippingCents = "STOREFRONT_CHECKOUT_DEFAULT_SHIPPING_CENTS"
	EnvGCPProjectID         = "STOREFRONT_GCP_PROJECT_ID"
	EnvPubSubTopic          = "STOREFRONT_PUBSUB_ADMIN_ORDERS_TOPIC"
	EnvPubSubSubscription   = "STOREFRONT_PUBSUB_ADMIN_ORDERS_SUBSCRIPTION"
	EnvPushEndpoint         = "STOREFRONT_PUSH_ENDPOINT"
	EnvCORSOrigins          = "STOREFRONT_CORS_ORIGINS"
	EnvTrustedProxies       = "STOREFRONT_RATE_LIMIT_TRUSTED_PROXIES"
)

var discreteDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
