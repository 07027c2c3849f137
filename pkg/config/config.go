package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	RateLimit    RateLimitConfig
	Checkout     CheckoutConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	Push         PushConfig
	Maintenance  MaintenanceConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(cfg.FeatureFlags.UseSQLite); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" required:"true"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
	// CORSOrigins is a comma separated allow-list; empty keeps the built-in defaults.
	CORSOrigins []string `envconfig:"STOREFRONT_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"STOREFRONT_DB_DSN"`
	Driver string `envconfig:"STOREFRONT_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"STOREFRONT_DB_HOST"`
	Port     int    `envconfig:"STOREFRONT_DB_PORT" default:"5432"`
	User     string `envconfig:"STOREFRONT_DB_USER"`
	Password string `envconfig:"STOREFRONT_DB_PASSWORD"`
	Name     string `envconfig:"STOREFRONT_DB_NAME"`
	SSLMode  string `envconfig:"STOREFRONT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STOREFRONT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STOREFRONT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"3s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"STOREFRONT_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"STOREFRONT_JWT_ISSUER" default:"storefront"`
	ExpirationMinutes int    `envconfig:"STOREFRONT_JWT_EXPIRATION_MINUTES" default:"720"`
}

// TokenTTL returns the admin access token lifetime.
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 12 * time.Hour
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"STOREFRONT_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"STOREFRONT_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"STOREFRONT_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"STOREFRONT_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"STOREFRONT_ARGON_KEY_LEN" default:"32"`
}

type RateLimitConfig struct {
	CheckoutWindow time.Duration `envconfig:"STOREFRONT_RATE_LIMIT_CHECKOUT_WINDOW" default:"1m"`
	CheckoutLimit  int           `envconfig:"STOREFRONT_RATE_LIMIT_CHECKOUT_LIMIT" default:"5"`
	LoginWindow    time.Duration `envconfig:"STOREFRONT_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginLimit     int           `envconfig:"STOREFRONT_RATE_LIMIT_LOGIN_LIMIT" default:"10"`
	// TrustedProxies lists the peers (IPs or CIDRs) allowed to set
	// X-Forwarded-For. Empty means the TCP peer is always the client.
	TrustedProxies ProxyList `envconfig:"STOREFRONT_RATE_LIMIT_TRUSTED_PROXIES"`
}

type CheckoutConfig struct {
	DefaultShippingCents int64         `envconfig:"STOREFRONT_CHECKOUT_DEFAULT_SHIPPING_CENTS" default:"0"`
	Currency             string        `envconfig:"STOREFRONT_CHECKOUT_CURRENCY" default:"PKR"`
	IdempotencyTTL       time.Duration `envconfig:"STOREFRONT_CHECKOUT_IDEMPOTENCY_TTL" default:"24h"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"STOREFRONT_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"STOREFRONT_AUTO_MIGRATE" default:"false"`
	// LiveEvents toggles the Pub/Sub relay behind /api/admin/events.
	LiveEvents bool `envconfig:"STOREFRONT_FEATURE_LIVE_EVENTS" default:"true"`
}

// MaintenanceConfig drives the retention worker.
type MaintenanceConfig struct {
	Interval              time.Duration `envconfig:"STOREFRONT_MAINTENANCE_INTERVAL" default:"6h"`
	NotificationRetention time.Duration `envconfig:"STOREFRONT_MAINTENANCE_NOTIFICATION_RETENTION" default:"720h"`
	ActivityRetention     time.Duration `envconfig:"STOREFRONT_MAINTENANCE_ACTIVITY_RETENTION" default:"2160h"`
	LockTTL               time.Duration `envconfig:"STOREFRONT_MAINTENANCE_LOCK_TTL" default:"30m"`
}

type GCPConfig struct {
	ProjectID       string `envconfig:"STOREFRONT_GCP_PROJECT_ID"`
	CredentialsJSON string `envconfig:"STOREFRONT_GCP_CREDENTIALS_JSON"`
}

type PubSubConfig struct {
	AdminOrdersTopic        string `envconfig:"STOREFRONT_PUBSUB_ADMIN_ORDERS_TOPIC" default:"admin-orders"`
	AdminOrdersSubscription string `envconfig:"STOREFRONT_PUBSUB_ADMIN_ORDERS_SUBSCRIPTION"`
}

// Enabled reports whether a Pub/Sub project is configured.
func (p PubSubConfig) Enabled(gcp GCPConfig) bool {
	return strings.TrimSpace(gcp.ProjectID) != "" && strings.TrimSpace(p.AdminOrdersTopic) != ""
}

type PushConfig struct {
	Endpoint string        `envconfig:"STOREFRONT_PUSH_ENDPOINT"`
	Token    string        `envconfig:"STOREFRONT_PUSH_TOKEN"`
	Timeout  time.Duration `envconfig:"STOREFRONT_PUSH_TIMEOUT" default:"3s"`
}

func (db *DBConfig) ensureDSN(sqlite bool) error {
	if db.DSN != "" {
		return nil
	}
	if sqlite {
		db.DSN = "file:storefront.db?cache=shared"
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range discreteDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
