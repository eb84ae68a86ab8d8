package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Password  PasswordConfig
	RateLimit RateLimitConfig
	Flags     FeatureFlagsConfig
	Pricing   PricingConfig
	Uploads   UploadConfig
	Checkout  CheckoutConfig
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
	Env          string `envconfig:"NGO_APP_ENV" required:"true"`
	Port         string `envconfig:"NGO_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"NGO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"NGO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"NGO_DB_DSN"`
	Driver string `envconfig:"NGO_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"NGO_DB_HOST"`
	Port     int    `envconfig:"NGO_DB_PORT" default:"5432"`
	User     string `envconfig:"NGO_DB_USER"`
	Password string `envconfig:"NGO_DB_PASSWORD"`
	Name     string `envconfig:"NGO_DB_NAME"`
	SSLMode  string `envconfig:"NGO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"NGO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"NGO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"NGO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"NGO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"NGO_REDIS_URL"`
	Address      string        `envconfig:"NGO_REDIS_ADDR"`
	Password     string        `envconfig:"NGO_REDIS_PASSWORD"`
	DB           int           `envconfig:"NGO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"NGO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"NGO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"NGO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"NGO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"NGO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"NGO_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"NGO_JWT_ISSUER" default:"nextgen-organic"`
	ExpirationMinutes int    `envconfig:"NGO_JWT_EXPIRATION_MINUTES" default:"120"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"NGO_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"NGO_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"NGO_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"NGO_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"NGO_ARGON_KEY_LEN" default:"32"`
}

type RateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"NGO_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"NGO_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"NGO_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"NGO_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"NGO_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"NGO_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"NGO_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"NGO_AUTO_MIGRATE" default:"false"`
}

// PricingConfig tunes the cart pricing calculator.
type PricingConfig struct {
	// FreeDeliveryThreshold waives a vendor's delivery fee once that
	// vendor's discounted subtotal reaches it.
	FreeDeliveryThreshold string `envconfig:"NGO_FREE_DELIVERY_THRESHOLD" default:"500"`
}

// FreeDeliveryThresholdAmount parses the configured threshold, falling back
// to the default when the value is unparseable.
func (p PricingConfig) FreeDeliveryThresholdAmount() decimal.Decimal {
	if amount, err := decimal.NewFromString(strings.TrimSpace(p.FreeDeliveryThreshold)); err == nil && amount.IsPositive() {
		return amount
	}
	return decimal.NewFromInt(DefaultFreeDeliveryThreshold)
}

type UploadConfig struct {
	MaxDocumentMB int    `envconfig:"NGO_MAX_DOCUMENT_MB" default:"10"`
	DocumentDir   string `envconfig:"NGO_DOCUMENT_DIR" default:"./uploads"`
}

// MaxDocumentBytes converts the configured megabyte cap into bytes.
func (u UploadConfig) MaxDocumentBytes() int64 {
	mb := u.MaxDocumentMB
	if mb <= 0 {
		mb = 10
	}
	return int64(mb) << 20
}

type CheckoutConfig struct {
	SessionTTL time.Duration `envconfig:"NGO_CHECKOUT_SESSION_TTL" default:"1h"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	var missing []string
	if db.Host == "" {
		missing = append(missing, EnvDBHost)
	}
	if db.User == "" {
		missing = append(missing, EnvDBUser)
	}
	if db.Name == "" {
		missing = append(missing, EnvDBName)
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
