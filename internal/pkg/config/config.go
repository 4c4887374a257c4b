package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Booking BookingConfig
	Payment PaymentConfig
	Redis   RedisConfig
	AMQP    AMQPConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Location"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Dhaka"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"21600"` // 6*60*60
}

// Tokens are issued by the identity service; only the shared secret lives here.
type JWTConfig struct {
	Secret   string        `envconfig:"JWT_SECRET" required:"true"`
	Duration string        `envconfig:"JWT_DURATION" default:"24h"`
	Issuer   string        `envconfig:"JWT_ISSUER" default:"localscout-identity"`
	Leeway   time.Duration `envconfig:"JWT_LEEWAY" default:"30s"`
}

type BookingConfig struct {
	TimeZone string `envconfig:"BOOKING_TIMEZONE" default:"Asia/Dhaka"`
	Currency string `envconfig:"BOOKING_CURRENCY" default:"BDT"`
}

type PaymentConfig struct {
	// sslcommerz or mercadopago
	Driver            string        `envconfig:"PAYMENT_DRIVER" default:"sslcommerz"`
	StoreID           string        `envconfig:"PAYMENT_STORE_ID"`
	StorePassword     string        `envconfig:"PAYMENT_STORE_PASSWORD"`
	BaseURL           string        `envconfig:"PAYMENT_BASE_URL" default:"https://sandbox.sslcommerz.com"`
	AccessToken       string        `envconfig:"PAYMENT_ACCESS_TOKEN"`
	PublicBaseURL     string        `envconfig:"PAYMENT_PUBLIC_BASE_URL" default:"http://localhost:8080"`
	CheckoutTimeout   time.Duration `envconfig:"PAYMENT_CHECKOUT_TIMEOUT" default:"15s"`
	ValidationTimeout time.Duration `envconfig:"PAYMENT_VALIDATION_TIMEOUT" default:"10s"`
	LookupTTL         time.Duration `envconfig:"PAYMENT_LOOKUP_TTL" default:"72h"`
}

// Empty Addr disables the checkout lookup; webhooks then rely on parsing the transaction id.
type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
	Prefix   string `envconfig:"REDIS_KEY_PREFIX" default:"localscout:checkout:"`
}

// Empty URL disables event publishing.
type AMQPConfig struct {
	URL      string `envconfig:"AMQP_URL"`
	Exchange string `envconfig:"AMQP_EXCHANGE" default:"localscout.bookings"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c PaymentConfig) CallbackURL(path string) string {
	return c.PublicBaseURL + path
}

func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Dhaka",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 21600,
		},
		JWT: JWTConfig{
			Secret:   "test-secret-key-for-e2e-only",
			Duration: "1h",
			Issuer:   "localscout-identity",
		},
		Booking: BookingConfig{
			TimeZone: "Asia/Dhaka",
			Currency: "BDT",
		},
		Payment: PaymentConfig{
			Driver:            "sslcommerz",
			StoreID:           "teststore",
			StorePassword:     "teststore@ssl",
			BaseURL:           "http://127.0.0.1:0",
			PublicBaseURL:     "http://localhost:8889",
			CheckoutTimeout:   2 * time.Second,
			ValidationTimeout: 2 * time.Second,
			LookupTTL:         time.Hour,
		},
		Redis: RedisConfig{
			Prefix: "localscout:test:checkout:",
		},
	}
}
