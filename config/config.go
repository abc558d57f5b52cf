package config

import (
	"net"
	"net/url"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server  Server   `envconfig:"SERVER"`
	App     App      `envconfig:"APP"`
	Booking Booking  `envconfig:"BOOKING"`
	Cache   Cache    `envconfig:"CACHE"`
	JWT     JWT      `envconfig:"JWT"`
	DB      Database `envconfig:"DB"`
	Kafka   Kafka    `envconfig:"KAFKA"`
	External struct {
		Otel Otel `envconfig:"OTEL"`
		S3   S3   `envconfig:"S3"`
	} `envconfig:"EXTERNAL"`
}

type Server struct {
	Env      string `envconfig:"ENV"       default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Port     string `envconfig:"PORT"      default:"8080"`
	Host     string `envconfig:"HOST"`
	Shutdown struct {
		CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"10"`
		GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"   default:"5"`
	} `envconfig:"SHUTDOWN"`
}

type App struct {
	Name        string `envconfig:"APP_NAME" default:"guesthouse"`
	Timezone    string `envconfig:"TIMEZONE" default:"UTC"`
	CORS        CORS   `envconfig:"CORS"`
	RateLimiter struct {
		Enable        bool `envconfig:"ENABLE"`
		MaxRequests   int  `envconfig:"MAX_REQUESTS"   default:"60"`
		WindowSeconds int  `envconfig:"WINDOW_SECONDS" default:"60"`
	} `envconfig:"RATE_LIMITER"`
	APIKey string `envconfig:"API_KEY"`
}

type CORS struct {
	AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
	AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
	AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
	AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
	Enable           bool     `envconfig:"ENABLE"`
	MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
}

// Booking holds the rules applied when a guest places a booking.
type Booking struct {
	MaxNights          int    `envconfig:"MAX_NIGHTS"           default:"7"`
	AccessCodeAttempts int    `envconfig:"ACCESS_CODE_ATTEMPTS" default:"5"`
	Currency           string `envconfig:"CURRENCY"             default:"GHS"`
}

type Cache struct {
	Redis struct {
		Primary Redis `envconfig:"PRIMARY"`
	} `envconfig:"REDIS"`
	TTL int `envconfig:"TTL" default:"300"`
}

type Redis struct {
	Host           string `envconfig:"HOST"             default:"localhost"`
	Port           string `envconfig:"PORT"             default:"6379"`
	Password       string `envconfig:"PASSWORD"`
	DB             int    `envconfig:"DB"`
	PoolSize       int    `envconfig:"POOL_SIZE"        default:"10"`
	TimeoutSeconds int    `envconfig:"TIMEOUT_SECONDS"  default:"3"`
}

func (r Redis) Addr() string {
	return net.JoinHostPort(r.Host, r.Port)
}

type JWT struct {
	AccessSecret     string `envconfig:"ACCESS_SECRET"`
	RefreshSecret    string `envconfig:"REFRESH_SECRET"`
	AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"  default:"15"`
	RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN" default:"10080"`
}

type Database struct {
	Postgres Postgres `envconfig:"POSTGRES"`
}

type Postgres struct {
	MaxRetry       int          `envconfig:"MAX_RETRY"       default:"5"`
	RetryWaitTime  int          `envconfig:"RETRY_WAIT_TIME" default:"2"`
	MaxOpenConns   int          `envconfig:"MAX_OPEN_CONNS"  default:"10"`
	MaxIdleConns   int          `envconfig:"MAX_IDLE_CONNS"  default:"10"`
	MigrationTable string       `envconfig:"MIGRATION_TABLE" default:"schema_migrations"`
	AutoMigrate    bool         `envconfig:"AUTO_MIGRATE"`
	Prefix         string       `envconfig:"PREFIX"`
	Read           PostgresNode `envconfig:"READ"`
	Write          PostgresNode `envconfig:"WRITE"`
}

// PostgresNode is one endpoint of the read/write pair.
type PostgresNode struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"     default:"5432"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE"`
	SSLMode  string `envconfig:"SSL_MODE" default:"disable"`
}

// URL renders the node as a postgres:// connection string. The database name
// gets prefix prepended, and extra is merged into the query.
func (n PostgresNode) URL(prefix string, extra url.Values) string {
	query := url.Values{}
	query.Set("sslmode", n.SSLMode)

	if n.Timezone != "" {
		query.Set("timezone", n.Timezone)
	}

	for key, values := range extra {
		query[key] = values
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(n.Username, n.Password),
		Host:     net.JoinHostPort(n.Host, n.Port),
		Path:     "/" + prefix + n.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

type Kafka struct {
	Brokers       []string `envconfig:"BROKERS"`
	ConsumerGroup string   `envconfig:"CONSUMER_GROUP" default:"guesthouse-alerts"`
	SASL          struct {
		Username string `envconfig:"USERNAME"`
		Password string `envconfig:"PASSWORD"`
	} `envconfig:"SASL"`
	Topics struct {
		BookingPlaced    string `envconfig:"BOOKING_PLACED"    default:"booking.placed"`
		PaymentConfirmed string `envconfig:"PAYMENT_CONFIRMED" default:"payment.confirmed"`
	} `envconfig:"TOPICS"`
}

type Otel struct {
	Endpoint string `envconfig:"ENDPOINT"`
}

type S3 struct {
	APIEndpoint     string `envconfig:"API_ENDPOINT"`
	AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
	SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
	BucketName      string `envconfig:"BUCKET_NAME"`
	PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
	Region          string `envconfig:"REGION"            default:"auto"`
}

var (
	conf Config
	once sync.Once
)

// Get loads .env, when present, and the environment into the process wide
// Config on first call. A malformed variable is fatal.
func Get() *Config {
	once.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Debug().Err(err).Msg("no .env file, reading the environment only")
		}

		if err := envconfig.Process("", &conf); err != nil {
			log.Fatal().Err(err).Msg("failed to process environment variables")
		}
	})

	return &conf
}
