package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `env:"ENV" env-required:"true"`
	LogLevel   string `env:"LOG_LEVEL" env-default:"info" env-description:"logging level, debug, info, etc."`
	HttpServer HttpServer
	Limiter    Limiter
	Flow       FlowConfig
	Dispatch   DispatchConfig
	Card       CardConfig
	Codes      CodesConfig
	SMTP       SMTPConfig
	Resend     ResendConfig
	Email      EmailConfig
	Queue      QueueConfig
	Cache      Cache
}

type HttpServer struct {
	Port           string        `env:"HTTP_PORT" env-default:"8080"`
	Timeout        time.Duration `env:"HTTP_TIMEOUT" env-default:"4s"`
	IdleTimeout    time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	SwaggerEnabled bool          `env:"HTTP_SWAGGER_ENABLED" env-default:"false"`
	AllowedOrigins []string      `env:"HTTP_ALLOWED_ORIGINS" env-default:"http://localhost:3000"`
}

type Limiter struct {
	RPS   int           `env:"LIMITER_RPS" env-default:"10"`
	Burst int           `env:"LIMITER_BURST" env-default:"20"`
	TTL   time.Duration `env:"LIMITER_TTL" env-default:"10m"`
}

type FlowConfig struct {
	DomainSuffix string        `env:"FLOW_DOMAIN_SUFFIX" env-default:"@sjsu.edu" env-description:"required email suffix of the institution"`
	Institution  string        `env:"FLOW_INSTITUTION" env-default:"SJSU" env-description:"institution name shown in validation messages"`
	IdleTTL      time.Duration `env:"FLOW_IDLE_TTL" env-default:"30m" env-description:"flows untouched for this long are evicted"`
	SweepEvery   time.Duration `env:"FLOW_SWEEP_INTERVAL" env-default:"1m"`
	// KeepDispatchingOnFailure keeps a flow in DispatchingCode after a failed
	// dispatch instead of returning it to CollectingIdentity with a message.
	KeepDispatchingOnFailure bool `env:"FLOW_KEEP_DISPATCHING_ON_FAILURE" env-default:"false"`
}

type DispatchConfig struct {
	Endpoint string        `env:"DISPATCH_ENDPOINT" env-default:"http://localhost:8080/api/v1/codes" env-description:"url receiving POST {\"email\": ...}"`
	Timeout  time.Duration `env:"DISPATCH_TIMEOUT" env-default:"10s"`
}

// CardConfig holds the display-only demo card fields.
type CardConfig struct {
	Name     string `env:"CARD_NAME" env-default:"Sammy Spartan"`
	IDNumber string `env:"CARD_ID_NUMBER" env-default:"012345678"`
	Barcode  string `env:"CARD_BARCODE" env-default:"012345678"`
}

type CodesConfig struct {
	Length   int           `env:"CODES_LENGTH" env-default:"4"`
	Cooldown time.Duration `env:"CODES_COOLDOWN" env-default:"60s" env-description:"minimal interval between two codes sent to one email"`
	TTL      time.Duration `env:"CODES_TTL" env-default:"15m" env-description:"validity period announced in the email"`
}

type SMTPConfig struct {
	Host string `env:"SMTP_HOST"`
	Port int    `env:"SMTP_PORT" env-default:"587"`
	User string `env:"SMTP_USER"`
	Pass string `env:"SMTP_PASS"`
}

type ResendConfig struct {
	APIKey string `env:"RESEND_API_KEY"`
}

type EmailConfig struct {
	Enabled      bool   `env:"EMAIL_ENABLED" env-default:"false"`
	Provider     string `env:"EMAIL_PROVIDER" env-default:"resend" env-description:"one of smtp/resend"`
	From         string `env:"EMAIL_FROM" env-default:"onboarding@resend.dev"`
	TemplatesDir string `env:"EMAIL_TEMPLATES_DIR" env-default:"./templates"`
	Templates    EmailTemplates
}

type EmailTemplates struct {
	Verification string `env:"EMAIL_TEMPLATE_VERIFICATION" env-default:"verification_code.html"`
}

type QueueConfig struct {
	Enabled     bool `env:"QUEUE_ENABLED" env-default:"false"`
	MaxRetry    int  `env:"QUEUE_MAX_RETRY" env-default:"3"`
	Concurrency int  `env:"QUEUE_CONCURRENCY" env-default:"10"`
}

type Cache struct {
	Type  string `env:"REDIS_TYPE" env-default:"" env-description:"specifies provider, one of redis/redisCluster, empty disables redis"`
	Redis struct {
		Address  string `env:"REDIS_ADDR" env-default:"" env-description:"redis host:port single instance"`
		Password string `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize int    `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
	}
	RedisCluster struct {
		Addresses []string `env:"REDIS_CLUSTER_ADDRS" env-default:"" env-description:"redis cluster nodes: ['172.27.29.90:7000','172.27.29.91:7001'', '172.27.29.92:7002'']"`
		Password  string   `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize  int      `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
	}
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot read config from environment: %s", err)
	}

	return cfg
}
