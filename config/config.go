package config

import (
	"encoding/base64"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AppConfig struct {
	v         *viper.Viper
	mu        sync.RWMutex
	Server    Server         `required:"true" json:"server" yaml:"server"`
	Token     Token          `required:"true" json:"token" yaml:"token"`
	Postgres  PostgresConfig `required:"true" json:"postgres" yaml:"postgres"`
	Redis     RedisConfig    `json:"redis" yaml:"redis"`
	Auth      Auth           `json:"auth" yaml:"auth"`
	RateLimit RateLimits     `json:"rateLimit" yaml:"rateLimit"`
}

type Server struct {
	Port            int           `json:"port" yaml:"port"`
	ShutdownTimeout time.Duration `json:"shutdownTimeout" yaml:"shutdownTimeout"`
}

type Token struct {
	Secret     string        `json:"secretKey" yaml:"secret"`
	MasterKey  string        `json:"masterKey" yaml:"masterKey"`
	ClientID   string        `required:"true" json:"clientId" yaml:"clientId"`
	AccessTTL  time.Duration `required:"true" json:"accessTTL" yaml:"accessTTL"`
	RefreshTTL time.Duration `required:"true" json:"refreshTTL" yaml:"refreshTTL"`
}

type PostgresConfig struct {
	Host              string        `json:"host" yaml:"host"`
	Port              string        `json:"port" yaml:"port"`
	DBName            string        `json:"dbName" yaml:"dbName"`
	UserName          string        `json:"userName" yaml:"userName"`
	Password          string        `json:"password" yaml:"password"`
	SSLMode           string        `json:"sslMode" yaml:"sslMode"`
	Timeout           time.Duration `json:"timeout" yaml:"timeout"`
	MaxRetry          int           `json:"maxRetry" yaml:"maxRetry"`
	ConnectTimeout    time.Duration `json:"connectTimeout" yaml:"connectTimeout"`
	StatementTimeout  time.Duration `json:"statementTimeout" yaml:"statementTimeout"`
	MaxOpenConns      int           `json:"maxOpenConns" yaml:"maxOpenConns"`
	MaxIdleConns      int           `json:"maxIdleConns" yaml:"maxIdleConns"`
	ConnMaxLifetime   time.Duration `json:"connMaxLifetime" yaml:"connMaxLifetime"`
	ConnMaxIdleTime   time.Duration `json:"connMaxIdleTime" yaml:"connMaxIdleTime"`
	HealthCheckPeriod time.Duration `json:"healthCheckPeriod" yaml:"healthCheckPeriod"`
}

type RedisConfig struct {
	Addr             string        `json:"addr" yaml:"addr"`
	Password         string        `json:"password" yaml:"password"`
	DB               int           `json:"db" yaml:"db"`
	MaxLoginFailures int64         `json:"maxLoginFailures" yaml:"maxLoginFailures"`
	FailureWindow    time.Duration `json:"failureWindow" yaml:"failureWindow"`
}

type Auth struct {
	SkipPaths []string `json:"skipPaths" yaml:"skipPaths"`
}

type RateLimits struct {
	Auth   RateLimit `json:"auth" yaml:"auth"`
	API    RateLimit `json:"api" yaml:"api"`
	Strict RateLimit `json:"strict" yaml:"strict"`
}

type RateLimit struct {
	Requests int           `json:"requests" yaml:"requests"`
	Per      time.Duration `json:"per" yaml:"per"`
}

type secret struct {
	v   *viper.Viper
	JWT JWT `required:"true" json:"jwt" yaml:"jwt"`
}

type JWT struct {
	SecretKey string `json:"secretKey" yaml:"secretKey"`
	MasterKey string `json:"masterKey" yaml:"masterKey"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("token.clientId", "rex-identity-server")
	v.SetDefault("token.accessTTL", 15*time.Minute)
	v.SetDefault("token.refreshTTL", 7*24*time.Hour)
	v.SetDefault("postgres.sslMode", "disable")
	v.SetDefault("postgres.timeout", 5*time.Second)
	v.SetDefault("postgres.maxOpenConns", 10)
	v.SetDefault("postgres.maxIdleConns", 2)
	v.SetDefault("postgres.connMaxLifetime", 30*time.Minute)
	v.SetDefault("postgres.connMaxIdleTime", 5*time.Minute)
	v.SetDefault("postgres.healthCheckPeriod", time.Minute)
	v.SetDefault("redis.maxLoginFailures", 5)
	v.SetDefault("redis.failureWindow", time.Hour)
	v.SetDefault("rateLimit.auth.requests", 5)
	v.SetDefault("rateLimit.auth.per", time.Second)
	v.SetDefault("rateLimit.api.requests", 30)
	v.SetDefault("rateLimit.api.per", time.Second)
	v.SetDefault("rateLimit.strict.requests", 3)
	v.SetDefault("rateLimit.strict.per", time.Minute)
}

func (c *AppConfig) readAppConfig() {
	v := viper.New()

	setDefaults(v)
	v.SetTypeByDefaultValue(true)
	v.SetConfigFile(os.Getenv("CONFIG_FILE_PATH"))

	if err := v.ReadInConfig(); err != nil {
		panic(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.v = v
	token := c.Token
	if err := v.Unmarshal(c); err != nil {
		panic(err)
	}
	// the signing secret is loaded once at startup and never replaced by a reload
	c.Token.Secret = token.Secret
	c.Token.MasterKey = token.MasterKey
}

func (s *secret) readSecret() {
	v := viper.New()

	v.SetTypeByDefaultValue(true)
	if path := os.Getenv("SECRETS_FILE_PATH"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			panic(err)
		}
	}
	s.v = v

	if err := v.Unmarshal(s); err != nil {
		panic(err)
	}

	if masterKey, masterKeyPresent := os.LookupEnv("JWT_MASTER_KEY"); masterKeyPresent {
		s.JWT.MasterKey = masterKey
	} else if secretKey, secretKeyPresent := os.LookupEnv("JWT_SECRET_KEY"); secretKeyPresent {
		s.JWT.SecretKey = secretKey
	}
	if s.JWT.MasterKey == "" && s.JWT.SecretKey == "" {
		log.Fatal().Msg("One of jwt.secretKey or jwt.masterKey is required in secrets")
	}
}

// RateLimitFor returns the current limit for one of "auth", "api" or "strict". It follows config reloads.
func (c *AppConfig) RateLimitFor(name string) RateLimit {
	c.mu.RLock()
	defer c.mu.RUnlock()
	switch name {
	case "auth":
		return c.RateLimit.Auth
	case "strict":
		return c.RateLimit.Strict
	default:
		return c.RateLimit.API
	}
}

func NewConfiguration() *AppConfig {
	config := &AppConfig{}
	config.readAppConfig()
	config.v.WatchConfig()
	config.v.OnConfigChange(func(in fsnotify.Event) {
		log.Info().Str("file", in.Name).Msg("Configuration changed, reloading")
		config.readAppConfig()
	})
	secret := &secret{}
	secret.readSecret()
	// The master key is kept base64 encoded because jwt_secret decodes it itself.
	if secret.JWT.MasterKey != "" {
		if _, err := base64.StdEncoding.DecodeString(secret.JWT.MasterKey); err != nil {
			log.Fatal().Msg("Decoding master key failed")
		}
		config.Token.MasterKey = secret.JWT.MasterKey
	} else {
		config.Token.Secret = secret.JWT.SecretKey
	}
	return config
}
