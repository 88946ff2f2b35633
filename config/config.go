package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator"
	"github.com/spf13/viper"
)

type (
	app struct {
		Name     string `json:"name" mapstructure:"name"`
		Env      string `json:"env" mapstructure:"env"`
		Port     int    `json:"port" mapstructure:"port" validate:"min=1,max=65535"`
		Timezone string `json:"timezone" mapstructure:"timezone"`
		Version  string `json:"version" mapstructure:"version"`
		LogLevel string `json:"log_level" mapstructure:"log_level"`
	}

	mongoDB struct {
		// URI wins over the user/password/cluster triple when set
		URI        string        `json:"uri,omitempty" mapstructure:"uri"`
		User       string        `json:"user" mapstructure:"user"`
		Password   string        `json:"password" mapstructure:"password"`
		ClusterURL string        `json:"cluster_url" mapstructure:"cluster_url"`
		Database   string        `json:"database" mapstructure:"database" validate:"required"`
		Timeout    time.Duration `json:"timeout" mapstructure:"timeout"`
	}

	redis struct {
		Enabled  bool   `json:"enabled" mapstructure:"enabled"`
		Host     string `json:"host" mapstructure:"host"`
		Port     int    `json:"port" mapstructure:"port"`
		Password string `json:"password" mapstructure:"password"`
		DB       int    `json:"db" mapstructure:"db"`
	}

	asynq struct {
		Concurrency int `json:"concurrency" mapstructure:"concurrency"`
		DB          int `json:"db" mapstructure:"db"`
		PoolSize    int `json:"pool_size" mapstructure:"pool_size"`
	}

	auth struct {
		Secret   string        `json:"secret" mapstructure:"secret" validate:"required"`
		TokenTTL time.Duration `json:"token_ttl" mapstructure:"token_ttl"`
		// ClaimAllowlist limits the body fields /auth embeds; empty embeds everything
		ClaimAllowlist []string `json:"claim_allowlist" mapstructure:"claim_allowlist"`
		// AdminRole, when set, is the claim role /verify-admin requires
		AdminRole string `json:"admin_role" mapstructure:"admin_role"`
	}

	stripe struct {
		SecretKey string        `json:"secret_key" mapstructure:"secret_key"`
		Currency  string        `json:"currency" mapstructure:"currency" validate:"required"`
		Timeout   time.Duration `json:"timeout" mapstructure:"timeout"`
	}

	cors struct {
		AllowOrigins []string `json:"allow_origins" mapstructure:"allow_origins"`
	}

	Config struct {
		App     app     `json:"app" mapstructure:"app"`
		MongoDB mongoDB `json:"mongodb" mapstructure:"mongodb"`
		Redis   redis   `json:"redis" mapstructure:"redis"`
		Asynq   asynq   `json:"asynq" mapstructure:"asynq"`
		Auth    auth    `json:"auth" mapstructure:"auth"`
		Stripe  stripe  `json:"stripe" mapstructure:"stripe"`
		CORS    cors    `json:"cors" mapstructure:"cors"`
	}

	// RedisConfig is an alias for the internal redis struct for external access
	RedisConfig = redis
	// MongoConfig is an alias for the internal mongoDB struct for external access
	MongoConfig = mongoDB
	// StripeConfig is an alias for the internal stripe struct for external access
	StripeConfig = stripe
)

// envBindings maps config keys to the environment variables the deployment sets
var envBindings = map[string]string{
	"app.port":            "PORT",
	"app.env":             "APP_ENV",
	"mongodb.uri":         "MONGODB_URI",
	"mongodb.user":        "DB_USER",
	"mongodb.password":    "DB_PASSWORD",
	"mongodb.cluster_url": "CLUSTER_URL",
	"auth.secret":         "ACCESS_TOKEN_SECRET",
	"stripe.secret_key":   "STRIPE_SECRET_KEY",
	"redis.enabled":       "REDIS_ENABLED",
	"redis.host":          "REDIS_HOST",
	"redis.port":          "REDIS_PORT",
	"redis.password":      "REDIS_PASSWORD",
}

var cfg *Config

// Init loads configuration from the working directory and the environment
func Init() error {
	loaded, err := Load("./")
	if err != nil {
		return err
	}
	cfg = loaded
	return nil
}

// Get returns the current configuration instance
func Get() *Config {
	return cfg
}

// Load reads an optional .config JSON file from paths, applies environment
// overrides and validates the result.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(".config")
	v.SetConfigType("json")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind env %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	loaded := &Config{}
	if err := v.Unmarshal(loaded); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := loaded.Validate(); err != nil {
		return nil, err
	}
	return loaded, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "manufacture-online")
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.port", 5000)
	v.SetDefault("app.timezone", "UTC")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("mongodb.database", "ManufactureOnline")
	v.SetDefault("mongodb.timeout", "10s")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("asynq.concurrency", 10)
	v.SetDefault("asynq.db", 1)
	v.SetDefault("asynq.pool_size", 10)
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("stripe.currency", "usd")
	v.SetDefault("stripe.timeout", "10s")
	v.SetDefault("cors.allow_origins", []string{"*"})
}

// Validate checks struct tags and the cross-field rules tags cannot express
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("invalid config: auth.token_ttl must be positive")
	}
	return nil
}

// MongoURI returns the connection string for the configured cluster, or ""
// when neither a URI nor a cluster address is configured
func (m MongoConfig) MongoURI() string {
	if m.URI != "" {
		return m.URI
	}
	if m.ClusterURL == "" {
		return ""
	}
	host := strings.TrimSuffix(m.ClusterURL, "/")
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/%s?retryWrites=true&w=majority",
		url.QueryEscape(m.User), url.QueryEscape(m.Password), host, m.Database)
}

// RedisAddr returns host:port for the configured Redis instance
func (r RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
