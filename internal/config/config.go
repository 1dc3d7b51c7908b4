package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix       = "BLOG"
	defaultPort     = "8080"
	defaultDBPath   = "blog.db"
	defaultPageSize = 6
)

// Config is the process-wide configuration, built once at startup and
// passed explicitly to the components that need it.
type Config struct {
	Port  string      `mapstructure:"port"`
	DB    DBConfig    `mapstructure:"db"`
	Auth  AuthConfig  `mapstructure:"auth"`
	Admin AdminConfig `mapstructure:"admin"`
	Redis RedisConfig `mapstructure:"redis"`
	Log   LogConfig   `mapstructure:"log"`
	Site  SiteConfig  `mapstructure:"site"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	// TokenTTL of zero issues tokens without an expiry claim.
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
	CookieSecure bool          `mapstructure:"cookie_secure"`
}

// AdminConfig is the account created on first start when no user exists.
type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// RedisConfig enables server-side token revocation on logout when URL is set.
type RedisConfig struct {
	URL string `mapstructure:"url"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type SiteConfig struct {
	Title       string `mapstructure:"title"`
	Description string `mapstructure:"description"`
	PageSize    int    `mapstructure:"page_size"`
}

var ErrMissingSecret = errors.New("auth.jwt_secret must be set")

// Load reads <dir>/config.yml (if present), a .env file (if present) and
// BLOG_* environment variables, in increasing order of precedence.
func Load(dir string) (Config, error) {
	_ = godotenv.Load() // optional

	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg.normalize()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", defaultPort)
	v.SetDefault("db.path", defaultDBPath)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", "0s")
	v.SetDefault("auth.cookie_secure", false)
	v.SetDefault("admin.username", "")
	v.SetDefault("admin.password", "")
	v.SetDefault("redis.url", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("site.title", "Go Blog")
	v.SetDefault("site.description", "Simple blog created with Go, Gin & SQLite.")
	v.SetDefault("site.page_size", defaultPageSize)
}

func (c Config) normalize() (Config, error) {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return Config{}, ErrMissingSecret
	}
	if c.Auth.TokenTTL < 0 {
		c.Auth.TokenTTL = 0
	}
	if c.Site.PageSize <= 0 {
		c.Site.PageSize = defaultPageSize
	}
	if c.Port == "" {
		c.Port = defaultPort
	}
	if c.DB.Path == "" {
		c.DB.Path = defaultDBPath
	}
	return c, nil
}
