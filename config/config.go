package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port         string        `mapstructure:"port"`
		ReadTimeout  time.Duration `mapstructure:"read_timeout"`
		WriteTimeout time.Duration `mapstructure:"write_timeout"`
		MaxUploadMB  int64         `mapstructure:"max_upload_mb"`
	} `mapstructure:"server"`
	Database struct {
		Host         string `mapstructure:"host"`
		Port         string `mapstructure:"port"`
		User         string `mapstructure:"user"`
		Password     string `mapstructure:"password"`
		Name         string `mapstructure:"name"`
		SSLMode      string `mapstructure:"sslmode"`
		MaxOpenConns int    `mapstructure:"max_open_conns"`
	} `mapstructure:"database"`
	Redis struct {
		Enabled  bool   `mapstructure:"enabled"`
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
	JWT    JWTConfig    `mapstructure:"jwt"`
	Cookie CookieConfig `mapstructure:"cookie"`
	Media  MediaConfig  `mapstructure:"media"`
	Cache  struct {
		StatsTTL time.Duration `mapstructure:"stats_ttl"`
	} `mapstructure:"cache"`
	RateLimit struct {
		AuthPerMinute int `mapstructure:"auth_per_minute"`
		AuthBurst     int `mapstructure:"auth_burst"`
	} `mapstructure:"rate_limit"`
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
}

// JWTConfig holds the signing material for both grants. The two secrets must differ
// so that a refresh token can never pass as an access token and vice versa.
type JWTConfig struct {
	AccessSecret  string        `mapstructure:"access_secret"`
	AccessExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshSecret string        `mapstructure:"refresh_secret"`
	RefreshExpiry time.Duration `mapstructure:"refresh_expiry"`
	Leeway        time.Duration `mapstructure:"leeway"`
}

// CookieConfig is applied to both session cookies.
type CookieConfig struct {
	HTTPOnly bool   `mapstructure:"http_only"`
	Secure   bool   `mapstructure:"secure"`
	SameSite string `mapstructure:"same_site"`
	Path     string `mapstructure:"path"`
}

type MediaConfig struct {
	Endpoint      string `mapstructure:"endpoint"`
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PublicBaseURL string `mapstructure:"public_base_url"`
	UsePathStyle  bool   `mapstructure:"use_path_style"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.max_upload_mb", 200)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 20)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")

	v.SetDefault("jwt.access_expiry", 15*time.Minute)
	v.SetDefault("jwt.refresh_expiry", 240*time.Hour)
	v.SetDefault("jwt.leeway", 30*time.Second)

	v.SetDefault("cookie.http_only", true)
	v.SetDefault("cookie.secure", true)
	v.SetDefault("cookie.same_site", "lax")
	v.SetDefault("cookie.path", "/")

	v.SetDefault("media.region", "us-east-1")
	v.SetDefault("media.use_path_style", true)

	v.SetDefault("cache.stats_ttl", time.Minute)

	v.SetDefault("rate_limit.auth_per_minute", 30)
	v.SetDefault("rate_limit.auth_burst", 10)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// LoadConfig reads config.yml from path and overlays environment variables
// (JWT_ACCESS_SECRET overrides jwt.access_secret and so on).
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// AutomaticEnv only resolves keys viper already knows about, so keys without a
// default need an explicit binding to be settable from the environment alone.
func bindEnv(v *viper.Viper) {
	for _, key := range []string{
		"database.user", "database.password", "database.name",
		"redis.password",
		"jwt.access_secret", "jwt.refresh_secret",
		"media.endpoint", "media.bucket", "media.access_key", "media.secret_key", "media.public_base_url",
	} {
		_ = v.BindEnv(key)
	}
}

func (c *Config) Validate() error {
	if c.JWT.AccessSecret == "" || c.JWT.RefreshSecret == "" {
		return errors.New("jwt.access_secret and jwt.refresh_secret must be set")
	}
	if c.JWT.AccessSecret == c.JWT.RefreshSecret {
		return errors.New("jwt.access_secret and jwt.refresh_secret must differ")
	}
	if c.JWT.AccessExpiry <= 0 || c.JWT.RefreshExpiry <= 0 {
		return errors.New("jwt expiries must be positive")
	}
	return nil
}

// DSN builds the lib/pq connection string. safe omits the password for logging.
func (c *Config) DSN(safe bool) string {
	db := c.Database
	parts := []string{
		"host=" + quoteDSN(db.Host),
		"port=" + quoteDSN(db.Port),
		"user=" + quoteDSN(db.User),
		"dbname=" + quoteDSN(db.Name),
		"sslmode=" + quoteDSN(db.SSLMode),
	}
	if !safe && db.Password != "" {
		parts = append(parts, "password="+quoteDSN(db.Password))
	}
	return strings.Join(parts, " ")
}

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// quoteDSN single-quotes v when it holds anything lib/pq would otherwise split on.
func quoteDSN(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	return "'" + dsnEscaper.Replace(v) + "'"
}

// MigrationURL is the postgres:// form golang-migrate expects.
func (c *Config) MigrationURL() string {
	db := c.Database
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(db.User, db.Password),
		Host:     net.JoinHostPort(db.Host, db.Port),
		Path:     "/" + db.Name,
		RawQuery: url.Values{"sslmode": {db.SSLMode}}.Encode(),
	}
	return u.String()
}
