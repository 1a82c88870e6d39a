// Package config loads the server settings from defaults, an optional YAML
// file and DEVCONNECT_ prefixed environment variables, in that order.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/goliatone/go-devconnect"
	goerrors "github.com/goliatone/go-errors"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "DEVCONNECT_"

// PathEnv names the variable holding the YAML file path
const PathEnv = EnvPrefix + "CONFIG"

// Config is the root configuration
type Config struct {
	Debug    bool     `yaml:"debug" env:"DEBUG"`
	Server   Server   `yaml:"server" envPrefix:"SERVER_"`
	Auth     Auth     `yaml:"auth" envPrefix:"AUTH_"`
	Database Database `yaml:"database" envPrefix:"DATABASE_"`
	Github   Github   `yaml:"github" envPrefix:"GITHUB_"`
	Log      Log      `yaml:"log" envPrefix:"LOG_"`
}

type Server struct {
	Address         string        `yaml:"address" env:"ADDRESS"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

type Auth struct {
	SigningKey       string   `yaml:"signing_key" env:"SIGNING_KEY"`
	TokenExpiration  int      `yaml:"token_expiration" env:"TOKEN_EXPIRATION"`
	Issuer           string   `yaml:"issuer" env:"ISSUER"`
	Audience         []string `yaml:"audience" env:"AUDIENCE"`
	TokenLookup      string   `yaml:"token_lookup" env:"TOKEN_LOOKUP"`
	AuthScheme       string   `yaml:"auth_scheme" env:"AUTH_SCHEME"`
	VerifyUserExists bool     `yaml:"verify_user_exists" env:"VERIFY_USER_EXISTS"`
	UseHashid        bool     `yaml:"use_hashid" env:"USE_HASHID"`
	BcryptCost       int      `yaml:"bcrypt_cost" env:"BCRYPT_COST"`
}

type Database struct {
	Driver string `yaml:"driver" env:"DRIVER"`
	DSN    string `yaml:"dsn" env:"DSN"`
	Name   string `yaml:"name" env:"NAME"`
	Debug  bool   `yaml:"debug" env:"DEBUG"`
}

type Github struct {
	APIURL  string        `yaml:"api_url" env:"API_URL"`
	Token   string        `yaml:"token" env:"TOKEN"`
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`
}

type Log struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Pretty bool   `yaml:"pretty" env:"PRETTY"`
}

var _ devconnect.Config = (*Config)(nil)

// Defaults returns a config with every optional value set
func Defaults() *Config {
	return &Config{
		Server: Server{
			Address:         ":5000",
			ReadTimeout:     10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Auth: Auth{
			TokenExpiration: 24,
			TokenLookup:     "header:x-auth-token",
			BcryptCost:      devconnect.DefaultBcryptCost,
		},
		Database: Database{
			Driver: "sqlite",
			DSN:    "file:devconnect.db?cache=shared",
			Name:   "devconnect",
		},
		Github: Github{
			APIURL:  "https://api.github.com",
			Timeout: 10 * time.Second,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load builds the configuration. When path is empty the DEVCONNECT_CONFIG
// variable is used. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path == "" {
		path = os.Getenv(PathEnv)
	}

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "parse environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	if path == "" {
		return nil
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "read config file").
			WithMetadata(map[string]any{"path": path})
	}

	if err := yaml.Unmarshal(raw, c); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "parse config file").
			WithMetadata(map[string]any{"path": path})
	}
	return nil
}

// Validate checks the loaded values
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Server),
		validation.Field(&c.Auth),
		validation.Field(&c.Database),
		validation.Field(&c.Github),
		validation.Field(&c.Log),
	)
	if err != nil {
		return goerrors.FromOzzoValidation(err, "invalid configuration")
	}
	return nil
}

func (s Server) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Address, validation.Required),
		validation.Field(&s.ReadTimeout, validation.Min(time.Duration(0))),
		validation.Field(&s.ShutdownTimeout, validation.Min(time.Duration(0))),
	)
}

func (a Auth) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.SigningKey, validation.Required, validation.Length(16, 0)),
		validation.Field(&a.TokenExpiration, validation.Required, validation.Min(1)),
		validation.Field(&a.TokenLookup, validation.Required, validation.By(tokenLookup)),
		validation.Field(&a.BcryptCost, validation.Required, validation.Min(4), validation.Max(31)),
	)
}

func (d Database) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Driver, validation.Required, validation.In("sqlite", "postgres", "mongo")),
		validation.Field(&d.DSN, validation.Required),
		validation.Field(&d.Name, validation.When(d.Driver == "mongo", validation.Required)),
	)
}

func (g Github) Validate() error {
	return validation.ValidateStruct(&g,
		validation.Field(&g.APIURL, validation.Required, is.URL),
		validation.Field(&g.Timeout, validation.Min(time.Duration(0))),
	)
}

func (l Log) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.In("debug", "info", "warn", "error")),
	)
}

func tokenLookup(value any) error {
	lookup, _ := value.(string)
	for _, part := range strings.Split(lookup, ",") {
		source, name, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok || name == "" {
			return errors.New("must be in the form source:name")
		}
		switch source {
		case "header", "query", "param", "cookie":
		default:
			return errors.New("unsupported token source " + source)
		}
	}
	return nil
}

// GetSigningKey implements devconnect.Config
func (c *Config) GetSigningKey() string {
	return c.Auth.SigningKey
}

func (c *Config) GetContextKey() string {
	return devconnect.DefaultContextKey
}

func (c *Config) GetTokenExpiration() int {
	return c.Auth.TokenExpiration
}

func (c *Config) GetTokenLookup() string {
	return c.Auth.TokenLookup
}

func (c *Config) GetAuthScheme() string {
	return c.Auth.AuthScheme
}

func (c *Config) GetIssuer() string {
	return c.Auth.Issuer
}

func (c *Config) GetAudience() []string {
	return c.Auth.Audience
}
