package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port    string `mapstructure:"port"`
	BaseURL string `mapstructure:"base_url"`
}

type MicrosoftConfig struct {
	ClientID     string   `mapstructure:"client_id"`
	ClientSecret string   `mapstructure:"client_secret"`
	TenantID     string   `mapstructure:"tenant_id"`
	RedirectURI  string   `mapstructure:"redirect_uri"`
	AuthorityURL string   `mapstructure:"authority_url"`
	Scopes       []string `mapstructure:"scopes"`
}

type JWTConfig struct {
	SecretKey string        `mapstructure:"secret_key"`
	TTL       time.Duration `mapstructure:"ttl"`
}

type TokenConfig struct {
	ExpirySkew time.Duration `mapstructure:"expiry_skew"`
}

type GraphConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

type OpenAIConfig struct {
	APIKey    string `mapstructure:"api_key"`
	BaseURL   string `mapstructure:"base_url"`
	Model     string `mapstructure:"model"`
	MaxTokens int    `mapstructure:"max_tokens"`
}

type DocumentsConfig struct {
	OutputDir string `mapstructure:"output_dir"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type HTTPConfig struct {
	ClientTimeout time.Duration `mapstructure:"client_timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Microsoft MicrosoftConfig `mapstructure:"microsoft"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Token     TokenConfig     `mapstructure:"token"`
	Graph     GraphConfig     `mapstructure:"graph"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
	Documents DocumentsConfig `mapstructure:"documents"`
	Redis     RedisConfig     `mapstructure:"redis"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Log       LogConfig       `mapstructure:"log"`
}

var AppConfig Config

// envAliases keeps the variable names the deployment environment already
// exports working alongside the automatic SECTION_KEY names.
var envAliases = map[string]string{
	"microsoft.client_id":     "MSCLIENTID",
	"microsoft.client_secret": "MSCLIENTSECRET",
	"microsoft.tenant_id":     "MSTENANTID",
	"microsoft.redirect_uri":  "MSREDIRECTURI",
	"openai.api_key":          "OPENAI_API_KEY",
	"server.port":             "PORT",
	"jwt.secret_key":          "JWT_SECRET",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("microsoft.client_id", "")
	v.SetDefault("microsoft.client_secret", "")
	v.SetDefault("microsoft.tenant_id", "")
	v.SetDefault("microsoft.redirect_uri", "http://localhost:8080/auth/callback")
	v.SetDefault("microsoft.authority_url", "")
	v.SetDefault("microsoft.scopes", []string{"openid", "profile", "email", "offline_access", "User.Read", "Mail.Send", "Files.ReadWrite"})
	v.SetDefault("jwt.secret_key", "")
	v.SetDefault("jwt.ttl", "12h")
	v.SetDefault("token.expiry_skew", "0s")
	v.SetDefault("graph.base_url", "https://graph.microsoft.com/v1.0")
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.max_tokens", 800)
	v.SetDefault("documents.output_dir", "generated")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("http.client_timeout", "30s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Load reads an optional .env file and an optional config.yml from path,
// then applies environment overrides. It does not validate the result.
func Load(path string) (*Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")

	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envAliases {
		if err := v.BindEnv(key, strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

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
	return &cfg, nil
}

// Validate reports the first required setting that is empty.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"MSCLIENTID", c.Microsoft.ClientID},
		{"MSCLIENTSECRET", c.Microsoft.ClientSecret},
		{"MSTENANTID", c.Microsoft.TenantID},
		{"JWT_SECRET", c.JWT.SecretKey},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("missing required configuration: %s", r.name)
		}
	}
	return nil
}

// LoadConfig loads and validates configuration into AppConfig.
func LoadConfig(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	AppConfig = *cfg
	return nil
}
