package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Configs struct {
	Env string `toml:"env"`

	Database   DatabaseConfigs   `toml:"database"`
	ApiServer  ServerConfigs     `toml:"api_server"`
	Auth       AuthConfigs       `toml:"auth"`
	Redemption RedemptionConfigs `toml:"redemption"`
}

type DatabaseConfigs struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host         string   `toml:"host"`
	Port         string   `toml:"port"`
	AllowOrigins []string `toml:"allow_origins"`
	DefaultLimit int      `toml:"default_limit"`
	MaxLimit     int      `toml:"max_limit"`
}

type AuthConfigs struct {
	TokenSecret  string       `toml:"token_secret"`
	AccessToken  TokenConfigs `toml:"access_token"`
	RefreshToken TokenConfigs `toml:"refresh_token"`
}

type TokenConfigs struct {
	Name       string   `toml:"name"`
	Expiration Duration `toml:"expiration"`
}

type RedemptionConfigs struct {
	CodeLength   uint `toml:"code_length"`
	CodeMaxRetry int  `toml:"code_max_retry"`
}

// Duration makes time.Duration decodable from a TOML string like "15m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}

	d.Duration = parsed
	return nil
}

// Load builds the configurations from defaults, an optional TOML file, and
// secret overrides taken from the environment.
func Load(path string) (Configs, error) {
	cfg := Configs{
		Env: "local",
		Database: DatabaseConfigs{
			Host:     "localhost",
			Port:     "3306",
			Database: "volunhub",
			User:     "volunhub",
		},
		ApiServer: ServerConfigs{
			Host:         "0.0.0.0",
			Port:         "8080",
			DefaultLimit: 10,
			MaxLimit:     50,
		},
		Auth: AuthConfigs{
			AccessToken: TokenConfigs{
				Name:       "access_token",
				Expiration: Duration{15 * time.Minute},
			},
			RefreshToken: TokenConfigs{
				Name:       "refresh_token",
				Expiration: Duration{7 * 24 * time.Hour},
			},
		},
		Redemption: RedemptionConfigs{
			CodeLength:   10,
			CodeMaxRetry: 5,
		},
	}

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !os.IsNotExist(err) {
			return Configs{}, err
		}
	}

	if secret := os.Getenv("AUTH_TOKEN_SECRET"); secret != "" {
		cfg.Auth.TokenSecret = secret
	}

	if password := os.Getenv("DATABASE_PASSWORD"); password != "" {
		cfg.Database.Password = password
	}

	return cfg, nil
}
