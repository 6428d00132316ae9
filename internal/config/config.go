package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type APIConfig struct {
	BaseURL     string `yaml:"base_url"`
	Timeout     string `yaml:"timeout"`
	LoginPath   string `yaml:"login_path"`
	RefreshPath string `yaml:"refresh_path"`
	ProfilePath string `yaml:"profile_path"`
	PaymentPath string `yaml:"payment_path"`
}

type RoutesConfig struct {
	Home    string `yaml:"home"`
	Login   string `yaml:"login"`
	Tickets string `yaml:"tickets"`
}

type SessionConfig struct {
	CountdownTicks       int    `yaml:"countdown_ticks"`
	TickInterval         string `yaml:"tick_interval"`
	SuccessRedirectDelay string `yaml:"success_redirect_delay"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// StorageKeysConfig names the persisted key-value entries. Key names are
// configuration, never hardcoded, so two storefronts sharing one store
// cannot collide.
type StorageKeysConfig struct {
	AccessToken  string `yaml:"access_token"`
	RefreshToken string `yaml:"refresh_token"`
	AccountID    string `yaml:"account_id"`
	AccountName  string `yaml:"account_name"`
	AccountEmail string `yaml:"account_email"`
	Cart         string `yaml:"cart"`
}

type ConfigFile struct {
	API         APIConfig         `yaml:"api"`
	Routes      RoutesConfig      `yaml:"routes"`
	Session     SessionConfig     `yaml:"session"`
	Redis       RedisConfig       `yaml:"redis"`
	StorageKeys StorageKeysConfig `yaml:"storage_keys"`
}

type Config struct {
	BaseURL     string
	Timeout     time.Duration
	LoginPath   string
	RefreshPath string
	ProfilePath string
	PaymentPath string

	HomeRoute    string
	LoginRoute   string
	TicketsRoute string

	CountdownTicks       int
	TickInterval         time.Duration
	SuccessRedirectDelay time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AccessTokenKey  string
	RefreshTokenKey string
	AccountIDKey    string
	AccountNameKey  string
	AccountEmailKey string
	CartKey         string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// Load builds the configuration from an optional yaml file overlaid with
// environment variables. An empty path skips the file entirely: every
// setting has a default and an env knob.
func Load(path string) (*Config, error) {
	file := &ConfigFile{}
	if path != "" {
		loaded, err := loadConfigFile(path)
		if err != nil {
			return nil, err
		}
		file = loaded
	}

	timeout, err := duration(env("JOTICKET_API_TIMEOUT", file.API.Timeout), 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid api timeout: %w", err)
	}
	tickInterval, err := duration(env("JOTICKET_TICK_INTERVAL", file.Session.TickInterval), time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid tick interval: %w", err)
	}
	redirectDelay, err := duration(env("JOTICKET_SUCCESS_REDIRECT_DELAY", file.Session.SuccessRedirectDelay), 2*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid success redirect delay: %w", err)
	}

	ticks := file.Session.CountdownTicks
	if ticks <= 0 {
		ticks = 10
	}
	ticks = envInt("JOTICKET_COUNTDOWN_TICKS", ticks)

	return &Config{
		BaseURL:     env("JOTICKET_API_BASE_URL", or(file.API.BaseURL, "http://localhost:8000/api")),
		Timeout:     timeout,
		LoginPath:   env("JOTICKET_LOGIN_PATH", or(file.API.LoginPath, "/auth/login/")),
		RefreshPath: env("JOTICKET_REFRESH_PATH", or(file.API.RefreshPath, "/auth/refresh/")),
		ProfilePath: env("JOTICKET_PROFILE_PATH", or(file.API.ProfilePath, "/auth/me/")),
		PaymentPath: env("JOTICKET_PAYMENT_PATH", or(file.API.PaymentPath, "/payment/check/")),

		HomeRoute:    env("JOTICKET_HOME_ROUTE", or(file.Routes.Home, "/")),
		LoginRoute:   env("JOTICKET_LOGIN_ROUTE", or(file.Routes.Login, "/login")),
		TicketsRoute: env("JOTICKET_TICKETS_ROUTE", or(file.Routes.Tickets, "/tickets")),

		CountdownTicks:       ticks,
		TickInterval:         tickInterval,
		SuccessRedirectDelay: redirectDelay,

		RedisAddr:     env("JOTICKET_REDIS_ADDR", file.Redis.Addr),
		RedisPassword: env("JOTICKET_REDIS_PASSWORD", file.Redis.Password),
		RedisDB:       envInt("JOTICKET_REDIS_DB", file.Redis.DB),

		AccessTokenKey:  env("JOTICKET_KEY_ACCESS_TOKEN", or(file.StorageKeys.AccessToken, "joticket:access_token")),
		RefreshTokenKey: env("JOTICKET_KEY_REFRESH_TOKEN", or(file.StorageKeys.RefreshToken, "joticket:refresh_token")),
		AccountIDKey:    env("JOTICKET_KEY_ACCOUNT_ID", or(file.StorageKeys.AccountID, "joticket:account_id")),
		AccountNameKey:  env("JOTICKET_KEY_ACCOUNT_NAME", or(file.StorageKeys.AccountName, "joticket:account_name")),
		AccountEmailKey: env("JOTICKET_KEY_ACCOUNT_EMAIL", or(file.StorageKeys.AccountEmail, "joticket:account_email")),
		CartKey:         env("JOTICKET_KEY_CART", or(file.StorageKeys.Cart, "joticket:cart")),
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}

func duration(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}

func or(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
