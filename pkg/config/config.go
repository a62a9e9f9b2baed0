package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultAPIBaseURL es la URL del backend fijada en tiempo de compilación:
//
//	go build -ldflags "-X github.com/jhoicas/cutman-web/pkg/config.DefaultAPIBaseURL=https://api.example.com"
//
// API_BASE_URL en el entorno (o archivo de configuración) tiene prioridad sobre este valor.
var DefaultAPIBaseURL = "http://localhost:3000"

// Almacenes de sesión soportados (SESSION_STORE).
const (
	SessionStoreCookie   = "cookie"
	SessionStoreMemory   = "memory"
	SessionStorePostgres = "postgres"
	SessionStoreRedis    = "redis"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Backend BackendConfig
	Chat    ChatConfig
	Session SessionConfig
	DB      DBConfig
	Redis   RedisConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
	SiteURL  string // URL pública, usada en sitemap.xml
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BackendConfig API REST externa (usuarios, roles, servicios, login).
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// ChatConfig webhook de automatización del chat.
type ChatConfig struct {
	WebhookURL string
	Timeout    time.Duration
	IdleTTL    time.Duration // widgets sin actividad se descartan pasado este tiempo
}

// SessionConfig persistencia de la sesión de login.
type SessionConfig struct {
	Store        string // cookie | memory | postgres | redis
	Secret       string // firma HS256 del cookie de sesión
	TTL          time.Duration
	Issuer       string
	CookieSecure bool
}

// DBConfig configuración de PostgreSQL (solo con SESSION_STORE=postgres).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// RedisConfig configuración de Redis (solo con SESSION_STORE=redis).
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, API_BASE_URL, WEBHOOK_URL, SESSION_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "cutman-web"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
			SiteURL:  getString(v, "SITE_URL", "http://localhost:8080"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Backend: BackendConfig{
			BaseURL: strings.TrimRight(getString(v, "API_BASE_URL", DefaultAPIBaseURL), "/"),
			Timeout: getDuration(v, "BACKEND_TIMEOUT", 15*time.Second),
		},
		Chat: ChatConfig{
			WebhookURL: getString(v, "WEBHOOK_URL", ""),
			Timeout:    getDuration(v, "WEBHOOK_TIMEOUT", 60*time.Second),
			IdleTTL:    getDuration(v, "CHAT_IDLE_TTL", 30*time.Minute),
		},
		Session: SessionConfig{
			Store:        strings.ToLower(getString(v, "SESSION_STORE", SessionStoreCookie)),
			Secret:       getString(v, "SESSION_SECRET", ""),
			TTL:          time.Duration(getInt(v, "SESSION_TTL_MINUTES", 720)) * time.Minute,
			Issuer:       getString(v, "SESSION_ISSUER", "cutman-web"),
			CookieSecure: getBool(v, "COOKIE_SECURE", false),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "cutman_web"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", "localhost:6379"),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
	}

	switch cfg.Session.Store {
	case SessionStoreCookie, SessionStoreMemory, SessionStorePostgres, SessionStoreRedis:
	default:
		return nil, fmt.Errorf("SESSION_STORE desconocido: %q", cfg.Session.Store)
	}
	if cfg.Session.Store == SessionStoreCookie && cfg.Session.Secret == "" {
		if cfg.App.Env != "development" {
			return nil, fmt.Errorf("SESSION_SECRET requerido con SESSION_STORE=cookie")
		}
		cfg.Session.Secret = "dev-only-session-secret"
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}

// getDuration acepta "15s", "2m" o un número entero de segundos.
func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	raw := strings.TrimSpace(v.GetString(key))
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return d
}
