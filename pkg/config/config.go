package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	DB     DBConfig
	JWT    JWTConfig
	HTTP   HTTPConfig
	Log    LogConfig
	Audit  AuditConfig
	Login  LoginConfig
	Export ExportConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	// ForceIPv4 resuelve el host a IPv4 antes de conectar (contenedores sin IPv6).
	ForceIPv4 bool
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN arma el connection string escapando usuario y contraseña.
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

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
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

// LogConfig nivel de log (trace, debug, info, warn, error).
type LogConfig struct {
	Level string
}

// AuditConfig dimensiona el despachador asíncrono de auditoría.
type AuditConfig struct {
	Buffer  int
	Workers int
}

// LoginConfig bloqueo por intentos fallidos de login por IP.
type LoginConfig struct {
	MaxAttempts int
	LockMinutes int
	// WindowMinutes es cuánto se recuerdan los intentos fallidos.
	WindowMinutes int
}

// ExportConfig opciones de los reportes descargables.
type ExportConfig struct {
	Timezone string
	Company  string // encabezado de los PDF
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, DB_PORT, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "dulceria-api"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "dulceria"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 10),
			ForceIPv4:   getString(v, "DB_FORCE_IPV4", "true") == "true",
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "dulceria-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
		Audit: AuditConfig{
			Buffer:  getInt(v, "AUDIT_BUFFER", 256),
			Workers: getInt(v, "AUDIT_WORKERS", 2),
		},
		Login: LoginConfig{
			MaxAttempts:   getInt(v, "LOGIN_MAX_ATTEMPTS", 5),
			LockMinutes:   getInt(v, "LOGIN_LOCK_MINUTES", 15),
			WindowMinutes: getInt(v, "LOGIN_WINDOW_MINUTES", 30),
		},
		Export: ExportConfig{
			Timezone: getString(v, "EXPORT_TZ", "America/Santiago"),
			Company:  getString(v, "EXPORT_COMPANY", "Dulcería"),
		},
	}

	if cfg.JWT.Secret == "" && cfg.App.Env == "production" {
		return nil, fmt.Errorf("config: JWT_SECRET es obligatorio en production")
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
