package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Drivers de almacenamiento soportados.
const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	Store   StoreConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Auth    AuthConfig
	Swagger SwaggerConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, production
	Name     string
	LogLevel string
}

// StoreConfig ubicación y formato de los almacenes persistentes.
type StoreConfig struct {
	DataDir   string
	Driver    string // json | sqlite
	BackupDir string
}

// SQLitePath ruta del archivo de base cuando Driver es sqlite.
func (c StoreConfig) SQLitePath() string {
	return filepath.Join(c.DataDir, "gestor.db")
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AuthConfig contraseña compartida del administrador en el primer arranque.
type AuthConfig struct {
	DefaultPassword string
}

// SwaggerConfig documento OpenAPI servido en /docs.
type SwaggerConfig struct {
	File string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DATA_DIR, STORE_DRIVER, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	dataDir := getString(v, "DATA_DIR", "./data")
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "gestor-notas"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		Store: StoreConfig{
			DataDir:   dataDir,
			Driver:    strings.ToLower(getString(v, "STORE_DRIVER", DriverJSON)),
			BackupDir: getString(v, "BACKUP_DIR", filepath.Join(dataDir, "backups")),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "gestor-notas"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "127.0.0.1"),
			Port:        getInt(v, "HTTP_PORT", 8765),
			CORSOrigins: getString(v, "CORS_ORIGINS", "http://localhost:5173"),
		},
		Auth: AuthConfig{
			DefaultPassword: getString(v, "ADMIN_DEFAULT_PASSWORD", "admin123"),
		},
		Swagger: SwaggerConfig{
			File: getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
		},
	}

	if cfg.Store.Driver != DriverJSON && cfg.Store.Driver != DriverSQLite {
		return nil, fmt.Errorf("config: STORE_DRIVER %q no soportado (json | sqlite)", cfg.Store.Driver)
	}
	if cfg.JWT.Expiration <= 0 {
		return nil, fmt.Errorf("config: JWT_EXPIRATION_MINUTES debe ser positivo")
	}
	if cfg.JWT.Secret == "" {
		// Sin secreto configurado los tokens valen solo mientras viva el proceso.
		secret, err := randomSecret()
		if err != nil {
			return nil, fmt.Errorf("config: generar JWT_SECRET: %w", err)
		}
		cfg.JWT.Secret = secret
	}
	return cfg, nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		if s := v.GetString(key); s != "" {
			return s
		}
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
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
