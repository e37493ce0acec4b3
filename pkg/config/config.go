package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	Store  StoreConfig
	HTTP   HTTPConfig
	Report ReportConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, production
	Name     string
	LogLevel string
}

// StoreConfig ubicación del almacenamiento persistente.
// postgres://... usa PostgreSQL, :memory: o memory:// un store en memoria,
// cualquier otro valor es la ruta del archivo SQLite.
type StoreConfig struct {
	Location string
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

// ReportConfig parámetros de los reportes.
type ReportConfig struct {
	LowStockThreshold decimal.Decimal
}

// Defaults.
const (
	DefaultStoreLocation     = "estoque.db"
	DefaultLowStockThreshold = 5
)

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, STORE_LOCATION, HTTP_PORT, etc.
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
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v)
}

// FromViper construye la configuración desde una instancia de Viper ya cargada.
func FromViper(v *viper.Viper) (*Config, error) {
	location := getString(v, "STORE_LOCATION", "")
	if location == "" {
		location = getString(v, "DATABASE_URL", DefaultStoreLocation)
	}

	port, err := getInt(v, "HTTP_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("HTTP_PORT: %w", err)
	}

	threshold := decimal.NewFromInt(DefaultLowStockThreshold)
	if raw := getString(v, "LOW_STOCK_THRESHOLD", ""); raw != "" {
		threshold, err = decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("LOW_STOCK_THRESHOLD: %w", err)
		}
		if threshold.IsNegative() {
			return nil, fmt.Errorf("LOW_STOCK_THRESHOLD: no puede ser negativo")
		}
	}

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "estoque"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		Store: StoreConfig{
			Location: location,
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "127.0.0.1"),
			Port: port,
		},
		Report: ReportConfig{
			LowStockThreshold: threshold,
		},
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) (int, error) {
	if !v.IsSet(key) {
		return def, nil
	}
	switch v.Get(key).(type) {
	case string:
		return strconv.Atoi(strings.TrimSpace(v.GetString(key)))
	default:
		return v.GetInt(key), nil
	}
}
