package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Drivers de almacenamiento soportados.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMongo    = "mongo"
	StoreDriverSQLite   = "sqlite"
)

// minSecretLen longitud mínima del secreto HMAC (256 bits).
const minSecretLen = 32

// Config agrupa la configuración del servidor (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App   AppConfig
	Store StoreConfig
	DB    DBConfig
	Mongo MongoConfig
	JWT   JWTConfig
	HTTP  HTTPConfig
	Redis RedisConfig
	Auth  AuthConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// StoreConfig selecciona el backend de persistencia.
type StoreConfig struct {
	Driver     string // postgres | mongo | sqlite
	SQLitePath string
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

// MongoConfig configuración del document store MongoDB.
type MongoConfig struct {
	URI      string
	Database string
}

// JWTConfig configuración de los tokens de sesión.
// Secret firma los tokens nuevos; PreviousSecrets solo verifican (rotación).
type JWTConfig struct {
	Secret          string
	PreviousSecrets []string
	Issuer          string
}

// Keys devuelve el anillo de claves ordenado de la más nueva a la más antigua.
func (c JWTConfig) Keys() []string {
	keys := make([]string, 0, 1+len(c.PreviousSecrets))
	keys = append(keys, c.Secret)
	return append(keys, c.PreviousSecrets...)
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

// RedisConfig conexión opcional para el limitador de intentos de login.
// Addr vacío desactiva el limitador.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled indica si hay Redis configurado.
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// AuthConfig reglas de registro y login.
type AuthConfig struct {
	DefaultCompanyName string
	LoginMaxAttempts   int
	LoginWindowMinutes int
}

// Load lee la configuración del servidor desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Falla si el secreto JWT falta o es corto, o si el driver es desconocido.
func Load() (*Config, error) {
	v := newViper()

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "b2b-portal-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		Store: StoreConfig{
			Driver:     strings.ToLower(getString(v, "STORE_DRIVER", StoreDriverPostgres)),
			SQLitePath: getString(v, "SQLITE_PATH", "data/b2b.db"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "b2b_portal"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Mongo: MongoConfig{
			URI:      getString(v, "MONGO_URI", "mongodb://localhost:27017"),
			Database: getString(v, "MONGO_DATABASE", "b2b_portal"),
		},
		JWT: JWTConfig{
			Secret:          getString(v, "JWT_SECRET", ""),
			PreviousSecrets: splitList(getString(v, "JWT_PREVIOUS_SECRETS", "")),
			Issuer:          getString(v, "JWT_ISSUER", "b2b-portal-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8001),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		Auth: AuthConfig{
			DefaultCompanyName: getString(v, "DEFAULT_COMPANY_NAME", "Default Company"),
			LoginMaxAttempts:   getInt(v, "LOGIN_MAX_ATTEMPTS", 5),
			LoginWindowMinutes: getInt(v, "LOGIN_WINDOW_MINUTES", 15),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.JWT.Secret) < minSecretLen {
		return fmt.Errorf("config: JWT_SECRET requerido (mínimo %d bytes)", minSecretLen)
	}
	for i, s := range c.JWT.PreviousSecrets {
		if len(s) < minSecretLen {
			return fmt.Errorf("config: JWT_PREVIOUS_SECRETS[%d] debe tener al menos %d bytes", i, minSecretLen)
		}
	}
	switch c.Store.Driver {
	case StoreDriverPostgres, StoreDriverMongo, StoreDriverSQLite:
	default:
		return fmt.Errorf("config: STORE_DRIVER desconocido %q", c.Store.Driver)
	}
	return nil
}

// ClientConfig configuración del cliente de sesión (b2bctl).
type ClientConfig struct {
	APIURL      string
	SessionFile string
	Passphrase  string
}

// LoadClient lee la configuración del cliente desde el entorno.
func LoadClient() (*ClientConfig, error) {
	v := newViper()
	cfg := &ClientConfig{
		APIURL:      strings.TrimRight(getString(v, "B2B_API_URL", "http://localhost:8001"), "/"),
		SessionFile: getString(v, "B2B_SESSION_FILE", ".b2b/session.json"),
		Passphrase:  getString(v, "B2B_SESSION_PASSPHRASE", ""),
	}
	if cfg.Passphrase == "" {
		return nil, fmt.Errorf("config: B2B_SESSION_PASSPHRASE requerido para el almacenamiento seguro")
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if !v.IsSet(key) {
		return def
	}
	if s, ok := v.Get(key).(string); ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return def
		}
		return n
	}
	return v.GetInt(key)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
