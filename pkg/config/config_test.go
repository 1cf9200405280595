package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/b2b-portal-api/pkg/config"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "Default Company", cfg.Auth.DefaultCompanyName)
	assert.Equal(t, "0.0.0.0:8001", cfg.HTTP.Addr())
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, []string{testSecret}, cfg.JWT.Keys())
}

func TestLoad_SecretoCortoFalla(t *testing.T) {
	t.Setenv("JWT_SECRET", "corto")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_RotacionDeClaves(t *testing.T) {
	previous := strings.Repeat("p", 32)
	older := strings.Repeat("o", 40)
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("JWT_PREVIOUS_SECRETS", previous+" , "+older+",")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{testSecret, previous, older}, cfg.JWT.Keys(), "la clave de firma va primero")
}

func TestLoad_DriverDesconocido(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("STORE_DRIVER", "cassandra")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_EnteroInvalidoUsaDefault(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("HTTP_PORT", "no-es-numero")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 8001, cfg.HTTP.Port)
}

func TestLoadClient_RequierePassphrase(t *testing.T) {
	t.Setenv("B2B_SESSION_PASSPHRASE", "")
	_, err := config.LoadClient()
	assert.Error(t, err)

	t.Setenv("B2B_SESSION_PASSPHRASE", "frase")
	t.Setenv("B2B_API_URL", "http://api.local/")
	cfg, err := config.LoadClient()
	require.NoError(t, err)
	assert.Equal(t, "http://api.local", cfg.APIURL)
}
