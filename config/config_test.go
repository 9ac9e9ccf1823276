package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("EXPRESSPAY_TOKEN", "abc")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "https://api.express-pay.by/v1/", cfg.ExpressPay.BaseURL)
	assert.Equal(t, "1", cfg.ExpressPay.Version)
	assert.False(t, cfg.ExpressPay.APISignature)
	assert.False(t, cfg.ExpressPay.NotificationSignature)
}

func TestValidate(t *testing.T) {
	t.Run("TokenRequired", func(t *testing.T) {
		cfg := &Config{}
		assert.Error(t, cfg.Validate())
	})

	t.Run("SecretRequiredWhenSigningEnabled", func(t *testing.T) {
		cfg := &Config{}
		cfg.ExpressPay.Token = "abc"
		cfg.ExpressPay.APISignature = true
		assert.Error(t, cfg.Validate())

		cfg.ExpressPay.APISecret = "secret"
		require.NoError(t, cfg.Validate())

		cfg.ExpressPay.NotificationSignature = true
		assert.Error(t, cfg.Validate())

		cfg.ExpressPay.NotificationSecret = "secret"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("SigningDisabledNeedsNoSecrets", func(t *testing.T) {
		cfg := &Config{}
		cfg.ExpressPay.Token = "abc"
		assert.NoError(t, cfg.Validate())
	})
}
