package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/drivetime/internal/config"
	"github.com/pkordes/drivetime/internal/domain"
	"github.com/pkordes/drivetime/internal/maps"
)

// setRequired sets the three required variables and clears every optional one.
func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("LINE_CHANNEL_SECRET", "secret")
	t.Setenv("LINE_CHANNEL_ACCESS_TOKEN", "token")
	t.Setenv("GOOGLE_MAPS_API_KEY", "key")
	for _, k := range []string{
		"PORT", "LOG_LEVEL", "CORS_ORIGINS", "DATABASE_URL", "MAPS_LANGUAGE", "MAPS_REGION",
		"MAPS_BIAS", "PROVIDER_TIMEOUT_SECONDS", "PLACE_CACHE_TTL_SECONDS", "LINK_POLICY",
		"SERVICE_BANNER", "ORIGIN_PRESETS",
	} {
		t.Setenv(k, "")
	}
}

// TestLoad_defaults verifies that optional env vars fall back to their defaults
// when only the required variables are provided.
func TestLoad_defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	require.Empty(t, cfg.DatabaseURL)
	require.Equal(t, "secret", cfg.LineChannelSecret)
	require.Equal(t, "token", cfg.LineAccessToken)
	require.Equal(t, "key", cfg.MapsAPIKey)
	require.Equal(t, "zh-TW", cfg.MapsLanguage)
	require.Equal(t, "tw", cfg.MapsRegion)
	require.Nil(t, cfg.MapsBias)
	require.Equal(t, 5*time.Second, cfg.ProviderTimeout)
	require.Equal(t, 10*time.Minute, cfg.PlaceCacheTTL)
	require.Equal(t, "place_id", cfg.LinkPolicy)
	require.Equal(t, domain.DefaultBanner, cfg.Banner)
	require.Equal(t, domain.DefaultPresets, cfg.Presets)
}

// TestLoad_overrides verifies that all values can be overridden via env vars.
func TestLoad_overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("DATABASE_URL", "postgres://user:pass@db:5432/drivetime")
	t.Setenv("MAPS_LANGUAGE", "en")
	t.Setenv("MAPS_REGION", "us")
	t.Setenv("MAPS_BIAS", "24.1477, 120.6736, 30000")
	t.Setenv("PROVIDER_TIMEOUT_SECONDS", "3")
	t.Setenv("PLACE_CACHE_TTL_SECONDS", "0")
	t.Setenv("LINK_POLICY", "query")
	t.Setenv("SERVICE_BANNER", "代駕")
	t.Setenv("ORIGIN_PRESETS", "家=台中市西屯區 | 公司=台中市西區")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	require.Equal(t, "postgres://user:pass@db:5432/drivetime", cfg.DatabaseURL)
	require.Equal(t, "en", cfg.MapsLanguage)
	require.Equal(t, "us", cfg.MapsRegion)
	require.Equal(t, &maps.Circle{Lat: 24.1477, Lng: 120.6736, RadiusMeters: 30000}, cfg.MapsBias)
	require.Equal(t, 3*time.Second, cfg.ProviderTimeout)
	require.Zero(t, cfg.PlaceCacheTTL)
	require.Equal(t, "query", cfg.LinkPolicy)
	require.Equal(t, "代駕", cfg.Banner)
	require.Equal(t, domain.Presets{
		{Label: "家", Address: "台中市西屯區"},
		{Label: "公司", Address: "台中市西區"},
	}, cfg.Presets)
}

// TestLoad_missingRequired verifies that the error names every missing
// required variable.
func TestLoad_missingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("LINE_CHANNEL_SECRET", "")
	t.Setenv("GOOGLE_MAPS_API_KEY", "")

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "LINE_CHANNEL_SECRET")
	require.ErrorContains(t, err, "GOOGLE_MAPS_API_KEY")
	require.NotContains(t, err.Error(), "LINE_CHANNEL_ACCESS_TOKEN")
}

// TestLoad_invalidOptional verifies that a set but unreadable optional
// variable is an error naming it, not a silent default.
func TestLoad_invalidOptional(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"PROVIDER_TIMEOUT_SECONDS", "soon"},
		{"PROVIDER_TIMEOUT_SECONDS", "0"},
		{"PLACE_CACHE_TTL_SECONDS", "-1"},
		{"MAPS_BIAS", "24.1,120.6"},
		{"MAPS_BIAS", "95,120.6,1000"},
		{"MAPS_BIAS", "24.1,120.6,0"},
		{"ORIGIN_PRESETS", "no-equals-sign"},
		{"ORIGIN_PRESETS", "家=a|家=b"},
		{"ORIGIN_PRESETS", "|"},
	}

	for _, tc := range tests {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tc.key, tc.value)

			_, err := config.Load()

			require.Error(t, err)
			require.ErrorContains(t, err, tc.key)
		})
	}
}
