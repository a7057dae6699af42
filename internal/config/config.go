// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkordes/drivetime/internal/domain"
	"github.com/pkordes/drivetime/internal/maps"
)

// Config holds all configuration values for the bot server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of origins allowed to call /api/estimate.
	// Defaults to ["http://localhost:5173"]. Set CORS_ORIGINS to a
	// comma-separated list to override.
	CORSOrigins []string

	// DatabaseURL is the Postgres connection string. Optional; when empty
	// origins are kept in memory and lost on restart.
	DatabaseURL string

	// LineChannelSecret signs inbound webhooks. Required.
	LineChannelSecret string
	// LineAccessToken authorizes reply calls. Required.
	LineAccessToken string
	// MapsAPIKey authorizes Places and Directions calls. Required.
	MapsAPIKey string

	// MapsLanguage and MapsRegion localize provider results.
	// Defaults to "zh-TW" and "tw".
	MapsLanguage string
	MapsRegion   string

	// MapsBias prefers place candidates inside a circle. MAPS_BIAS is
	// "lat,lng,radiusMeters"; nil when unset.
	MapsBias *maps.Circle

	// ProviderTimeout bounds every Maps call. Defaults to 5s.
	ProviderTimeout time.Duration

	// PlaceCacheTTL is how long a resolved place is reused. Defaults to
	// 10m; 0 disables the cache.
	PlaceCacheTTL time.Duration

	// LinkPolicy is "place_id" (default) or "query".
	LinkPolicy string

	// Banner is the branding line of estimate replies.
	Banner string

	// Presets is the origin quick-reply menu. ORIGIN_PRESETS is
	// "label=address|label=address"; defaults to domain.DefaultPresets.
	Presets domain.Presets
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or the
// first optional variable that is set but unreadable.
func Load() (Config, error) {
	cfg := Config{
		Port:         getEnv("PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		CORSOrigins:  splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		MapsLanguage: getEnv("MAPS_LANGUAGE", "zh-TW"),
		MapsRegion:   getEnv("MAPS_REGION", "tw"),
		LinkPolicy:   getEnv("LINK_POLICY", "place_id"),
		Banner:       getEnv("SERVICE_BANNER", domain.DefaultBanner),
		Presets:      domain.DefaultPresets,
	}

	var missing []string
	required := []struct {
		key string
		dst *string
	}{
		{"LINE_CHANNEL_SECRET", &cfg.LineChannelSecret},
		{"LINE_CHANNEL_ACCESS_TOKEN", &cfg.LineAccessToken},
		{"GOOGLE_MAPS_API_KEY", &cfg.MapsAPIKey},
	}
	for _, r := range required {
		*r.dst = os.Getenv(r.key)
		if *r.dst == "" {
			missing = append(missing, r.key)
		}
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	var err error
	if cfg.ProviderTimeout, err = seconds("PROVIDER_TIMEOUT_SECONDS", 5); err != nil {
		return Config{}, err
	}
	if cfg.ProviderTimeout <= 0 {
		return Config{}, fmt.Errorf("PROVIDER_TIMEOUT_SECONDS must be positive")
	}
	if cfg.PlaceCacheTTL, err = seconds("PLACE_CACHE_TTL_SECONDS", 600); err != nil {
		return Config{}, err
	}
	if v := os.Getenv("MAPS_BIAS"); v != "" {
		if cfg.MapsBias, err = parseBias(v); err != nil {
			return Config{}, err
		}
	}
	if v := os.Getenv("ORIGIN_PRESETS"); v != "" {
		if cfg.Presets, err = parsePresets(v); err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// seconds reads a whole number of seconds, or fallback when unset.
func seconds(key string, fallback int) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return time.Duration(fallback) * time.Second, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s: want a non-negative number of seconds, got %q", key, v)
	}
	return time.Duration(n) * time.Second, nil
}

// parseBias reads "lat,lng,radiusMeters".
func parseBias(s string) (*maps.Circle, error) {
	parts := splitCSV(s)
	if len(parts) != 3 {
		return nil, fmt.Errorf("MAPS_BIAS: want lat,lng,radius, got %q", s)
	}
	lat, err1 := strconv.ParseFloat(parts[0], 64)
	lng, err2 := strconv.ParseFloat(parts[1], 64)
	radius, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil || radius <= 0 {
		return nil, fmt.Errorf("MAPS_BIAS: want lat,lng,radius, got %q", s)
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, fmt.Errorf("MAPS_BIAS: coordinates out of range in %q", s)
	}
	return &maps.Circle{Lat: lat, Lng: lng, RadiusMeters: radius}, nil
}

// parsePresets reads "label=address|label=address", keeping order.
func parsePresets(s string) (domain.Presets, error) {
	var out domain.Presets
	seen := map[string]bool{}
	for _, entry := range strings.Split(s, "|") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		label, addr, ok := strings.Cut(entry, "=")
		label, addr = strings.TrimSpace(label), strings.TrimSpace(addr)
		if !ok || label == "" || addr == "" {
			return nil, fmt.Errorf("ORIGIN_PRESETS: want label=address, got %q", entry)
		}
		if seen[label] {
			return nil, fmt.Errorf("ORIGIN_PRESETS: duplicate label %q", label)
		}
		seen[label] = true
		out = append(out, domain.Preset{Label: label, Address: addr})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("ORIGIN_PRESETS: no presets in %q", s)
	}
	return out, nil
}
