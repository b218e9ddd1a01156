package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads the configuration for the service: an optional YAML file, an
// optional .env file, then environment variables. Defaults are applied but
// validation is left to the caller so startup failures carry context.
func Load() (*Config, error) {
	v := viper.New()

	// 1. Load YAML config first (base configuration)
	if path := findConfigFile(); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	// 2. Load .env so its variables participate in env binding
	if path := findEnvFile(); path != "" {
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	// 3. Bind environment variables over the file values
	bindEnvVars(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.ApplyDefaults()
	return cfg, nil
}

// findConfigFile searches for config.yml in standard locations.
func findConfigFile() string {
	for _, path := range []string{
		"./config.yml",
		"./config/config.yml",
		"./cmd/authd/config.yml",
	} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findEnvFile searches for a .env file in standard locations.
func findEnvFile() string {
	for _, path := range []string{".env", "./cmd/authd/.env"} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// bindEnvVars sets every environment variable into Viper under the nested
// key spellings it could correspond to, so UPPER_CASE_WITH_UNDERSCORES
// variables override nested YAML keys (e.g. JWT_SECRET -> jwt.secret,
// DATABASE_MAX_OPEN_CONNS -> database.max_open_conns).
func bindEnvVars(v *viper.Viper) {
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 {
			continue
		}
		for _, variant := range envKeyVariants(pair[0]) {
			v.Set(variant, pair[1])
		}
	}
}

// envKeyVariants generates the nested key spellings an env var may map to.
func envKeyVariants(envKey string) []string {
	lowerKey := strings.ToLower(envKey)
	parts := strings.Split(lowerKey, "_")
	if len(parts) <= 1 {
		return []string{lowerKey}
	}

	variants := []string{
		lowerKey,
		strings.ReplaceAll(lowerKey, "_", "."),
	}

	// Split at each underscore position: section.rest_of_key
	for i := 1; i < len(parts); i++ {
		variants = append(variants, strings.Join(parts[:i], ".")+"."+strings.Join(parts[i:], "_"))
	}

	return variants
}
