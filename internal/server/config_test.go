package server

import "testing"

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	if cfg.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Port)
	}
	if cfg.ReadTimeout != 15 || cfg.WriteTimeout != 15 {
		t.Errorf("timeouts = %d/%d, want 15/15", cfg.ReadTimeout, cfg.WriteTimeout)
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		t.Error("expected default CORS origins")
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{Port: 70000}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() = nil with an out-of-range port")
	}

	cfg = &Config{Port: 8080, ReadTimeout: -1}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() = nil with a negative read timeout")
	}

	cfg = &Config{}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}
