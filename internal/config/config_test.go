package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with defaults should succeed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("Gemini.Model = %q", cfg.Gemini.Model)
	}
	if !cfg.OpenAI.EnableFallback {
		t.Error("OpenAI fallback should default to enabled")
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("GOOGLE_SEARCH_API_KEY", "search-key")
	t.Setenv("GOOGLE_SEARCH_ENGINE_ID", "engine-id")
	t.Setenv("OPENAI_ENABLE_FALLBACK", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Search.APIKey != "search-key" || cfg.Search.EngineID != "engine-id" {
		t.Errorf("search credentials not read: %+v", cfg.Search)
	}
	if cfg.OpenAI.EnableFallback {
		t.Error("OPENAI_ENABLE_FALLBACK=false should disable the fallback")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:   ServerConfig{Host: "0.0.0.0", Port: 8080},
			Postgres: PostgresConfig{Host: "localhost"},
			Redis:    RedisConfig{Host: "localhost"},
		}
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	bad := base()
	bad.Server.Port = 0
	if err := bad.Validate(); err == nil {
		t.Error("port 0 should be rejected")
	}

	bad = base()
	bad.Postgres.Host = ""
	if err := bad.Validate(); err == nil {
		t.Error("missing postgres host should be rejected")
	}

	bad = base()
	bad.Redis.Host = ""
	if err := bad.Validate(); err == nil {
		t.Error("missing redis host should be rejected")
	}
}

// External API credentials are intentionally not validated at startup.
func TestValidateDoesNotRequireAPICredentials(t *testing.T) {
	cfg := &Config{
		Server:   ServerConfig{Port: 8080},
		Postgres: PostgresConfig{Host: "localhost"},
		Redis:    RedisConfig{Host: "localhost"},
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("config without API keys must still validate: %v", err)
	}
}
