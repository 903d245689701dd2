package app

import "testing"

func TestConfigValidateRequiresAPIKey(t *testing.T) {
	cfg := Config{}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation failure without an api key")
	}
}

func TestConfigValidateDefaultsDataDir(t *testing.T) {
	cfg := Config{TMDBAPIKey: "k"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if cfg.DataDir == "" {
		t.Fatalf("expected a default data dir")
	}
}

func TestConfigValidateRejectsEndpointWithoutAccount(t *testing.T) {
	cfg := Config{TMDBAPIKey: "k", EngageEndpoint: "https://engage.example.com"}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected rejection of endpoint without account id")
	}
}

func TestEngageConfigured(t *testing.T) {
	cfg := Config{EngageEndpoint: "https://engage.example.com", EngageAccountID: "acct"}
	if !cfg.EngageConfigured() {
		t.Fatalf("expected configured")
	}
	if (Config{EngageEndpoint: "https://engage.example.com"}).EngageConfigured() {
		t.Fatalf("expected unconfigured without account id")
	}
}
