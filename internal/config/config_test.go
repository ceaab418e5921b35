package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "MONGO_URI", "MONGO_DB", "ACCESS_TOKEN_SECRET", "CORS_ORIGIN"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8000" {
		t.Errorf("Port: got %q, want 8000", cfg.Port)
	}
	if cfg.MongoURI != "mongodb://localhost:27017" {
		t.Errorf("MongoURI: got %q", cfg.MongoURI)
	}
	if cfg.MongoDB != "notes_app" {
		t.Errorf("MongoDB: got %q", cfg.MongoDB)
	}
	if cfg.AccessTokenSecret != "" {
		t.Errorf("AccessTokenSecret should default empty, got %q", cfg.AccessTokenSecret)
	}
	if cfg.CORSOrigin != "*" {
		t.Errorf("CORSOrigin: got %q, want *", cfg.CORSOrigin)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("MONGO_DB", "notes_test")
	t.Setenv("ACCESS_TOKEN_SECRET", "s3cret")
	t.Setenv("CORS_ORIGIN", "https://notes.example.com")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("Port: got %q, want 9000", cfg.Port)
	}
	if cfg.MongoURI != "mongodb://db:27017" {
		t.Errorf("MongoURI: got %q", cfg.MongoURI)
	}
	if cfg.MongoDB != "notes_test" {
		t.Errorf("MongoDB: got %q", cfg.MongoDB)
	}
	if cfg.AccessTokenSecret != "s3cret" {
		t.Errorf("AccessTokenSecret: got %q", cfg.AccessTokenSecret)
	}
	if cfg.CORSOrigin != "https://notes.example.com" {
		t.Errorf("CORSOrigin: got %q", cfg.CORSOrigin)
	}
}
