package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_DSN", "dinein.db")
	t.Setenv("READ_TIMEOUT", "5s")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("PUBLIC_URL", "http://api.test/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Driver != "sqlite" {
		t.Errorf("driver = %s, want sqlite", cfg.Database.Driver)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("read timeout = %v, want 5s", cfg.Server.ReadTimeout)
	}
	if len(cfg.Server.AllowedOrigins) != 2 || cfg.Server.AllowedOrigins[1] != "http://b.test" {
		t.Errorf("allowed origins = %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Server.PublicURL != "http://api.test" {
		t.Errorf("public url = %s, want trailing slash trimmed", cfg.Server.PublicURL)
	}
	if cfg.Upload.MaxSize != 5<<20 {
		t.Errorf("max upload = %d, want 5MB", cfg.Upload.MaxSize)
	}
	if cfg.PayPal.Enabled() {
		t.Error("paypal should be disabled without credentials")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			LogLevel: "info",
			Server:   ServerConfig{Port: "8083", GinMode: "debug"},
			Database: DatabaseConfig{Driver: "postgres", DSN: "host=localhost"},
			Auth:     AuthConfig{JWTSecret: "secret"},
			Upload:   UploadConfig{MaxSize: 1 << 20},
			PayPal:   PayPalConfig{Mode: "sandbox"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "mysql" }, wantErr: true},
		{name: "empty dsn", mutate: func(c *Config) { c.Database.DSN = "" }, wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "verbose" }, wantErr: true},
		{name: "bad paypal mode", mutate: func(c *Config) { c.PayPal.Mode = "prod" }, wantErr: true},
		{
			name: "default secret in release",
			mutate: func(c *Config) {
				c.Server.GinMode = "release"
				c.Auth.JWTSecret = "dinein-dev-secret"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
