package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(viper.New(), t.TempDir())
	if err != nil {
		t.Fatalf("Failed to load defaults: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("Expected postgres driver, got %s", cfg.Database.Driver)
	}
	if cfg.Session.TTL != 12*time.Hour {
		t.Errorf("Expected 12h session ttl, got %v", cfg.Session.TTL)
	}
	if cfg.Redis.Addr != "" {
		t.Errorf("Expected empty redis addr, got %q", cfg.Redis.Addr)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("STATIONHUB_DATABASE__DRIVER", "sqlite")
	t.Setenv("STATIONHUB_DATABASE__PATH", "/tmp/stationhub-test.db")
	t.Setenv("STATIONHUB_SERVER__PORT", "9191")
	t.Setenv("STATIONHUB_SESSION__TTL", "30m")

	cfg, err := load(viper.New(), t.TempDir())
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Expected sqlite driver, got %s", cfg.Database.Driver)
	}
	if cfg.Database.Path != "/tmp/stationhub-test.db" {
		t.Errorf("Unexpected path %s", cfg.Database.Path)
	}
	if cfg.Server.Port != 9191 {
		t.Errorf("Expected port 9191, got %d", cfg.Server.Port)
	}
	if cfg.Session.TTL != 30*time.Minute {
		t.Errorf("Expected 30m ttl, got %v", cfg.Session.TTL)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
server:
  port: 7000
database:
  driver: pgx
  host: db.internal
redis:
  addr: redis:6379
`)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := load(viper.New(), dir)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Port != 7000 {
		t.Errorf("Expected port 7000, got %d", cfg.Server.Port)
	}
	if cfg.Database.Driver != "pgx" || cfg.Database.Host != "db.internal" {
		t.Errorf("Unexpected database config %+v", cfg.Database)
	}
	if cfg.Redis.Addr != "redis:6379" {
		t.Errorf("Expected redis addr, got %q", cfg.Redis.Addr)
	}
}

func TestValidateConfig(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 8080},
			Database: DatabaseConfig{Driver: "postgres", Host: "localhost"},
			Session:  SessionConfig{CookieName: "sid", TTL: time.Hour},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, true},
		{"postgres without host", func(c *Config) { c.Database.Host = "" }, true},
		{"sqlite without path", func(c *Config) { c.Database.Driver = "sqlite" }, true},
		{"zero ttl", func(c *Config) { c.Session.TTL = 0 }, true},
		{"bootstrap without password", func(c *Config) { c.Bootstrap.AdminUsername = "admin" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "h", Port: 1, User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
	want := "host=h port=1 user=u password=p dbname=d sslmode=disable"
	if d.DSN() != want {
		t.Errorf("Expected %q, got %q", want, d.DSN())
	}
}
