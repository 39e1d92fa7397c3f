package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if cfg.StatsConf.Driver != "file" || cfg.HttpPort != 8080 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.QuizConf.TTL != 30*time.Minute {
		t.Fatalf("quiz ttl default = %v", cfg.QuizConf.TTL)
	}
	if cfg.EngineConf.AgariCacheSize != 1<<16 {
		t.Fatalf("agari cache size default = %d", cfg.EngineConf.AgariCacheSize)
	}
	if Conf != cfg {
		t.Fatalf("Load must publish the parsed config")
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "app.yaml")
	content := []byte(`
appName: gate
httpPort: 9000
log:
  level: debug
stats:
  driver: redis
quiz:
  ttl: 90s
database:
  redis:
    addr: 127.0.0.1:6379
`)
	if err := os.WriteFile(file, content, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AppName != "gate" || cfg.HttpPort != 9000 || cfg.Log.Level != "debug" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.StatsConf.Driver != "redis" || cfg.DatabaseConf.RedisConf.Addr != "127.0.0.1:6379" {
		t.Fatalf("nested values not applied: %+v", cfg)
	}
	if cfg.QuizConf.TTL != 90*time.Second {
		t.Fatalf("ttl = %v", cfg.QuizConf.TTL)
	}
	if cfg.JwtConf.Secret != "from-env" {
		t.Fatalf("env override not applied: %q", cfg.JwtConf.Secret)
	}
	if cfg.JwtConf.ExpireDuration() != 7*24*time.Hour {
		t.Fatalf("expire = %v", cfg.JwtConf.ExpireDuration())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
