package config

import "testing"

func TestOverrides(t *testing.T) {
	t.Setenv("MINILIB_DATA_DIR", "/tmp/minilib-test")
	t.Setenv("MINILIB_LISTEN_ADDR", ":8080")
	t.Setenv("MINILIB_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataDir != "/tmp/minilib-test" {
		t.Fatalf("DataDir = %q", cfg.DataDir)
	}
	if cfg.ListenAddr != ":8080" {
		t.Fatalf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q", cfg.LogLevel)
	}
}
