package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.QueueSize != 32 {
		t.Errorf("QueueSize = %d, want 32", cfg.QueueSize)
	}
	if cfg.MaxSubscribers != 8 {
		t.Errorf("MaxSubscribers = %d, want 8", cfg.MaxSubscribers)
	}
	if cfg.TickMS != 50 {
		t.Errorf("TickMS = %d, want 50", cfg.TickMS)
	}
	if cfg.Demo != "sensor-dashboard" {
		t.Errorf("Demo = %q, want sensor-dashboard", cfg.Demo)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("EECSIM_QUEUE_SIZE", "64")
	t.Setenv("EECSIM_DEMO", "scope")
	t.Setenv("EECSIM_DIAG_ADDR", "127.0.0.1:9180")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.QueueSize != 64 {
		t.Errorf("QueueSize = %d, want 64", cfg.QueueSize)
	}
	if cfg.Demo != "scope" {
		t.Errorf("Demo = %q, want scope", cfg.Demo)
	}
	if cfg.DiagAddr != "127.0.0.1:9180" {
		t.Errorf("DiagAddr = %q, want 127.0.0.1:9180", cfg.DiagAddr)
	}
	// malformed ints keep the embedded value
	t.Setenv("EECSIM_TICK_MS", "soon")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TickMS != 50 {
		t.Errorf("TickMS = %d, want 50", cfg.TickMS)
	}
}

func TestLoadRejectsBadSizes(t *testing.T) {
	t.Setenv("EECSIM_QUEUE_SIZE", "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero queue size")
	}
}

func TestEmbeddedLookupOverride(t *testing.T) {
	orig := EmbeddedLookup
	defer func() { EmbeddedLookup = orig }()

	EmbeddedLookup = func() []byte { return []byte(`{"tick_ms": 16}`) }
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TickMS != 16 {
		t.Errorf("TickMS = %d, want 16", cfg.TickMS)
	}
	// unspecified keys fall back to package defaults
	if cfg.QueueSize != 32 {
		t.Errorf("QueueSize = %d, want 32", cfg.QueueSize)
	}

	EmbeddedLookup = func() []byte { return nil }
	if _, err := Load(); err == nil {
		t.Fatal("expected error for empty embedded config")
	}
}
