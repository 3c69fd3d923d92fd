package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "HTML2TWIG_API_KEY", "WORKER_COUNT", "JOB_TTL", "CACHE_SIZE", "DEFAULT_THEME", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.Port != "8090" {
		t.Errorf("Port = %q, want 8090", cfg.Port)
	}
	if cfg.WorkerCount != 4 {
		t.Errorf("WorkerCount = %d, want 4", cfg.WorkerCount)
	}
	if cfg.JobTTL != time.Hour {
		t.Errorf("JobTTL = %v, want 1h", cfg.JobTTL)
	}
	if cfg.CacheSize != 256 {
		t.Errorf("CacheSize = %d, want 256", cfg.CacheSize)
	}
	if cfg.DefaultTheme != "mytheme" {
		t.Errorf("DefaultTheme = %q, want mytheme", cfg.DefaultTheme)
	}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "HTML2TWIG_API_KEY") {
		t.Errorf("Validate() = %v, want missing key error", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTML2TWIG_API_KEY", "secret")
	t.Setenv("WORKER_COUNT", "8")
	t.Setenv("MAX_QUEUE_SIZE", "-1")
	t.Setenv("JOB_TTL", "15m")
	t.Setenv("DEFAULT_LAYOUT", "base")
	t.Setenv("LOG_COMPRESS", "false")
	t.Setenv("MAX_UPLOAD_BYTES", "not-a-number")

	cfg := Load()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.WorkerCount != 8 {
		t.Errorf("WorkerCount = %d, want 8", cfg.WorkerCount)
	}
	if cfg.MaxQueueSize != 100 {
		t.Errorf("MaxQueueSize = %d, want fallback 100", cfg.MaxQueueSize)
	}
	if cfg.JobTTL != 15*time.Minute {
		t.Errorf("JobTTL = %v, want 15m", cfg.JobTTL)
	}
	if cfg.DefaultLayout != "base" {
		t.Errorf("DefaultLayout = %q", cfg.DefaultLayout)
	}
	if cfg.MaxUploadBytes != 10485760 {
		t.Errorf("MaxUploadBytes = %d, want default", cfg.MaxUploadBytes)
	}
	if lc := cfg.Logging(); lc.Compress {
		t.Error("Logging().Compress = true, want false")
	}
}

func TestLoadProject(t *testing.T) {
	dir := t.TempDir()

	p, err := LoadProject(dir)
	if err != nil {
		t.Fatalf("missing file: %v", err)
	}
	if p.Target != "" || !p.WantReport() {
		t.Errorf("zero project = %+v", p)
	}

	content := "target: wordpress\ntheme: acme\noutput_dir: out\nreport: false\nworkers: 2\n"
	if err := os.WriteFile(filepath.Join(dir, ProjectFile), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err = LoadProject(dir)
	if err != nil {
		t.Fatalf("LoadProject: %v", err)
	}
	if p.Target != "wordpress" || p.Theme != "acme" || p.OutputDir != "out" || p.Workers != 2 {
		t.Errorf("project = %+v", p)
	}
	if p.WantReport() {
		t.Error("WantReport() = true, want false")
	}
}

func TestLoadProject_Invalid(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ProjectFile), []byte("workers: -3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadProject(dir); err == nil {
		t.Error("expected error for negative workers")
	}

	if err := os.WriteFile(filepath.Join(dir, ProjectFile), []byte("target: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadProject(dir); err == nil {
		t.Error("expected YAML error")
	}
}
