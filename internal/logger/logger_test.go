package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogRotation(t *testing.T) {
	tempDir := t.TempDir()
	logFile := filepath.Join(tempDir, "cargen.log")

	cfg := FileConfig{
		Path:       logFile,
		MaxSizeMB:  1, // smallest lumberjack allows
		MaxBackups: 2,
		MaxAgeDays: 1,
		Compress:   false,
	}

	if err := InitWithFileConfig("debug", cfg, false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	defer Nop()

	// ~300 bytes per JSON line, 15000 lines comfortably exceeds 1MB
	longMessage := strings.Repeat("x", 200)
	for i := 0; i < 15000; i++ {
		Sugar.Infof("car %d: %s", i, longMessage)
	}
	Sync()

	if _, err := os.Stat(logFile); os.IsNotExist(err) {
		t.Error("main log file does not exist")
	}

	files, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatalf("failed to read temp dir: %v", err)
	}

	rotated := 0
	for _, f := range files {
		name := f.Name()
		if name == "cargen.log" || !strings.HasPrefix(name, "cargen") {
			continue
		}
		rotated++
		// cargen-YYYY-MM-DDTHH-MM-SS.SSS.log
		if !strings.Contains(name, "-20") {
			t.Errorf("rotated file %s doesn't have expected timestamp format", name)
		}
	}
	if rotated == 0 {
		t.Error("no rotated files found")
	}
}

func TestLogLevels(t *testing.T) {
	tempDir := t.TempDir()
	defer Nop()

	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{"error", []string{`"error"`}, []string{`"warn"`, `"info"`, `"debug"`}},
		{"warn", []string{`"error"`, `"warn"`}, []string{`"info"`, `"debug"`}},
		{"info", []string{`"error"`, `"warn"`, `"info"`}, []string{`"debug"`}},
		{"debug", []string{`"error"`, `"warn"`, `"info"`, `"debug"`}, nil},
		{"bogus", []string{`"info"`}, []string{`"debug"`}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := filepath.Join(tempDir, tt.level+".log")
			cfg := FileConfig{Path: logFile, MaxSizeMB: 10, MaxBackups: 1, MaxAgeDays: 1}

			if err := InitWithFileConfig(tt.level, cfg, false); err != nil {
				t.Fatalf("failed to init logger: %v", err)
			}

			Debug("d")
			Info("i")
			Warn("w")
			Error("e")
			Sync()

			content, err := os.ReadFile(logFile)
			if err != nil {
				t.Fatalf("failed to read log file: %v", err)
			}
			logContent := string(content)

			for _, exp := range tt.expected {
				if !strings.Contains(logContent, `"level":`+exp) {
					t.Errorf("expected level %s in log output", exp)
				}
			}
			for _, exc := range tt.excluded {
				if strings.Contains(logContent, `"level":`+exc) {
					t.Errorf("unexpected level %s in log output for level %s", exc, tt.level)
				}
			}
		})
	}
}

func TestInitWithCoreAndNamed(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	InitWithCore(core)
	defer Nop()

	Debug("car built", zap.String("color", "#348868"))
	Named("traffic").Info("spawn", zap.Int("lane", 1))

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["color"]; got != "#348868" {
		t.Errorf("expected color field, got %v", got)
	}
	if entries[1].LoggerName != "traffic" {
		t.Errorf("expected logger name traffic, got %q", entries[1].LoggerName)
	}
}

func TestNopDiscards(t *testing.T) {
	Nop()
	// Must not panic without Init.
	Debug("ignored")
	Info("ignored")
	Sync()
	if Log.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("nop logger should not enable any level")
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/autobahn.log")

	if cfg.Path != "/tmp/autobahn.log" {
		t.Errorf("expected path /tmp/autobahn.log, got %s", cfg.Path)
	}
	if cfg.MaxSizeMB != 20 {
		t.Errorf("expected MaxSizeMB 20, got %d", cfg.MaxSizeMB)
	}
	if cfg.MaxBackups != 3 {
		t.Errorf("expected MaxBackups 3, got %d", cfg.MaxBackups)
	}
	if cfg.MaxAgeDays != 7 {
		t.Errorf("expected MaxAgeDays 7, got %d", cfg.MaxAgeDays)
	}
	if !cfg.Compress {
		t.Error("expected Compress to be true")
	}
}
