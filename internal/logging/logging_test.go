package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mattyoungaviation-collab/craftworld-tools-sub000/internal/config"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		conf      config.LoggingConfig
		override  string
		wantLevel zapcore.Level
		wantErr   bool
	}{
		{name: "Defaults", wantLevel: zapcore.InfoLevel},
		{name: "Config level", conf: config.LoggingConfig{Level: "warn", Format: "console"}, wantLevel: zapcore.WarnLevel},
		{name: "Override wins", conf: config.LoggingConfig{Level: "warn"}, override: "debug", wantLevel: zapcore.DebugLevel},
		{name: "Bad level", conf: config.LoggingConfig{Level: "loud"}, wantErr: true},
		{name: "Bad format", conf: config.LoggingConfig{Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.conf, tt.override)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if !logger.Core().Enabled(tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
			if tt.wantLevel > zapcore.DebugLevel && logger.Core().Enabled(tt.wantLevel-1) {
				t.Errorf("expected level below %v to be disabled", tt.wantLevel)
			}
		})
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "craftplan.log")

	logger, err := New(config.LoggingConfig{OutputFile: path}, "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected log output in file")
	}
}
