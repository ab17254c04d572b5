package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid JSON config",
			config: Config{
				Level:  "info",
				Format: "json",
			},
			wantErr: false,
		},
		{
			name: "valid text config",
			config: Config{
				Level:  "debug",
				Format: "text",
			},
			wantErr: false,
		},
		{
			name:    "empty config uses defaults",
			config:  Config{},
			wantErr: false,
		},
		{
			name: "uppercase level accepted",
			config: Config{
				Level:  "WARN",
				Format: "json",
			},
			wantErr: false,
		},
		{
			name: "invalid log level",
			config: Config{
				Level:  "loud",
				Format: "json",
			},
			wantErr: true,
		},
		{
			name: "invalid format",
			config: Config{
				Level:  "info",
				Format: "xml",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.config)
			if tt.wantErr {
				if err == nil {
					t.Fatal("New() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() unexpected error: %v", err)
			}
			if logger == nil {
				t.Fatal("New() returned nil logger")
			}
		})
	}
}

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	logger.Info("parse complete", "source", "population", "rows", 12)

	out := buf.String()
	if !strings.Contains(out, `"msg":"parse complete"`) {
		t.Errorf("JSON output missing message: %q", out)
	}
	if !strings.Contains(out, `"source":"population"`) {
		t.Errorf("JSON output missing attribute: %q", out)
	}
}

func TestNew_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "info", Format: "text", Writer: &buf})
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	logger.Info("parse complete", "rows", 12)

	out := buf.String()
	if !strings.Contains(out, `msg="parse complete"`) {
		t.Errorf("text output missing message: %q", out)
	}
	if !strings.Contains(out, "rows=12") {
		t.Errorf("text output missing attribute: %q", out)
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "warn", Format: "text", Writer: &buf})
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	logger.Info("should be filtered")
	if buf.Len() != 0 {
		t.Errorf("info line not filtered at warn level: %q", buf.String())
	}

	logger.Warn("should appear")
	if !strings.Contains(buf.String(), "should appear") {
		t.Errorf("warn line missing from output: %q", buf.String())
	}
}

func TestSetup_InstallsDefault(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	logger, err := Setup(Config{Level: "info", Format: "text", Writer: &buf})
	if err != nil {
		t.Fatalf("Setup() unexpected error: %v", err)
	}
	if logger == nil {
		t.Fatal("Setup() returned nil logger")
	}

	slog.Info("via default")
	if !strings.Contains(buf.String(), "via default") {
		t.Errorf("slog.Default() did not use configured writer: %q", buf.String())
	}
}

func TestSetup_InvalidConfigKeepsDefault(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	if _, err := Setup(Config{Level: "bogus"}); err == nil {
		t.Fatal("Setup() expected error for invalid level")
	}
	if slog.Default() != prev {
		t.Error("Setup() replaced default logger despite error")
	}
}
