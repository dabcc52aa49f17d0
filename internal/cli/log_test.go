package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLevelFor(t *testing.T) {
	if got := levelFor(true); got != log.DebugLevel {
		t.Errorf("levelFor(true) = %v, want debug", got)
	}
	if got := levelFor(false); got != log.InfoLevel {
		t.Errorf("levelFor(false) = %v, want info", got)
	}
}

func TestNewLoggerFilters(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		log   func(*log.Logger)
		want  bool
	}{
		{"info passes at info", log.InfoLevel, func(l *log.Logger) { l.Info("ingested") }, true},
		{"debug dropped at info", log.InfoLevel, func(l *log.Logger) { l.Debug("skipped edge") }, false},
		{"debug passes at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("skipped edge") }, true},
		{"warn passes at info", log.InfoLevel, func(l *log.Logger) { l.Warn("table rejected") }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("wrote output = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(newLogger(&buf, log.InfoLevel))
	p.done("rendered", "input", "refinery.tsv")

	out := buf.String()
	for _, want := range []string{"rendered", "input=refinery.tsv", "elapsed="} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}
