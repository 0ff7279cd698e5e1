package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_JSONIncludesServiceAndComponent(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: INFO, Format: JSON, Output: &buf, Service: "bookings"})

	log.Component("availability").Info("room evaluated", "room_id", 7)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected JSON record, got %q: %v", buf.String(), err)
	}
	if record[SERVICE] != "bookings" {
		t.Errorf("expected service=bookings, got %v", record[SERVICE])
	}
	if record[COMPONENT] != "availability" {
		t.Errorf("expected component=availability, got %v", record[COMPONENT])
	}
	if record["room_id"] != float64(7) {
		t.Errorf("expected room_id=7, got %v", record["room_id"])
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	tests := []struct {
		level       string
		debugLogged bool
		infoLogged  bool
	}{
		{level: DEBUG, debugLogged: true, infoLogged: true},
		{level: INFO, debugLogged: false, infoLogged: true},
		{level: WARN, debugLogged: false, infoLogged: false},
		{level: "unknown", debugLogged: false, infoLogged: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(Config{Level: tt.level, Format: TEXT, Output: &buf})

			log.Debug("debug message")
			log.Info("info message")

			out := buf.String()
			if got := strings.Contains(out, "debug message"); got != tt.debugLogged {
				t.Errorf("debug logged = %v, expected %v", got, tt.debugLogged)
			}
			if got := strings.Contains(out, "info message"); got != tt.infoLogged {
				t.Errorf("info logged = %v, expected %v", got, tt.infoLogged)
			}
		})
	}
}
