package trickle

import (
	"errors"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port, DefaultPort)
	}
	if cfg.Run {
		t.Errorf("Run = true, want false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"minimum port", Config{Port: MinPort}, nil},
		{"maximum port", Config{Port: MaxPort}, nil},
		{"below range", Config{Port: MinPort - 1}, ErrPortRange},
		{"above range", Config{Port: MaxPort + 1}, ErrPortRange},
		{"privileged port", Config{Port: 80}, ErrPortRange},
		{"zero port", Config{Port: 0}, ErrPortRange},
		{"run without webroot", Config{Run: true, Port: DefaultPort}, ErrNoWebroot},
		{"run with webroot", Config{Run: true, Port: DefaultPort, Webroot: "/srv/www"}, nil},
		{"stopped without webroot", Config{Port: DefaultPort}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate failed: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
