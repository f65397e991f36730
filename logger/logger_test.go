package logger

import "testing"

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		env     string
		wantErr bool
	}{
		{name: "development debug", level: "debug", env: "development"},
		{name: "production info", level: "INFO", env: "production"},
		{name: "bad level", level: "loud", env: "development", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.level, tt.env)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				log.Infow("logger ready", "env", tt.env)
			}
		})
	}
}
