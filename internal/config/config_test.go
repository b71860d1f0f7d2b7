package config

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    Config
		wantErr error
	}{
		{
			name: "defaults",
			env:  nil,
			want: Default(),
		},
		{
			name: "overrides",
			env: map[string]string{
				EnvAddr:           ":8080",
				EnvAllowedOrigins: "http://a.test, http://b.test",
				EnvSearchDepth:    "3",
				EnvSeed:           "42",
				EnvLogDev:         "true",
			},
			want: Config{
				Addr:           ":8080",
				AllowedOrigins: "http://a.test, http://b.test",
				SearchDepth:    3,
				Seed:           42,
				LogDev:         true,
			},
		},
		{"bad depth", map[string]string{EnvSearchDepth: "deep"}, Config{}, ErrInvalidConfig},
		{"zero depth", map[string]string{EnvSearchDepth: "0"}, Config{}, ErrInvalidConfig},
		{"bad seed", map[string]string{EnvSeed: "x"}, Config{}, ErrInvalidConfig},
		{"bad log flag", map[string]string{EnvLogDev: "maybe"}, Config{}, ErrInvalidConfig},
		{"empty addr", map[string]string{EnvAddr: ""}, Config{}, ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := load(lookupFrom(tt.env))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("load() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("load() error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOrigins(t *testing.T) {
	cfg := Config{AllowedOrigins: " http://a.test ,,http://b.test,"}
	want := []string{"http://a.test", "http://b.test"}
	if diff := cmp.Diff(want, cfg.Origins()); diff != "" {
		t.Errorf("Origins() mismatch (-want +got):\n%s", diff)
	}
}
