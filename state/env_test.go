package state

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"cssel/config"
)

func TestContextWithEnv(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))
	if env == nil {
		t.Fatal("EnvFromContext() returned nil")
	}
	if env.start.IsZero() {
		t.Error("Environment start time not set")
	}
	if env.Log == nil {
		t.Error("Environment must have usable logger before configuration is loaded")
	}
}

func TestEnvFromContext_Missing(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic when env not in context")
		}
	}()
	EnvFromContext(context.Background())
}

func TestLocalEnv_Uptime(t *testing.T) {
	env := &LocalEnv{start: time.Now()}
	time.Sleep(10 * time.Millisecond)
	if uptime := env.Uptime(); uptime < 10*time.Millisecond {
		t.Errorf("Uptime() = %v, expected at least 10ms", uptime)
	}
}

func TestLocalEnv_NewParser(t *testing.T) {
	tests := []struct {
		name       string
		cfg        *config.Config
		strict     bool
		wantStrict bool
	}{
		{name: "no config", cfg: nil, strict: false, wantStrict: false},
		{name: "flag", cfg: nil, strict: true, wantStrict: true},
		{name: "config", cfg: &config.Config{Parser: config.ParserConfig{StrictElements: true}}, strict: false, wantStrict: true},
		{name: "config off", cfg: &config.Config{}, strict: false, wantStrict: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := &LocalEnv{Cfg: tt.cfg, Log: zaptest.NewLogger(t)}
			_, err := env.NewParser(tt.strict).Parse("custom-element")
			if gotStrict := err != nil; gotStrict != tt.wantStrict {
				t.Errorf("strict = %v, want %v (err: %v)", gotStrict, tt.wantStrict, err)
			}
		})
	}
}

func TestLocalEnv_RedirectAndRestore(t *testing.T) {
	env := &LocalEnv{
		Log: zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1))),
	}

	for i := 0; i < 3; i++ {
		env.RedirectStdLog()
		if env.restoreStdLog == nil {
			t.Errorf("Iteration %d: restoreStdLog not set", i)
		}
		env.RestoreStdLog()
	}

	// nil logger is ignored
	env = &LocalEnv{}
	env.RedirectStdLog()
	if env.restoreStdLog != nil {
		t.Error("Expected restoreStdLog to remain nil")
	}
	env.RestoreStdLog()
}
