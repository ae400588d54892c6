package envdefaults

import (
	"testing"
	"time"
)

type testKnobs struct {
	TTL        time.Duration `env:"TEST_TTL" envDefault:"1h"`
	RetryCount int           `env:"TEST_RETRY_COUNT" envDefault:"3"`
	Label      string        `env:"TEST_LABEL" envDefault:"fallback"`
}

func fakeEnv(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestPopulate_UsesDefaultsWhenUnset(t *testing.T) {
	var k testKnobs
	if err := Populate(&k, fakeEnv(nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k.TTL != time.Hour {
		t.Errorf("expected default TTL 1h, got %v", k.TTL)
	}
	if k.RetryCount != 3 {
		t.Errorf("expected default retry count 3, got %d", k.RetryCount)
	}
	if k.Label != "fallback" {
		t.Errorf("expected default label, got %q", k.Label)
	}
}

func TestPopulate_EnvironmentOverrides(t *testing.T) {
	var k testKnobs
	env := fakeEnv(map[string]string{
		"TEST_TTL":         "30m",
		"TEST_RETRY_COUNT": "5",
		"TEST_LABEL":       "override",
	})
	if err := Populate(&k, env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k.TTL != 30*time.Minute {
		t.Errorf("expected overridden TTL 30m, got %v", k.TTL)
	}
	if k.RetryCount != 5 {
		t.Errorf("expected overridden retry count 5, got %d", k.RetryCount)
	}
	if k.Label != "override" {
		t.Errorf("expected overridden label, got %q", k.Label)
	}
}

func TestPopulate_MalformedDurationReturnsError(t *testing.T) {
	var k testKnobs
	env := fakeEnv(map[string]string{"TEST_TTL": "not-a-duration"})
	if err := Populate(&k, env); err == nil {
		t.Fatal("expected error for malformed duration")
	}
}

func TestPopulate_RejectsNonPointer(t *testing.T) {
	if err := Populate(testKnobs{}, fakeEnv(nil)); err == nil {
		t.Fatal("expected error for non-pointer argument")
	}
}
