package config

import "testing"

func TestNewProducesEngineDefaults(t *testing.T) {
	c := New()
	p := c.Params()

	if p.K != 64 {
		t.Errorf("K = %d, want 64", p.K)
	}
	if p.Epsilon != 0.03 {
		t.Errorf("Epsilon = %f, want 0.03", p.Epsilon)
	}
	if p.Effort != 2 {
		t.Errorf("Effort = %d, want 2", p.Effort)
	}
}

func TestSetOverridesParams(t *testing.T) {
	c := New()
	c.Set("partition.k", 8)
	c.Set("partition.epsilon", 0.1)

	p := c.Params()
	if p.K != 8 {
		t.Errorf("K = %d, want 8 after override", p.K)
	}
	if p.Epsilon != 0.1 {
		t.Errorf("Epsilon = %f, want 0.1 after override", p.Epsilon)
	}
}

func TestLogDefaults(t *testing.T) {
	c := New()
	if c.LogLevel() != "info" {
		t.Errorf("LogLevel() = %q, want %q", c.LogLevel(), "info")
	}
	if !c.EnableProgress() {
		t.Errorf("EnableProgress() = false, want true")
	}
}
