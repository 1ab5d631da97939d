package testutil

import (
	"context"
	"fmt"
	"testing"
)

type fakeComponent struct {
	started int
	stopped int
	resets  int
	failOn  string
}

func (c *fakeComponent) Name() string { return "fake" }

func (c *fakeComponent) Start(context.Context) error {
	if c.failOn == "start" {
		return fmt.Errorf("start failed")
	}
	c.started++
	return nil
}

func (c *fakeComponent) Stop(context.Context) error {
	if c.failOn == "stop" {
		return fmt.Errorf("stop failed")
	}
	c.stopped++
	return nil
}

func (c *fakeComponent) Reset(context.Context) error {
	if c.failOn == "reset" {
		return fmt.Errorf("reset failed")
	}
	c.resets++
	return nil
}

func TestSetup(t *testing.T) {
	c := &fakeComponent{}
	cleanup, err := Setup(c)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if c.started != 1 {
		t.Errorf("expected 1 start, got %d", c.started)
	}
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if c.stopped != 1 {
		t.Errorf("expected 1 stop, got %d", c.stopped)
	}
}

func TestSetup_StartFailure(t *testing.T) {
	c := &fakeComponent{failOn: "start"}
	if _, err := Setup(c); err == nil {
		t.Fatal("expected error")
	}
}

func TestTHelper_SetupAndReset(t *testing.T) {
	c := &fakeComponent{}
	h := T(t)
	h.Setup(c)
	if c.started != 1 {
		t.Errorf("expected 1 start, got %d", c.started)
	}
	h.Reset(c)
	if c.resets != 1 {
		t.Errorf("expected 1 reset, got %d", c.resets)
	}
	// Stop runs via t.Cleanup when the test finishes.
}
