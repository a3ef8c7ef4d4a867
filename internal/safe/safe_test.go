package safe

import (
	"errors"
	"testing"
)

func TestCall_PassesThroughError(t *testing.T) {
	want := errors.New("boom")
	err := Call(func() error { return want })
	if !errors.Is(err, want) {
		t.Errorf("Call returned %v, want %v", err, want)
	}
}

func TestCall_RecoversPanic(t *testing.T) {
	err := Call(func() error {
		panic("segment search exploded")
	})
	if err == nil {
		t.Fatal("expected an error from a recovered panic")
	}
	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PanicError, got %T", err)
	}
	if pe.Info != "segment search exploded" {
		t.Errorf("Info = %v, want %q", pe.Info, "segment search exploded")
	}
}

func TestCall_NilOnSuccess(t *testing.T) {
	if err := Call(func() error { return nil }); err != nil {
		t.Errorf("Call() = %v, want nil", err)
	}
}
