package scheduler

import (
	"errors"
	"testing"
	"time"
)

func TestEveryValidation(t *testing.T) {
	s, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = s.Stop() }()

	if _, err := s.Every("  ", time.Minute, func() {}); !errors.Is(err, ErrEmptyJobName) {
		t.Errorf("err = %v, want ErrEmptyJobName", err)
	}
	if _, err := s.Every("refresh", 0, func() {}); !errors.Is(err, ErrEmptyInterval) {
		t.Errorf("err = %v, want ErrEmptyInterval", err)
	}
	if _, err := s.Every("refresh", time.Minute, func() {}); err != nil {
		t.Errorf("valid registration failed: %v", err)
	}
}

func TestStopIdempotent(t *testing.T) {
	s, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.Start()

	if err := s.Stop(); err != nil {
		t.Fatalf("first stop: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("second stop: %v", err)
	}
}
