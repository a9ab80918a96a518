package main

import (
	"testing"

	"github.com/ritzau/socialgraph/pkg/config"
)

func TestSetupLogging(t *testing.T) {
	if err := setupLogging(&config.Config{Verbosity: "debug", LogFormat: "compact"}); err != nil {
		t.Errorf("setupLogging() error = %v", err)
	}
	if err := setupLogging(&config.Config{Verbosity: "shouty", LogFormat: "compact"}); err == nil {
		t.Error("Expected error for unknown verbosity")
	}
}

func TestRun_Help(t *testing.T) {
	if err := run([]string{"--help"}); err != nil {
		t.Errorf("run(--help) error = %v", err)
	}
}

func TestRun_BadFlag(t *testing.T) {
	if err := run([]string{"--no-such-flag"}); err == nil {
		t.Error("Expected error for unknown flag")
	}
}
