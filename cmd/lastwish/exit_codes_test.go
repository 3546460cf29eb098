package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/ArtieFishal/lastwish"
	"github.com/ArtieFishal/lastwish/internal/config"
	"github.com/ArtieFishal/lastwish/internal/dateutil"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},

		// ExitIO (3)
		{"not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},
		{"permission", fmt.Errorf("opening: %w", os.ErrPermission), ExitIO},
		{"write pdf", fmt.Errorf("%w: disk full", ErrWritePDF), ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"missing bundle beats bundle error", fmt.Errorf("%w: %w", ErrReadBundle, os.ErrNotExist), ExitIO},

		// ExitUsage (2)
		{"config not found", &config.NotFoundError{Searched: []string{"x.yaml"}}, ExitUsage},
		{"config parse", fmt.Errorf("loading config: %w", config.ErrConfigParse), ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid value", config.ErrInvalidValue, ExitUsage},
		{"date format", fmt.Errorf("document.dateFormat: %w", dateutil.ErrInvalidDateFormat), ExitUsage},
		{"bundle", fmt.Errorf("%w: %w", ErrReadBundle, lastwish.ErrInvalidBundle), ExitUsage},
		{"instructions format", lastwish.ErrInvalidInstructionsFormat, ExitUsage},
		{"asset path", lastwish.ErrInvalidAssetPath, ExitUsage},
		{"library date format", lastwish.ErrInvalidDateFormat, ExitUsage},
		{"template", lastwish.ErrTemplate, ExitUsage},
		{"workers", ErrInvalidWorkerCount, ExitUsage},
		{"usage", ErrUsage, ExitUsage},

		// ExitGeneral (1)
		{"render", fmt.Errorf("generating: %w", lastwish.ErrRender), ExitGeneral},
		{"unknown", errors.New("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Values are part of the CLI contract
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	for name, got := range map[string]int{
		"ExitSuccess": ExitSuccess,
		"ExitGeneral": ExitGeneral,
		"ExitUsage":   ExitUsage,
		"ExitIO":      ExitIO,
	} {
		want := map[string]int{"ExitSuccess": 0, "ExitGeneral": 1, "ExitUsage": 2, "ExitIO": 3}[name]
		if got != want {
			t.Errorf("%s = %d, want %d", name, got, want)
		}
	}
}
