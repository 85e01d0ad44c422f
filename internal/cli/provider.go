// Package cli provides command-line interface components for the matrix
// chain solver.
// This file provides a color provider implementation for use with the errors package.
package cli

import apperrors "github.com/agbru/chainorder/internal/errors"

// Ensure CLIColorProvider implements apperrors.ColorProvider at compile time.
var _ apperrors.ColorProvider = CLIColorProvider{}

// CLIColorProvider implements apperrors.ColorProvider using CLI theme functions.
// It is exported so the orchestration and app packages can format errors
// with the current theme.
type CLIColorProvider struct{}

// Yellow returns the yellow color code from the current CLI theme.
func (c CLIColorProvider) Yellow() string { return ColorYellow() }

// Red returns the red color code from the current CLI theme.
func (c CLIColorProvider) Red() string { return ColorRed() }

// Reset returns the reset color code from the current CLI theme.
func (c CLIColorProvider) Reset() string { return ColorReset() }
