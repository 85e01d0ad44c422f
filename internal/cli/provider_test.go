package cli

import (
	"testing"

	"github.com/agbru/chainorder/internal/ui"
)

func TestCLIColorProvider(t *testing.T) {
	original := ui.GetCurrentTheme()
	defer ui.SetCurrentTheme(original)

	provider := CLIColorProvider{}

	ui.SetTheme("dark")
	if provider.Yellow() == "" {
		t.Error("Yellow should return a color code when colors are enabled")
	}
	if provider.Red() == "" {
		t.Error("Red should return a color code when colors are enabled")
	}
	if provider.Reset() == "" {
		t.Error("Reset should return a code when colors are enabled")
	}

	ui.SetTheme("none")
	if provider.Yellow() != "" || provider.Red() != "" || provider.Reset() != "" {
		t.Error("codes should be empty without colors")
	}
}
