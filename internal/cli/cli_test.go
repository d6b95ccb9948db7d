package cli

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestNewFlagsDefaults(t *testing.T) {
	flags := NewFlags()
	if flags.Provider != "openai" {
		t.Errorf("Provider = %q, want openai", flags.Provider)
	}
	if flags.Concurrency != 4 {
		t.Errorf("Concurrency = %d, want 4", flags.Concurrency)
	}
	if flags.Stagger != 50*time.Millisecond {
		t.Errorf("Stagger = %v, want 50ms", flags.Stagger)
	}
	if flags.MaxAttempts != 4 {
		t.Errorf("MaxAttempts = %d, want 4", flags.MaxAttempts)
	}
}

func TestCreateRootCommand(t *testing.T) {
	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	if cmd.Use != "mdtrans <input-path> <language-code>" {
		t.Errorf("Unexpected Use: %q", cmd.Use)
	}
	for _, name := range []string{"provider", "model", "dictionary", "forbidden", "concurrency", "stagger", "max-attempts", "no-progress"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("Missing flag --%s", name)
		}
	}
	if cmd.PersistentFlags().Lookup("config") == nil {
		t.Error("Missing persistent flag --config")
	}
}

func TestGetAPIKeyFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("GEMINI_API_KEY", "gm-env")

	if got := GetAPIKey("openai"); got != "sk-env" {
		t.Errorf("GetAPIKey(openai) = %q", got)
	}
	if got := GetAPIKey("gemini"); got != "gm-env" {
		t.Errorf("GetAPIKey(gemini) = %q", got)
	}
}

func TestGetAPIKeyFallsBackToConfig(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	viper.Set("openai.api_key", "sk-conf")
	viper.Set("gemini.api_key", "gm-conf")
	defer viper.Reset()

	if got := GetAPIKey("openai"); got != "sk-conf" {
		t.Errorf("GetAPIKey(openai) = %q", got)
	}
	if got := GetAPIKey("gemini"); got != "gm-conf" {
		t.Errorf("GetAPIKey(gemini) = %q", got)
	}
}
