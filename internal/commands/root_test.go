package commands

import (
	"testing"

	"github.com/andrevm/gemchat/internal/config"
)

func TestRootCommand_Structure(t *testing.T) {
	if rootCmd.Use != "gemchat [prompt]" {
		t.Errorf("Expected use 'gemchat [prompt]', got %s", rootCmd.Use)
	}
	if rootCmd.Short == "" {
		t.Error("Short description should not be empty")
	}
	if rootCmd.Args == nil {
		t.Error("Args validation should be configured")
	}
}

func TestRootCommand_Flags(t *testing.T) {
	persistentFlags := []string{"endpoint", "dev"}
	for _, flagName := range persistentFlags {
		t.Run(flagName+" flag (persistent)", func(t *testing.T) {
			if rootCmd.PersistentFlags().Lookup(flagName) == nil {
				t.Errorf("PersistentFlag %s not found", flagName)
			}
		})
	}

	localFlags := []string{"output", "file", "raw", "version"}
	for _, flagName := range localFlags {
		t.Run(flagName+" flag", func(t *testing.T) {
			if rootCmd.Flags().Lookup(flagName) == nil {
				t.Errorf("Flag %s not found", flagName)
			}
		})
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	for _, sub := range []string{"chat", "config"} {
		found := false
		for _, cmd := range rootCmd.Commands() {
			if cmd.Name() == sub {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Subcommand %s not found", sub)
		}
	}
}

func TestResolveEndpoint_FlagPrecedence(t *testing.T) {
	t.Setenv(config.EndpointEnvVar, "https://env.example.com/api/chat")

	tests := []struct {
		name     string
		flag     string
		dev      bool
		cfg      config.Config
		expected string
	}{
		{
			name:     "endpoint flag wins over everything",
			flag:     "https://flag.example.com/api/chat",
			dev:      true,
			cfg:      config.Config{Endpoint: "https://cfg.example.com"},
			expected: "https://flag.example.com/api/chat",
		},
		{
			name:     "dev flag picks the local backend",
			dev:      true,
			cfg:      config.Config{Endpoint: "https://cfg.example.com"},
			expected: config.DevEndpoint,
		},
		{
			name:     "environment override outside dev mode",
			cfg:      config.Config{Endpoint: "https://cfg.example.com"},
			expected: "https://env.example.com/api/chat",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldEndpoint, oldDev := endpointFlag, devFlag
			defer func() { endpointFlag, devFlag = oldEndpoint, oldDev }()

			endpointFlag = tt.flag
			devFlag = tt.dev

			if got := resolveEndpoint(tt.cfg); got != tt.expected {
				t.Errorf("resolveEndpoint() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestResolveEndpoint_Default(t *testing.T) {
	t.Setenv(config.EndpointEnvVar, "")

	oldEndpoint, oldDev := endpointFlag, devFlag
	defer func() { endpointFlag, devFlag = oldEndpoint, oldDev }()
	endpointFlag = ""
	devFlag = false

	if got := resolveEndpoint(config.Config{}); got != config.DefaultEndpoint {
		t.Errorf("resolveEndpoint() = %s, want production default", got)
	}
}
