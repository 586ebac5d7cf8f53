// Package commands provides CLI commands for gemchat.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrevm/gemchat/internal/config"
)

var (
	// Global flags
	endpointFlag string
	devFlag      bool
	outputFlag   string
	fileFlag     string
	rawFlag      bool

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "gemchat [prompt]",
	Short: "Terminal chat client for the gemchat backend",
	Long: `gemchat is a terminal client for the gemchat streaming backend.
Responses arrive as a server-sent event stream and are rendered as
they are generated.

Examples:
  gemchat                               Start interactive chat
  gemchat "What is Go?"                 Send a single query
  gemchat -f prompt.md                  Read prompt from file
  cat prompt.md | gemchat               Read prompt from stdin
  gemchat "Hello" -o response.md        Save response to file
  gemchat --dev chat                    Chat against a local backend`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Check for version flag
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("gemchat %s (built %s)\n", Version, BuildTime)
			return nil
		}

		// Check for stdin input
		stat, _ := os.Stdin.Stat()
		hasStdin := (stat.Mode() & os.ModeCharDevice) == 0

		// Check for file input
		if fileFlag != "" {
			data, err := os.ReadFile(fileFlag)
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			return runQuery(string(data), rawFlag)
		}

		// Check for stdin
		if hasStdin {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			return runQuery(string(data), rawFlag)
		}

		// Check for positional argument
		if len(args) > 0 {
			return runQuery(args[0], rawFlag)
		}

		// No input - open the interactive chat
		return runChat()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&endpointFlag, "endpoint", "", "Backend URL (overrides config and environment)")
	rootCmd.PersistentFlags().BoolVar(&devFlag, "dev", false, "Use the local development backend")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Save response to file")
	rootCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read prompt from file")
	rootCmd.Flags().BoolVar(&rawFlag, "raw", false, "Print the raw response without decoration")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	// Add subcommands
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(configCmd)
}

// resolveEndpoint returns the backend URL for this run. The --endpoint
// flag wins outright; otherwise --dev, the environment override, the
// config file, and the production default apply in that order.
func resolveEndpoint(cfg config.Config) string {
	if endpointFlag != "" {
		return endpointFlag
	}
	return config.ResolveEndpoint(cfg, devFlag)
}
