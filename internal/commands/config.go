package commands

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/andrevm/gemchat/internal/config"
	"github.com/andrevm/gemchat/internal/transcript"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change gemchat settings",
	Long: `Show the current configuration and the backend endpoint that
would be used for the next request.

Use 'gemchat config set <key> <value>' to change a setting.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow()
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a setting and save it to the config file.

Keys:
  endpoint       Backend URL ("" to use the default)
  verbose        Log request details and skipped stream frames (true/false)
  clipboard      Copy each response to the clipboard (true/false)
  style          Markdown style (dark, light, notty, or a theme path)
  export-format  Transcript export format (markdown or json)`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigSet(args[0], args[1])
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
}

func runConfigShow() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Warning: %v (using defaults)\n", err)
	}

	path, _ := config.GetConfigPath()

	keyStyle := lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	valStyle := lipgloss.NewStyle().Foreground(colorText)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	out := rootCmd.OutOrStdout()
	fmt.Fprintln(out, dimStyle.Render("Config file: "+path))
	fmt.Fprintln(out)

	print := func(key, value string) {
		fmt.Fprintf(out, "%s %s\n", keyStyle.Render(key+":"), valStyle.Render(value))
	}

	print("endpoint", resolveEndpoint(cfg))
	print("verbose", strconv.FormatBool(cfg.Verbose))
	print("clipboard", strconv.FormatBool(cfg.CopyToClipboard))
	print("style", cfg.Markdown.Style)
	print("export-format", string(transcript.ParseExportFormat(cfg.ExportFormat)))

	return nil
}

func runConfigSet(key, value string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	switch key {
	case "endpoint":
		cfg.Endpoint = value
	case "verbose":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for verbose: %q", value)
		}
		cfg.Verbose = b
	case "clipboard":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for clipboard: %q", value)
		}
		cfg.CopyToClipboard = b
	case "style":
		cfg.Markdown.Style = value
	case "export-format":
		if value != string(transcript.ExportFormatMarkdown) && value != string(transcript.ExportFormatJSON) {
			return fmt.Errorf("invalid value for export-format: %q", value)
		}
		cfg.ExportFormat = value
	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(rootCmd.OutOrStdout(), "Set %s = %s\n", key, value)
	return nil
}
