package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrevm/gemchat/internal/api"
	"github.com/andrevm/gemchat/internal/config"
	"github.com/andrevm/gemchat/internal/render"
	"github.com/andrevm/gemchat/internal/transcript"
	"github.com/andrevm/gemchat/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat session.

Responses stream into the transcript as they are generated.
Type 'exit', 'quit', or press Ctrl+C to end the session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

func runChat() error {
	cfg, _ := config.LoadConfig()
	endpoint := resolveEndpoint(cfg)

	client, err := api.NewClient(endpoint, api.WithVerbose(cfg.Verbose))
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	renderOpts := render.OptionsFromConfig(cfg.Markdown)
	exportFormat := transcript.ParseExportFormat(cfg.ExportFormat)

	return tui.Run(client, endpoint, renderOpts, exportFormat)
}
