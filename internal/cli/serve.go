package cli

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/shivesh0001/ppt-checker/internal/llm"
	"github.com/shivesh0001/ppt-checker/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the analysis pipeline over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.Server.Addr = serveAddr
		}

		client, err := llm.New(cmd.Context(), cfg.LLM)
		if err != nil {
			return fmt.Errorf("failed to initialize model client: %w", err)
		}

		srv := server.New(cfg, client)
		r := srv.SetupRouter()

		log.Printf("starting server on %s", cfg.Server.Addr)
		return r.Run(cfg.Server.Addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
}
