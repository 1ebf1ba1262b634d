// Package cli wires the cobra commands and maps failures to exit codes.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shivesh0001/ppt-checker/internal/analysis"
	"github.com/shivesh0001/ppt-checker/internal/config"
	"github.com/shivesh0001/ppt-checker/internal/deck"
	"github.com/shivesh0001/ppt-checker/internal/llm"
	"github.com/shivesh0001/ppt-checker/internal/ocr"
	"github.com/shivesh0001/ppt-checker/internal/report"
)

const version = "1.0.0"

const (
	ExitSuccess      = 0
	ExitRuntimeError = 1
	ExitUsageError   = 2
	ExitInterrupted  = 130
)

// usageError marks fatal, pre-analysis input problems.
type usageError struct {
	msg string
}

func (e usageError) Error() string { return e.msg }

var flags struct {
	configPath string
	apiKey     string
	provider   string
	model      string
	batchSize  int
	paceMs     int
	useOCR     bool
	output     string
}

var rootCmd = &cobra.Command{
	Use:   "pptcheck <deck.pptx>",
	Short: "Detect inconsistencies in PowerPoint presentations using AI",
	Long: `pptcheck scans a slide deck for business-logic inconsistencies:
numerical conflicts, timeline mismatches, logical contradictions and
data relationship errors. Findings below 70% confidence are discarded.`,
	Args:          cobra.ExactArgs(1),
	RunE:          runAnalyze,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "path to TOML config file")
	pf.StringVar(&flags.apiKey, "api-key", "", "model provider API key")
	pf.StringVar(&flags.provider, "provider", "", "model provider (gemini, openai, claude, ollama)")
	pf.StringVar(&flags.model, "model", "", "model name")
	pf.IntVar(&flags.batchSize, "batch-size", 6, "number of slides per model call")
	pf.IntVar(&flags.paceMs, "pace-ms", 1000, "minimum interval between model calls in milliseconds")

	rootCmd.Flags().BoolVar(&flags.useOCR, "ocr", false, "enable OCR for image text extraction")
	rootCmd.Flags().StringVar(&flags.output, "output", "", "save report to file")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print pptcheck version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "pptcheck version %s\n", version)
	},
}

// Run executes the root command and returns a process exit code. A
// user-triggered interrupt during analysis exits distinctly from
// unexpected runtime errors.
func Run() int {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	var uerr usageError
	switch {
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(os.Stderr, "analysis interrupted")
		return ExitInterrupted
	case errors.As(err, &uerr):
		fmt.Fprintf(os.Stderr, "error: %s\n", uerr.msg)
		return ExitUsageError
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return ExitRuntimeError
	}
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	deckPath := args[0]
	if err := validateDeckPath(deckPath); err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	var engine ocr.Engine
	if cfg.Analysis.OCR {
		t, err := ocr.NewTesseract()
		if err != nil {
			log.Printf("warning: %v; continuing without OCR", err)
		} else {
			engine = t
		}
	}

	client, err := llm.New(ctx, cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to initialize model client: %w", err)
	}

	log.Printf("extracting slide content from %s", filepath.Base(deckPath))
	d, err := deck.Open(deckPath)
	if err != nil {
		return err
	}
	extractor := &deck.Extractor{OCR: engine}
	slides := extractor.Extract(ctx, d)
	log.Printf("extracted content from %d slides", len(slides))

	analyzer := analysis.New(client, cfg.Analysis.BatchSize, cfg.Pace())
	findings, err := analyzer.Analyze(ctx, slides)
	if err != nil {
		return err
	}

	text := report.Render(findings, len(slides))
	fmt.Fprintln(os.Stdout, "\n"+text)

	if flags.output != "" {
		if err := report.WriteFile(flags.output, text); err != nil {
			return err
		}
		log.Printf("report saved to %s", flags.output)
	}
	return nil
}

func validateDeckPath(p string) error {
	info, err := os.Stat(p)
	if err != nil {
		return usageError{msg: fmt.Sprintf("file '%s' not found", p)}
	}
	if info.IsDir() {
		return usageError{msg: fmt.Sprintf("'%s' is a directory, not a .pptx file", p)}
	}
	if !strings.EqualFold(filepath.Ext(p), ".pptx") {
		return usageError{msg: "please provide a .pptx file"}
	}
	return nil
}

// loadConfig layers file, environment and flag overrides, in that order.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if flags.configPath != "" {
		c, err := config.Load(flags.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = *c
	} else {
		path := os.Getenv("PPTCHECK_CONFIG")
		if path == "" {
			path = config.DefaultPath
		}
		if _, err := os.Stat(path); err == nil {
			c, err := config.Load(path)
			if err != nil {
				return cfg, err
			}
			cfg = *c
		} else {
			cfg = config.Default()
		}
	}

	cfg.ApplyEnv()

	if flags.apiKey != "" {
		cfg.LLM.APIKey = flags.apiKey
	}
	if flags.provider != "" {
		cfg.LLM.Provider = flags.provider
	}
	if flags.model != "" {
		cfg.LLM.Model = flags.model
	}
	if cmd.Flags().Changed("batch-size") {
		cfg.Analysis.BatchSize = flags.batchSize
	}
	if cmd.Flags().Changed("pace-ms") {
		cfg.Analysis.PaceMs = flags.paceMs
	}
	if cmd.Flags().Changed("ocr") {
		cfg.Analysis.OCR = flags.useOCR
	}

	if err := cfg.Validate(); err != nil {
		return cfg, usageError{msg: err.Error()}
	}
	return cfg, nil
}
