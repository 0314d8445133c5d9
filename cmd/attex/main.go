package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/coolbeans/attex/pkg/convert"
	"github.com/coolbeans/attex/pkg/dialect"
	"github.com/coolbeans/attex/pkg/pipeline"
	"github.com/coolbeans/attex/pkg/render"
	"github.com/coolbeans/attex/pkg/server"
)

var version = "0.1.0"

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	rootCmd := &cobra.Command{
		Use:   "attex",
		Short: "Attachment citation extractor",
		Long: `Attex extracts a structured, deduplicated, section-grouped list of
numbered attachment citations from petition cover letters and affidavits.

It reads .docx, .txt, .md, and .html documents, recognizes the two common
cover-letter conventions (keyword-headed free text and Roman-numeral
outline), and produces a per-section attachment list for cover sheets.`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract attachment citations from a document",
		Long: `Extract attachment citations from a cover letter or affidavit.

Example:
  attex extract --source cover.docx --dialect outline
  attex extract --source cover.docx --dialect freetext --format json
  attex extract --source cover.docx --pdf attachments.pdf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, _ := cmd.Flags().GetString("source")
			dialectName, _ := cmd.Flags().GetString("dialect")
			format, _ := cmd.Flags().GetString("format")
			pdfPath, _ := cmd.Flags().GetString("pdf")

			if source == "" {
				return fmt.Errorf("--source flag is required")
			}

			d, err := dialect.Parse(dialectName)
			if err != nil {
				return err
			}

			text, err := convert.File(source)
			if err != nil {
				return err
			}

			result, err := pipeline.New(d).Extract(text)
			if err != nil {
				return fmt.Errorf("extraction failed: %w", err)
			}

			switch format {
			case "json":
				data, err := render.JSON(result)
				if err != nil {
					return err
				}
				fmt.Println(string(data))
			case "text":
				fmt.Print(render.Text(result))
			default:
				return fmt.Errorf("unknown format: %s (use text or json)", format)
			}

			if pdfPath != "" {
				if err := render.PDF(result, pdfPath); err != nil {
					return err
				}
				fmt.Fprintf(os.Stderr, "PDF saved to: %s\n", pdfPath)
			}
			return nil
		},
	}

	cmd.Flags().StringP("source", "s", "", "Source document path (.docx, .txt, .md, .html)")
	cmd.Flags().StringP("dialect", "d", "outline", "Document dialect (freetext, outline)")
	cmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
	cmd.Flags().String("pdf", "", "Also write a PDF cover sheet to this path")

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the attex version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "attex %s\n", version)
		},
	}
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the extraction HTTP server",
		Long: `Run the HTTP server exposing POST /extract.

Example:
  attex serve --addr :8080
  attex serve --config attex.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			addr, _ := cmd.Flags().GetString("addr")

			cfg := server.DefaultConfig()
			if configPath != "" {
				loaded, err := server.LoadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if addr != "" {
				cfg.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Info().Str("addr", cfg.Addr).Msg("starting server")
			return server.New(cfg, log.Logger).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringP("config", "c", "", "YAML config file path")
	cmd.Flags().String("addr", "", "Listen address (overrides config)")

	return cmd
}
