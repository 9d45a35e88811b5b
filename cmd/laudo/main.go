// Package main provides the CLI entry point for laudo-service.
package main

import (
	"fmt"
	"os"

	"github.com/LuanaSouza24/laudo-service/internal/env"
	"github.com/LuanaSouza24/laudo-service/internal/logger"
	"github.com/LuanaSouza24/laudo-service/pkg/laudo"
	"github.com/LuanaSouza24/laudo-service/pkg/laudo/figures"
	"github.com/spf13/cobra"
)

var (
	baseDir   string
	logLevel  string
	startFig  int
	language  string
	inspID    string
	tmplPath  string
	outputDir string
	addr      string

	appLog = logger.New(logger.LevelInfo)
)

func main() {
	if err := env.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
	}

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "laudo",
		Short: "Generate inspection reports from a workbook and a Word template",
		Long: `laudo fills a .docx report template from the Vistoria, Empreendimento,
indice_fotos, Itens_da_Vistoria, Sistemas and Ocorrencias_Detalhes sheets of a
workbook, numbering every photograph of the report.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&baseDir, "base-dir", env.GetString("LAUDO_BASE_DIR", "."), "Working directory holding the photo folders")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", env.GetString("LAUDO_LOG_LEVEL", "info"), "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().IntVar(&startFig, "start", env.GetInt("LAUDO_START_FIGURE", figures.DefaultStart), "First automatic figure number")
	rootCmd.PersistentFlags().StringVar(&language, "lang", "pt", "Caption language: pt, en")
	rootCmd.PersistentFlags().StringVar(&tmplPath, "template", env.GetString("LAUDO_TEMPLATE", ""), "Report template (default: <base-dir>/template.docx)")

	rootCmd.AddCommand(newGenerateCmd(), newServeCmd())
	return rootCmd
}

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [workbook.xlsx]",
		Short: "Generate the report of one inspection",
		Args:  cobra.ExactArgs(1),
		RunE:  runGenerate,
	}

	cmd.Flags().StringVar(&inspID, "id", "", "Inspection id (ID_Vistoria)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Output directory (default: <base-dir>/saida)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve report generation over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	cmd.Flags().StringVar(&addr, "addr", env.GetString("LAUDO_ADDR", ":8080"), "Listen address")
	return cmd
}

// baseOptions builds the options shared by both commands from flags.
func baseOptions() (laudo.Options, error) {
	captions, err := captionsFor(language)
	if err != nil {
		return laudo.Options{}, err
	}

	opts := laudo.DefaultOptions()
	opts.WorkDir = baseDir
	opts.TemplatePath = tmplPath
	opts.StartFigure = startFig
	opts.Captions = captions
	appLog.SetLogLevel(logger.ParseLevel(logLevel))
	opts.Logger = appLog
	return opts, nil
}

func captionsFor(lang string) (figures.Captions, error) {
	switch lang {
	case "pt", "":
		return figures.Portuguese, nil
	case "en":
		return figures.English, nil
	default:
		return figures.Captions{}, fmt.Errorf("invalid language: %s (must be pt or en)", lang)
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	opts, err := baseOptions()
	if err != nil {
		return err
	}
	opts.OutputDir = outputDir

	outPath, err := laudo.Generate(args[0], inspID, opts)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), outPath)
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	opts, err := baseOptions()
	if err != nil {
		return err
	}

	app := &application{
		config: config{
			addr:         addr,
			maxBodyBytes: int64(env.GetInt("LAUDO_MAX_BODY_MB", 50)) << 20,
		},
		opts: opts,
		log:  opts.Logger,
	}
	return app.run(app.mount())
}
