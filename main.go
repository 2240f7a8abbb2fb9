package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/reecepbcups/jinc/config"
	"github.com/reecepbcups/jinc/logger"
	"github.com/reecepbcups/jinc/parser"
	"github.com/reecepbcups/jinc/preview"
	"github.com/reecepbcups/jinc/tutorial"
	"github.com/reecepbcups/jinc/watcher"
)

var (
	version      = "dev"
	commit       = "none"
	date         = "unknown"
	builtBy      = "unknown"
	logLevel     string
	configPath   string
	outputPath   string
	watchMode    bool
	strictMode   bool
	checkLatest  bool
	previewWidth int
	previewFmt   string
	tutorialPath string
	genProvider  string
	genSeed      uint64

	cfg = config.DefaultConfig()
)

var rootCmd = &cobra.Command{
	Use:   "jinc <script-file>[,<script-file>...]",
	Short: "Create Jupyter notebooks from tagged Python scripts",
	Long: `JINC (Jupyter Interactive Notebook Creator) converts a Python script with
'# MARKDOWN CELL' and '# CODE CELL' marker comments into a Jupyter notebook.

An optional '#  DESCRIPTION' line becomes a leading markdown cell.
Multiple files can be specified separated by commas.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadCommandConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.GetLogger()
		filePaths := parseFileList(args[0])
		if len(filePaths) == 0 {
			return fmt.Errorf("no input files given")
		}
		if len(filePaths) > 1 && (outputPath != "" || watchMode) {
			return fmt.Errorf("--output and --watch take a single input file")
		}

		opts := ConvertOpts{Output: outputPath, Notebook: cfg.Notebook}

		if len(filePaths) > 1 {
			log.Info("Converting files", "count", len(filePaths), "files", strings.Join(filePaths, ", "))
			results, err := ConvertFiles(cmd.Context(), filePaths, opts)
			for _, result := range results {
				if result.Written {
					reportConverted(result)
				}
			}
			return err
		}

		result, err := ConvertFile(filePaths[0], opts)
		if err != nil {
			return err
		}
		reportConverted(result)

		if !watchMode {
			return nil
		}
		w, err := watcher.New(filePaths[0], cfg.Watch.DebounceDuration(), func(ctx context.Context) error {
			result, err := ConvertFile(filePaths[0], opts)
			if err != nil {
				return err
			}
			reportConverted(result)
			return nil
		})
		if err != nil {
			return err
		}
		return w.Run(cmd.Context())
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <script-file>",
	Short: "Parse a tagged script and report its cells without writing a notebook",
	Long: `Parse the cell markers of a tagged script and report what the notebook would contain.
Lines dropped by the scanner (content before the first marker, overridden
descriptions) are reported as warnings; --strict turns them into an error.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.GetLogger()
		filePath := args[0]

		log.Info("Validating file", "path", filePath)
		script, err := ReadScript(filePath)
		if err != nil {
			return err
		}

		doc := parser.ParseCellsWithFileName(script, filePath)
		counts := doc.CountByKind()
		log.Info("Parsed cells",
			"total", len(doc.Cells),
			"markdown", counts[parser.KindMarkdown],
			"code", counts[parser.KindCode],
			"description", doc.HasDescription,
		)

		for i, cell := range doc.Cells {
			log.Debug("Cell", "index", i+1, "kind", cell.Kind, "line", cell.LineNumber, "lines", len(cell.Content))
		}
		for _, w := range doc.Warnings {
			log.Warn(w.Message, "file", filePath, "line", w.Line)
		}

		if strictMode && len(doc.Warnings) > 0 {
			return fmt.Errorf("%s: %d warning(s) in strict mode", filePath, len(doc.Warnings))
		}
		return nil
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview <script-file>",
	Short: "Render a tagged script in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		script, err := ReadScript(args[0])
		if err != nil {
			return err
		}

		doc := parser.ParseCellsWithFileName(script, args[0])
		language := cfg.Notebook.Kernel.Language
		if language == "" {
			language = "python"
		}

		switch previewFmt {
		case "markdown":
			fmt.Fprint(cmd.OutOrStdout(), preview.Markdown(doc, language))
			return nil
		case "script":
			// the cells as the scanner kept them
			fmt.Fprint(cmd.OutOrStdout(), doc.Script())
			return nil
		case "term":
		default:
			return fmt.Errorf("unknown preview format %q (term, markdown, script)", previewFmt)
		}

		out, err := preview.Render(doc, preview.Options{
			Width:    previewWidth,
			Styled:   logger.IsTerminal(os.Stdout),
			Language: language,
		})
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate [topic]",
	Short: "Generate a tutorial script in the tagged format",
	Long: `Generate a Python tutorial script that jinc can convert into a notebook.
The topic falls back to the INPUT_TOPIC environment variable.
The template provider works offline; the genai provider asks a Gemini model.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic := os.Getenv("INPUT_TOPIC")
		if len(args) == 1 {
			topic = args[0]
		}
		if strings.TrimSpace(topic) == "" {
			return fmt.Errorf("no topic provided: pass one as an argument or set INPUT_TOPIC")
		}

		genCfg := cfg.Generate
		if genProvider != "" {
			genCfg.Provider = genProvider
		}
		if genSeed != 0 {
			genCfg.Seed = genSeed
		}
		if err := genCfg.Validate(); err != nil {
			return fmt.Errorf("invalid generate settings: %w", err)
		}

		gen, err := tutorial.New(cmd.Context(), genCfg)
		if err != nil {
			return err
		}
		content, err := gen.Generate(cmd.Context(), topic)
		if err != nil {
			return err
		}

		target := tutorialPath
		if target == "" {
			target = "tutorial.py"
		}
		if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
			return fmt.Errorf("%w: there was an issue writing to the file '%s': %v", ErrOutputWriteFailure, target, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Tutorial for '%s' has been generated and saved as '%s'.\n", topic, target)
		return nil
	},
}

var markersCmd = &cobra.Command{
	Use:         "markers",
	Short:       "Display the marker lines jinc recognizes",
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Available JINC Markers")
		fmt.Fprintln(out, "======================")
		fmt.Fprintln(out)

		for _, marker := range parser.GetAllMarkersInfo() {
			fmt.Fprintf(out, "Marker: %s\n", marker.Name)
			fmt.Fprintf(out, "Prefix: %q\n", marker.Prefix)
			fmt.Fprintf(out, "Description: %s\n", marker.Description)
			fmt.Fprintf(out, "Example: %s\n", marker.Example)
			fmt.Fprintln(out)
		}

		fmt.Fprintln(out, "Notes:")
		fmt.Fprintln(out, "- Markers are matched at the very start of a line, in the order above")
		fmt.Fprintln(out, "- Lines before the first cell marker are dropped")
		fmt.Fprintln(out, "- Only the last description marker is kept")
	},
}

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Display version information",
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		versionInfo := map[string]string{
			"version":  version,
			"commit":   commit,
			"built_at": date,
			"built_by": builtBy,
			"source":   "https://github.com/reecepbcups/jinc",
		}

		jsonOutput, err := json.MarshalIndent(versionInfo, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal version info: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonOutput))

		if checkLatest {
			return checkForUpdate(cmd)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "set log level (debug, info, warn, error, off)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "path to the jinc config file")

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "the output Jupyter notebook file (default: input_filename.ipynb)")
	rootCmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "rebuild the notebook whenever the script changes")

	validateCmd.Flags().BoolVar(&strictMode, "strict", false, "fail when the scanner drops any line")
	previewCmd.Flags().IntVar(&previewWidth, "width", 80, "word wrap width")
	previewCmd.Flags().StringVar(&previewFmt, "format", "term", "output format (term, markdown, script)")
	generateCmd.Flags().StringVarP(&tutorialPath, "output", "o", "", "the output script file (default: tutorial.py)")
	generateCmd.Flags().StringVar(&genProvider, "provider", "", "tutorial provider (template, genai)")
	generateCmd.Flags().Uint64Var(&genSeed, "seed", 0, "random seed for the template provider")
	versionCmd.Flags().BoolVar(&checkLatest, "check", false, "check GitHub for a newer release")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(markersCmd)
	rootCmd.AddCommand(versionCmd)
}

// skipConfigAnnotation marks commands that never read cfg, so a broken
// config file cannot stop them
const skipConfigAnnotation = "jinc.skip-config"

// loadCommandConfig loads cfg for commands that use it and sets the log level.
func loadCommandConfig(cmd *cobra.Command) error {
	level := cfg.LogLevel
	if cmd.Annotations[skipConfigAnnotation] != "true" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		level = cfg.LogLevel
	}

	// the flag wins over config and environment
	if logLevel != "" {
		level = logLevel
	}
	logger.SetLogLevel(level)
	return nil
}

func reportConverted(result ConvertResult) {
	if len(result.Warnings) > 0 {
		logger.GetLogger().Warn("Lines were dropped while parsing; run 'jinc validate' for details",
			"file", result.Input, "count", len(result.Warnings))
	}
	fmt.Printf("Jupyter notebook '%s' has been created successfully.\n", result.Output)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
