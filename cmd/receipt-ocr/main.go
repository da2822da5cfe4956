package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/zombor/receipt-ocr/internal/extraction"
	"github.com/zombor/receipt-ocr/internal/receipt"
	"github.com/zombor/receipt-ocr/internal/scanning"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

type options struct {
	engine          string
	tesseract       string
	lang            string
	compareVariants bool
	textInput       bool
	jsonOutput      bool
	serve           bool
	port            int
	dbPath          string
	storagePath     string
	authUser        string
	authPass        string
	geminiKey       string
	geminiModel     string
	ollamaURL       string
	ollamaModel     string
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	fs := ff.NewFlagSet("receipt-ocr")
	var (
		engine          = fs.StringLong("engine", "tesseract", "OCR engine: tesseract, gosseract, gemini or ollama")
		tesseract       = fs.StringLong("tesseract", "tesseract", "Path to the tesseract binary")
		lang            = fs.StringLong("lang", "eng", "Tesseract language")
		compareVariants = fs.BoolLong("compare-variants", "Also read the unenhanced image and keep the better text")
		textInput       = fs.BoolLong("text", "Inputs are raw OCR text files rather than images")
		jsonOutput      = fs.BoolLong("json", "Print results as JSON")
		serveHTTP       = fs.BoolLong("serve", "Run the HTTP API instead of processing files")
		port            = fs.IntLong("port", 8080, "HTTP server port")
		dbPath          = fs.StringLong("db", "receipt-ocr.db", "Database file path")
		storagePath     = fs.StringLong("storage", "./receipts", "Storage directory path")
		authUser        = fs.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass        = fs.StringLong("auth-pass", "", "Basic auth password (optional)")
		geminiKey       = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel     = fs.StringLong("gemini-model", "gemini-2.5-flash", "Google Gemini model name")
		ollamaURL       = fs.StringLong("ollama-url", "http://localhost:11434", "Ollama API base URL")
		ollamaModel     = fs.StringLong("ollama-model", "llava", "Ollama model name")
		debug           = fs.BoolLong("debug", "Enable debug logging")
		showVersion     = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("RECEIPT_OCR"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	if *debug {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	opts := options{
		engine:          *engine,
		tesseract:       *tesseract,
		lang:            *lang,
		compareVariants: *compareVariants,
		textInput:       *textInput,
		jsonOutput:      *jsonOutput,
		serve:           *serveHTTP,
		port:            *port,
		dbPath:          *dbPath,
		storagePath:     *storagePath,
		authUser:        *authUser,
		authPass:        *authPass,
		geminiKey:       *geminiKey,
		geminiModel:     *geminiModel,
		ollamaURL:       *ollamaURL,
		ollamaModel:     *ollamaModel,
	}

	inputs := fs.GetArgs()
	if !opts.serve && len(inputs) == 0 {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintln(os.Stderr, "error: no input files")
		os.Exit(1)
	}

	// Text files need no OCR engine.
	if opts.textInput && !opts.serve {
		os.Exit(processFiles(context.Background(), nil, inputs, opts))
	}

	scanner, err := newScanner(opts)
	if err != nil {
		slog.Error("Failed to initialize OCR engine", "engine", opts.engine, "error", err)
		os.Exit(1)
	}

	if opts.serve {
		err = serve(scanner, opts)
		scanner.Close()
		if err != nil {
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := processFiles(ctx, scanner, inputs, opts)
	stop()
	scanner.Close()
	os.Exit(code)
}

// newScanner builds the recognizer named by --engine. The LLM engines
// transcribe in one pass named after the engine.
func newScanner(opts options) (scanning.Scanner, error) {
	var (
		recognizer scanning.Recognizer
		passes     []scanning.Pass
		err        error
	)

	switch opts.engine {
	case "tesseract":
		slog.Debug("Initializing tesseract...", "binary", opts.tesseract, "lang", opts.lang)
		recognizer = scanning.NewTesseract(scanning.TesseractConfig{
			Binary:   opts.tesseract,
			Language: opts.lang,
		})
	case "gosseract":
		recognizer, err = scanning.NewGosseract(opts.lang)
	case "gemini":
		apiKey := opts.geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			return nil, errors.New("Gemini API key is required. Set --gemini-key flag or GEMINI_API_KEY environment variable")
		}
		slog.Debug("Initializing Gemini...", "model", opts.geminiModel)
		recognizer, err = scanning.NewGemini(apiKey, opts.geminiModel)
		passes = []scanning.Pass{{Name: "gemini"}}
	case "ollama":
		slog.Debug("Initializing Ollama...", "url", opts.ollamaURL, "model", opts.ollamaModel)
		recognizer, err = scanning.NewOllama(opts.ollamaURL, opts.ollamaModel)
		passes = []scanning.Pass{{Name: "ollama"}}
	default:
		return nil, fmt.Errorf("invalid engine %q, valid: tesseract, gosseract, gemini or ollama", opts.engine)
	}
	if err != nil {
		return nil, err
	}

	return scanning.NewOCRScanner(recognizer, scanning.ScannerConfig{
		Passes:          passes,
		CompareVariants: opts.compareVariants,
	}), nil
}

func serve(scanner scanning.Scanner, opts options) error {
	slog.Info("Initializing database...")
	db, err := receipt.NewBoltDB(opts.dbPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		return err
	}
	defer db.Close()

	slog.Info("Initializing storage...")
	store, err := receipt.NewLocalStorage(opts.storagePath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		return err
	}

	server := receipt.NewServer(receipt.NewService(db, scanner, store), receipt.BasicAuth{
		Username: opts.authUser,
		Password: opts.authPass,
	})

	addr := fmt.Sprintf(":%d", opts.port)
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(addr)
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr))
	if opts.authUser != "" || opts.authPass != "" {
		slog.Info("Basic auth enabled", "user", opts.authUser)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		slog.Error("Server error", "error", err)
		return err
	case <-sigChan:
		slog.Info("Shutting down...")
		return nil
	}
}

// processFiles prints one result per input. A failed input is reported and
// the rest still run; the exit code is 1 if any failed.
func processFiles(ctx context.Context, scanner scanning.Scanner, inputs []string, opts options) int {
	code := 0
	for _, path := range inputs {
		a, err := analyzeFile(ctx, scanner, path, opts.textInput)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			code = 1
			continue
		}

		if opts.jsonOutput {
			out, err := json.MarshalIndent(struct {
				File string `json:"file"`
				receipt.Analysis
			}{path, a}, "", "  ")
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
				code = 1
				continue
			}
			fmt.Println(string(out))
			continue
		}
		printAnalysis(path, a)
	}
	return code
}

func analyzeFile(ctx context.Context, scanner scanning.Scanner, path string, textInput bool) (receipt.Analysis, error) {
	data, contentType, err := scanning.ReadFile(path)
	if err != nil {
		return receipt.Analysis{}, err
	}

	if textInput {
		return receipt.AnalyzeText(string(data)), nil
	}

	recognitions, err := scanner.Scan(ctx, data, contentType)
	if err != nil {
		return receipt.Analysis{}, err
	}
	return receipt.Analyze(recognitions), nil
}

var (
	heading = color.New(color.FgCyan, color.Bold)
	dim     = color.New(color.Faint)
)

func printAnalysis(path string, a receipt.Analysis) {
	heading.Printf("== %s ==\n", path)
	dim.Printf("method: %s", a.Recognition.Method)
	if a.Recognition.Variant != "" {
		dim.Printf(" (%s)", a.Recognition.Variant)
	}
	dim.Printf("  quality: %.2f\n\n", a.Metrics.QualityScore)

	heading.Println("CLEANED TEXT")
	for _, line := range a.CleanedText {
		fmt.Println(line)
	}
	fmt.Println()
	fmt.Print(extraction.Format(a.Data))
	fmt.Println()
}
