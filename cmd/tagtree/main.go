package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"tagtree/internal/config"
	"tagtree/pkg/rewriter"
)

// listFlag collects every occurrence of a repeatable flag
type listFlag []string

func (l *listFlag) String() string {
	return strings.Join(*l, ",")
}

func (l *listFlag) Set(value string) error {
	*l = append(*l, value)
	return nil
}

var (
	// Input/Output flags
	inputFile  = flag.String("input", "", "Input HTML file path (default: stdin)")
	outputFile = flag.String("output", "", "Output HTML file path (default: stdout)")
	inputDir   = flag.String("input-dir", "", "Process all HTML files in directory")
	outputDir  = flag.String("output-dir", "", "Output directory for batch processing")
	configFile = flag.String("config", "", "YAML or TOML configuration file")

	// Rewrite flags
	mode         = flag.String("mode", "normal", "Render mode (normal, start, end, self-closing)")
	document     = flag.Bool("document", false, "Parse input as a whole HTML document")
	selector     = flag.String("select", "", "Apply edits to the tags matching this CSS selector")
	extract      = flag.Bool("extract", false, "Output only the selected tags")
	keepExisting = flag.Bool("keep-existing", false, "Do not overwrite existing attributes and styles")

	addClasses    listFlag
	removeClasses listFlag
	styles        listFlag
	removeStyles  listFlag
	attributes    listFlag
	data          listFlag

	// Other modes
	compareFile = flag.String("compare", "", "Compare the input with this file instead of rewriting")
	hash        = flag.Bool("hash", false, "Print the structural hash instead of the HTML")
	validate    = flag.Bool("validate", false, "Report markup errors without rewriting")

	// Output control flags
	verbose = flag.Bool("verbose", false, "Log every processing step")
	quiet   = flag.Bool("quiet", false, "Suppress all output except errors")
	stats   = flag.Bool("stats", false, "Show processing statistics")
	noColor = flag.Bool("no-color", false, "Disable colored output")
)

var errNotEqual = errors.New("fragments differ")

func init() {
	flag.Var(&addClasses, "add-class", "Space-separated classes to add (repeatable)")
	flag.Var(&removeClasses, "remove-class", "Space-separated classes to remove (repeatable)")
	flag.Var(&styles, "style", "Style to set as property:value (repeatable)")
	flag.Var(&removeStyles, "remove-style", "Style property to remove (repeatable)")
	flag.Var(&attributes, "attr", "Attribute to set as name=value (repeatable)")
	flag.Var(&data, "data", "Data attribute to set as key=value (repeatable)")
}

func main() {
	flag.Parse()

	log := newLogger()
	if *noColor {
		color.NoColor = true
	}

	if err := validateArgs(); err != nil {
		log.Error(err)
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := buildConfig()
	if err != nil {
		log.WithError(err).Error("invalid configuration")
		os.Exit(1)
	}

	engine := rewriter.New(cfg, rewriter.WithLogger(log))

	switch {
	case *validate:
		err = runValidation(engine)
	case *compareFile != "":
		err = runCompare(engine)
	case *inputDir != "":
		err = runBatchProcessing(engine, log)
	default:
		err = runSingle(engine)
	}

	if err != nil {
		if !errors.Is(err, errNotEqual) {
			log.Error(err)
		}
		os.Exit(1)
	}
}

// newLogger builds the stderr logger for the verbosity flags
func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	switch {
	case *verbose:
		log.SetLevel(logrus.DebugLevel)
	case *quiet:
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}

// validateArgs validates command line arguments
func validateArgs() error {
	if *inputFile != "" && *inputDir != "" {
		return errors.New("cannot specify both -input and -input-dir")
	}
	if *inputDir != "" && *outputDir == "" {
		return errors.New("-output-dir required when using -input-dir")
	}
	if *quiet && *verbose {
		return errors.New("cannot specify both -quiet and -verbose")
	}
	if *compareFile != "" && *inputDir != "" {
		return errors.New("-compare works on a single input")
	}
	return nil
}

// buildConfig loads the configuration file, if any, and applies the flags
// given on the command line on top of it
func buildConfig() (config.Config, error) {
	cfg := config.Default()
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	if set["mode"] {
		cfg.Mode = *mode
	}
	if set["document"] {
		cfg.Document = *document
	}
	if set["select"] {
		cfg.Select = *selector
	}
	if set["extract"] {
		cfg.Extract = *extract
	}
	if set["keep-existing"] {
		cfg.ReplaceExisting = !*keepExisting
	}
	cfg.AddClasses = append(cfg.AddClasses, addClasses...)
	cfg.RemoveClasses = append(cfg.RemoveClasses, removeClasses...)
	cfg.Styles = append(cfg.Styles, styles...)
	cfg.RemoveStyles = append(cfg.RemoveStyles, removeStyles...)
	cfg.Attributes = append(cfg.Attributes, attributes...)
	cfg.Data = append(cfg.Data, data...)

	return cfg, cfg.Validate()
}

// readInput reads the -input file or stdin
func readInput() (string, string, error) {
	if *inputFile == "" {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", errors.Wrap(err, "failed to read from stdin")
		}
		return string(content), "<stdin>", nil
	}
	content, err := os.ReadFile(*inputFile)
	if err != nil {
		return "", "", errors.Wrapf(err, "failed to read input file %s", *inputFile)
	}
	return string(content), *inputFile, nil
}

// runSingle rewrites one input file or stdin
func runSingle(engine *rewriter.Rewriter) error {
	input, name, err := readInput()
	if err != nil {
		return err
	}

	result, err := engine.Rewrite(input)
	if err != nil {
		return errors.Wrapf(err, "failed to rewrite %s", name)
	}

	output := result.HTML
	if *hash {
		output = formatHash(result.Hash) + "\n"
	}
	if err := writeOutput(output, *outputFile); err != nil {
		return errors.Wrap(err, "failed to write output")
	}

	if *stats || *verbose {
		showProcessingStats(result, name)
	}
	return nil
}

// runBatchProcessing rewrites all HTML files in a directory. Files that
// fail are logged and skipped.
func runBatchProcessing(engine *rewriter.Rewriter, log logrus.FieldLogger) error {
	htmlFiles, err := findHTMLFiles(*inputDir)
	if err != nil {
		return errors.Wrap(err, "failed to find HTML files")
	}
	if len(htmlFiles) == 0 {
		return errors.Errorf("no HTML files found in directory: %s", *inputDir)
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		return errors.Wrap(err, "failed to create output directory")
	}

	var total rewriter.Stats
	var processed, failed int
	for i, inputPath := range htmlFiles {
		fileLog := log.WithField("file", inputPath)
		fileLog.Debugf("processing %d/%d", i+1, len(htmlFiles))

		content, err := os.ReadFile(inputPath)
		if err != nil {
			fileLog.WithError(err).Warn("failed to read")
			failed++
			continue
		}

		result, err := engine.Rewrite(string(content))
		if err != nil {
			fileLog.WithError(err).Warn("failed to rewrite")
			failed++
			continue
		}

		outputPath, err := outputPathFor(*inputDir, *outputDir, inputPath)
		if err != nil {
			fileLog.WithError(err).Warn("failed to compute output path")
			failed++
			continue
		}
		if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
			fileLog.WithError(err).Warn("failed to create output directory")
			failed++
			continue
		}
		if err := writeOutput(result.HTML, outputPath); err != nil {
			fileLog.WithError(err).Warn("failed to write")
			failed++
			continue
		}

		processed++
		addStats(&total, result.Stats)
	}

	if *stats || *verbose {
		fmt.Fprintf(os.Stderr, "\nBatch Processing Summary:\n")
		fmt.Fprintf(os.Stderr, "  Files processed: %s\n", color.GreenString("%d", processed))
		if failed > 0 {
			fmt.Fprintf(os.Stderr, "  Files failed: %s\n", color.RedString("%d", failed))
		}
		writeStats(os.Stderr, total)
	}
	return nil
}

// runCompare compares the input with the -compare file
func runCompare(engine *rewriter.Rewriter) error {
	input, name, err := readInput()
	if err != nil {
		return err
	}
	other, err := os.ReadFile(*compareFile)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", *compareFile)
	}

	result, err := engine.Compare(input, string(other))
	if err != nil {
		return err
	}

	if result.Equal {
		if !*quiet {
			fmt.Printf("%s %s and %s are equal (%s)\n",
				color.GreenString("✓"), name, *compareFile, formatHash(result.HashA))
		}
		return nil
	}
	fmt.Printf("%s %s and %s differ (%s, %s)\n",
		color.RedString("✗"), name, *compareFile, formatHash(result.HashA), formatHash(result.HashB))
	return errNotEqual
}

// runValidation reports markup errors without rewriting
func runValidation(engine *rewriter.Rewriter) error {
	input, name, err := readInput()
	if err != nil {
		return err
	}

	issues, err := engine.Validate(input)
	if err != nil {
		fmt.Printf("%s %s: %v\n", color.RedString("✗"), name, err)
		return nil
	}

	if len(issues) == 0 {
		if !*quiet {
			fmt.Printf("%s %s: no markup errors found\n", color.GreenString("✓"), name)
		}
		return nil
	}

	fmt.Printf("%s %s: found %d markup errors:\n", color.RedString("✗"), name, len(issues))
	for _, issue := range issues {
		fmt.Printf("  %s %d:%d %s (%q)\n",
			color.YellowString("[%s]", issue.Code), issue.Line, issue.Column, issue.Reason, issue.Source)
	}
	return nil
}

// writeOutput writes content to a file or stdout
func writeOutput(content, filename string) error {
	if filename == "" {
		_, err := fmt.Print(content)
		return err
	}
	return os.WriteFile(filename, []byte(content), 0644)
}

// findHTMLFiles finds all HTML files in a directory
func findHTMLFiles(dir string) ([]string, error) {
	var htmlFiles []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			ext := strings.ToLower(filepath.Ext(path))
			if ext == ".html" || ext == ".htm" {
				htmlFiles = append(htmlFiles, path)
			}
		}
		return nil
	})

	return htmlFiles, err
}

// outputPathFor mirrors inputPath from inputRoot into outputRoot
func outputPathFor(inputRoot, outputRoot, inputPath string) (string, error) {
	rel, err := filepath.Rel(inputRoot, inputPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(outputRoot, rel), nil
}

func formatHash(h uint64) string {
	return fmt.Sprintf("%016x", h)
}

func addStats(total *rewriter.Stats, s rewriter.Stats) {
	total.Elements += s.Elements
	total.AttributesSet += s.AttributesSet
	total.DataSet += s.DataSet
	total.ClassesAdded += s.ClassesAdded
	total.ClassesRemoved += s.ClassesRemoved
	total.StylesSet += s.StylesSet
	total.StylesRemoved += s.StylesRemoved
	total.ProcessingTime += s.ProcessingTime
}

// showProcessingStats displays processing statistics
func showProcessingStats(result *rewriter.Result, filename string) {
	fmt.Fprintf(os.Stderr, "\nProcessing Statistics for %s:\n", color.CyanString(filename))
	fmt.Fprintf(os.Stderr, "  Matched tags: %d\n", result.Matches)
	fmt.Fprintf(os.Stderr, "  Hash: %s\n", formatHash(result.Hash))
	writeStats(os.Stderr, result.Stats)
}

func writeStats(w io.Writer, s rewriter.Stats) {
	fmt.Fprintf(w, "  Elements: %d\n", s.Elements)
	fmt.Fprintf(w, "  Attributes set: %d\n", s.AttributesSet)
	fmt.Fprintf(w, "  Data attributes set: %d\n", s.DataSet)
	fmt.Fprintf(w, "  Classes added/removed: %d/%d\n", s.ClassesAdded, s.ClassesRemoved)
	fmt.Fprintf(w, "  Styles set/removed: %d/%d\n", s.StylesSet, s.StylesRemoved)
	fmt.Fprintf(w, "  Processing time: %v\n", s.ProcessingTime)
}
