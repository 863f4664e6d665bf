package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/zugferd/internal/processor"
	"github.com/rezonia/zugferd/internal/validation"
)

var (
	convertTarget targetFlags
	outputDir     string
	workers       int
	timeout       time.Duration
)

var convertCmd = &cobra.Command{
	Use:   "convert [files...]",
	Short: "Convert invoice files to another version, dialect or profile",
	Long: `Decode invoice files and encode them again for a target.

Unset target flags fall back to DEFAULT_VERSION, DEFAULT_DIALECT and
DEFAULT_PROFILE. The invoice is validated for the target before anything
is written; fields the target profile does not carry are dropped.

Files are converted concurrently, CONVERT_WORKERS at a time. A single
file without --output is written to stdout.

Examples:
  zugferd convert invoice.xml --version 2.3 --dialect ubl --profile xrechnung > ubl.xml
  zugferd convert invoices/ --profile comfort -o converted/
  zugferd convert *.xml --dialect cii --version 2.0 -o v20/ --workers 8`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertTarget.register(convertCmd, "Target")
	convertCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (default: stdout for a single file)")
	convertCmd.Flags().IntVar(&workers, "workers", 0, "Concurrent conversions (env: CONVERT_WORKERS)")
	convertCmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "Timeout for the whole batch")
}

type convertReport struct {
	File   string `json:"file" yaml:"file"`
	Output string `json:"output,omitempty" yaml:"output,omitempty"`
	From   string `json:"from,omitempty" yaml:"from,omitempty"`
	To     string `json:"to,omitempty" yaml:"to,omitempty"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

func runConvert(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found to convert")
	}
	if outputDir == "" && len(files) > 1 {
		return fmt.Errorf("--output is required when converting %d files", len(files))
	}

	target, err := convertTarget.target(configuredTarget())
	if err != nil {
		return err
	}

	n := workers
	if n <= 0 {
		n = cfg.ConvertWorkers
	}
	mode := validation.Strict
	if cfg.CollectViolations() {
		mode = validation.Collect
	}
	pipeline := processor.NewPipeline(processor.WithWorkers(n), processor.WithValidationMode(mode))

	inputs := make([]processor.Input, 0, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
		inputs = append(inputs, processor.Input{Name: file, Data: data})
	}
	printVerbose("Converting %d files to %s with %d workers\n", len(inputs), target, n)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	results, err := pipeline.ConvertBatch(ctx, inputs, target)
	if err != nil {
		return fmt.Errorf("conversion interrupted: %w", err)
	}

	if outputDir == "" {
		res := results[0]
		if res.Error != nil {
			return fmt.Errorf("%s: %w", res.Name, res.Error)
		}
		_, err := os.Stdout.Write(res.Output)
		return err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	paths := outputPaths(outputDir, results)
	failed := 0
	reports := make([]convertReport, 0, len(results))
	for i, res := range results {
		report := convertReport{File: res.Name}
		if res.Error == nil {
			report.Output = paths[i]
			report.From = fmt.Sprintf("%s %s %s", res.Family, res.Version, res.Profile)
			report.To = res.Target.String()
			if err := os.WriteFile(report.Output, res.Output, 0o644); err != nil {
				res.Error = err
			}
		}
		if res.Error != nil {
			report.Output = ""
			report.Error = res.Error.Error()
			failed++
		}
		reports = append(reports, report)
	}

	if err := outputConvertReports(reports); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to convert", failed, len(results))
	}
	return nil
}

// outputPaths names each converted file after its input and the target,
// e.g. invoice.ubl-2.3.xml. Inputs sharing a base name in different
// directories get a counter (invoice-2.ubl-2.3.xml) so no output is
// overwritten. Failed results get an empty path.
func outputPaths(dir string, results []*processor.Result) []string {
	paths := make([]string, len(results))
	taken := make(map[string]bool, len(results))
	for i, res := range results {
		if res.Error != nil {
			continue
		}
		base := strings.TrimSuffix(filepath.Base(res.Name), filepath.Ext(res.Name))
		suffix := fmt.Sprintf(".%s-%s.xml", strings.ToLower(res.Target.Family.String()), res.Target.Version)
		name := base + suffix
		for n := 2; taken[name]; n++ {
			name = fmt.Sprintf("%s-%d%s", base, n, suffix)
		}
		taken[name] = true
		paths[i] = filepath.Join(dir, name)
	}
	return paths
}

func outputConvertReports(reports []convertReport) error {
	if outputFormat != "table" {
		return writeStructured(os.Stdout, reports)
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tFROM\tTO\tOUTPUT")
	for _, r := range reports {
		if r.Error != "" {
			fmt.Fprintf(tw, "%s\tERROR: %s\t\t\n", r.File, r.Error)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.File, r.From, r.To, r.Output)
	}
	return tw.Flush()
}

func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		// Check if it's a glob pattern
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", arg, err)
		}

		if len(matches) == 0 {
			return nil, fmt.Errorf("file not found: %s", arg)
		}

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				continue
			}
			if !info.IsDir() {
				files = append(files, match)
				continue
			}
			err = filepath.WalkDir(match, func(path string, d os.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() && isSupportedFile(path) {
					files = append(files, path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		}
	}

	return files, nil
}

func isSupportedFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xml")
}
