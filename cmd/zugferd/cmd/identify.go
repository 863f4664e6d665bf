package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rezonia/zugferd/internal/processor"
	"github.com/rezonia/zugferd/internal/profile"
)

var identifyCmd = &cobra.Command{
	Use:   "identify [files...]",
	Short: "Show dialect, schema version and profile of invoice files",
	Long: `Recognize invoice documents without converting them.

Shows:
  - Dialect (CII or UBL)
  - Schema version (1.0, 2.0, 2.3)
  - Profile named by the guideline identifier

Documents written as ZUGFeRD 2.1 or 2.2 report version 2.3; the three
share one schema.

Examples:
  zugferd identify invoice.xml
  zugferd identify invoices/ -f json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIdentify,
}

func init() {
	rootCmd.AddCommand(identifyCmd)
}

type identifyReport struct {
	File    string          `json:"file" yaml:"file"`
	Family  profile.Family  `json:"family,omitempty" yaml:"family,omitempty"`
	Version profile.Version `json:"version,omitempty" yaml:"version,omitempty"`
	Profile profile.Profile `json:"profile,omitempty" yaml:"profile,omitempty"`
	Error   string          `json:"error,omitempty" yaml:"error,omitempty"`
}

func runIdentify(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found")
	}

	pipeline := processor.NewPipeline()
	reports := make([]identifyReport, 0, len(files))
	for _, file := range files {
		report := identifyReport{File: file}
		data, err := os.ReadFile(file)
		if err != nil {
			report.Error = fmt.Sprintf("failed to read file: %v", err)
			reports = append(reports, report)
			continue
		}

		res := pipeline.Identify(data)
		report.Family, report.Version, report.Profile = res.Family, res.Version, res.Profile
		if res.Error != nil {
			report.Error = res.Error.Error()
		}
		reports = append(reports, report)
	}

	if outputFormat != "table" {
		return writeStructured(os.Stdout, reports)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tDIALECT\tVERSION\tPROFILE")
	for _, r := range reports {
		if r.Error != "" {
			fmt.Fprintf(tw, "%s\tERROR: %s\t\t\n", r.File, r.Error)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.File, r.Family, r.Version, r.Profile)
	}
	return tw.Flush()
}
