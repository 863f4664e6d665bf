package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/zugferd/internal/model"
	"github.com/rezonia/zugferd/internal/processor"
	"github.com/rezonia/zugferd/internal/profile"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Dump the decoded invoice",
	Long: `Decode an invoice file and print the canonical invoice model.

The table format is not available here; JSON is printed instead.

Examples:
  zugferd inspect invoice.xml
  zugferd inspect invoice.xml -f yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

type inspectReport struct {
	File    string          `json:"file" yaml:"file"`
	Family  profile.Family  `json:"family" yaml:"family"`
	Version profile.Version `json:"version" yaml:"version"`
	Profile profile.Profile `json:"profile" yaml:"profile"`
	Invoice *model.Invoice  `json:"invoice" yaml:"invoice"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	res := processor.NewPipeline().Load(data)
	if res.Error != nil {
		return res.Error
	}

	if outputFormat == "table" {
		outputFormat = "json"
	}
	return writeStructured(os.Stdout, inspectReport{
		File:    args[0],
		Family:  res.Family,
		Version: res.Version,
		Profile: res.Profile,
		Invoice: res.Invoice,
	})
}
