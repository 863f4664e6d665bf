package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/zugferd/internal/model"
	"github.com/rezonia/zugferd/internal/processor"
	"github.com/rezonia/zugferd/internal/validation"
)

var (
	validateTarget targetFlags
	collect        bool
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Check invoice files against the business rules of a profile",
	Long: `Decode invoice files and run the business rules of a target.

Without target flags each document is checked against its own version and
profile. Checks performed:
  - Mandatory fields of the profile (BR-02 ... BR-16)
  - Line identifiers present and unique (BR-21)
  - Only VAT outside Extended (ZF-TAX-01)
  - XRechnung seller contact, buyer reference and type codes (BR-DE-*)

Examples:
  zugferd validate invoice.xml
  zugferd validate invoices/ --profile xrechnung --collect -f json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateTarget.register(validateCmd, "Validate against")
	validateCmd.Flags().BoolVar(&collect, "collect", false, "Report every violation instead of the first (env: VALIDATION_MODE=collect)")
}

// ValidationResult holds the outcome for one file
type ValidationResult struct {
	File       string                         `json:"file" yaml:"file"`
	Valid      bool                           `json:"valid" yaml:"valid"`
	Target     string                         `json:"target,omitempty" yaml:"target,omitempty"`
	Violations []*model.BusinessRuleViolation `json:"violations,omitempty" yaml:"violations,omitempty"`
	Error      string                         `json:"error,omitempty" yaml:"error,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found to validate")
	}

	target, err := validateTarget.target(processor.Target{})
	if err != nil {
		return err
	}

	mode := validation.Strict
	if collect || cfg.CollectViolations() {
		mode = validation.Collect
	}
	pipeline := processor.NewPipeline(processor.WithValidationMode(mode))

	results := make([]*ValidationResult, 0, len(files))
	allValid := true
	for _, file := range files {
		result := validateFile(pipeline, file, target)
		results = append(results, result)
		if !result.Valid {
			allValid = false
		}
	}

	if outputFormat != "table" {
		if err := writeStructured(os.Stdout, results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Valid {
				fmt.Printf("✓ %s: VALID (%s)\n", r.File, r.Target)
				continue
			}
			fmt.Printf("✗ %s: INVALID\n", r.File)
			if r.Error != "" {
				fmt.Printf("  - %s\n", r.Error)
			}
			for _, v := range r.Violations {
				fmt.Printf("  - %s\n", v.Error())
			}
		}
	}

	if !allValid {
		return fmt.Errorf("validation failed for some files")
	}
	return nil
}

func validateFile(pipeline *processor.Pipeline, file string, target processor.Target) *ValidationResult {
	result := &ValidationResult{File: file}

	data, err := os.ReadFile(file)
	if err != nil {
		result.Error = fmt.Sprintf("failed to read file: %v", err)
		return result
	}

	res := pipeline.Validate(data, target)
	if res.Target != nil {
		result.Target = res.Target.String()
	}

	var (
		violation  *model.BusinessRuleViolation
		violations *model.ViolationList
	)
	switch {
	case res.Error == nil:
		result.Valid = true
	case errors.As(res.Error, &violations):
		result.Violations = violations.Violations
	case errors.As(res.Error, &violation):
		result.Violations = []*model.BusinessRuleViolation{violation}
	default:
		result.Error = res.Error.Error()
	}
	return result
}
