package cmd

import (
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rezonia/zugferd/internal/config"
	"github.com/rezonia/zugferd/internal/processor"
	"github.com/rezonia/zugferd/internal/profile"
)

var (
	version = "1.0.0"

	cfg *config.Config

	// Global flags
	verbose      bool
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "zugferd",
	Short: "Read, write and convert ZUGFeRD, Factur-X and XRechnung invoices",
	Long: `zugferd identifies, validates and converts electronic invoice XML.

Supports:
  - ZUGFeRD 1.0 (CrossIndustryDocument)
  - ZUGFeRD 2.0, 2.1, 2.2/2.3 and Factur-X (CII)
  - XRechnung 1.2 and 3.0 in CII and UBL

Examples:
  # Which version and profile is this?
  zugferd identify invoice.xml

  # Turn a CII invoice into XRechnung UBL
  zugferd convert invoice.xml --dialect ubl --profile xrechnung -o out/

  # Check an invoice against the XRechnung rules, reporting every violation
  zugferd validate invoice.xml --profile xrechnung --collect`,
	Version:      version,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	},
}

// Execute runs the root command with the loaded configuration
func Execute(c *config.Config) error {
	cfg = c
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "table", "Output format (table, json, yaml)")
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// writeStructured renders v as JSON or YAML
func writeStructured(w io.Writer, v interface{}) error {
	switch outputFormat {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

// targetFlags are the --version, --dialect and --profile flags
type targetFlags struct {
	version string
	dialect string
	profile string
}

func (f *targetFlags) register(cmd *cobra.Command, what string) {
	cmd.Flags().StringVar(&f.version, "version", "", what+" schema version (1.0, 2.0, 2.1, 2.3)")
	cmd.Flags().StringVar(&f.dialect, "dialect", "", what+" dialect (cii, ubl)")
	cmd.Flags().StringVar(&f.profile, "profile", "", what+" profile (minimum, basicwl, basic, comfort, extended, xrechnung1, xrechnung)")
}

// target parses the flags on top of base
func (f *targetFlags) target(base processor.Target) (processor.Target, error) {
	t := base
	if f.version != "" {
		v, err := profile.ParseVersion(f.version)
		if err != nil {
			return t, err
		}
		t.Version = v
	}
	if f.dialect != "" {
		d, err := profile.ParseFamily(f.dialect)
		if err != nil {
			return t, err
		}
		t.Family = d
	}
	if f.profile != "" {
		p, err := profile.Parse(f.profile)
		if err != nil {
			return t, err
		}
		t.Profile = p
	}
	return t, nil
}

// configuredTarget is the DEFAULT_VERSION, DEFAULT_DIALECT and
// DEFAULT_PROFILE configuration
func configuredTarget() processor.Target {
	v, f, p, err := cfg.Target()
	if err != nil {
		// Load already validated the configuration
		return processor.Target{}
	}
	return processor.Target{Version: v, Family: f, Profile: p}
}
