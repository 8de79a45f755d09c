package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eykd/spicy-go/acceptance"
)

var (
	// errSuiteWithDir is returned when --suite is combined with a directory input.
	errSuiteWithDir = errors.New("--suite cannot be used when scaffolding a directory")
	// errOutputCollision is returned when two specs map to the same test file.
	errOutputCollision = errors.New("specs scaffold to the same output file")
)

// NewScaffoldCmd creates the scaffold subcommand.
func NewScaffoldCmd(specIO SpecIO) *cobra.Command {
	var outPath string
	var opts acceptance.GenerateOptions

	cmd := &cobra.Command{
		Use:   "scaffold <spec-path|ir-path|dir>",
		Short: "Generate or refresh a Go scenario suite from a spec",
		Long: "Generate a Go test file with one scenario method per spec scenario.\n" +
			"Scenario methods that are already implemented in the output file are preserved.",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			exists, isDir, err := specIO.StatFile(input)
			if err != nil {
				return fmt.Errorf("checking %s: %w", input, err)
			}
			if !exists {
				return fmt.Errorf("%s does not exist", input)
			}

			if !isDir {
				if outPath == "" {
					outPath = filepath.Join(filepath.Dir(input), testFileName(input))
				}
				return scaffoldOne(cmd, specIO, input, outPath, opts)
			}

			if opts.Suite != "" {
				return errSuiteWithDir
			}
			if outPath == "" {
				outPath = input
			}
			specs, err := specIO.ScanSpecs(cmd.Context(), input)
			if err != nil {
				return err
			}
			if len(specs) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No spec files found in %s\n", sanitizePath(input))
				return nil
			}
			outputs, err := dirOutputs(input, outPath, specs)
			if err != nil {
				return err
			}
			for i, spec := range specs {
				if err := scaffoldOne(cmd, specIO, spec, outputs[i], opts); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file, or output directory for a directory input")
	cmd.Flags().StringVar(&opts.Suite, "suite", "", "suite type name (default derived from the spec file name)")
	cmd.Flags().StringVar(&opts.Package, "package", acceptance.DefaultPackage, "package name of the generated file")
	return cmd
}

// dirOutputs maps each spec under dir to its test file under outDir, keeping
// the spec's subdirectory. Two specs mapping to one file is an error.
func dirOutputs(dir, outDir string, specs []string) ([]string, error) {
	outputs := make([]string, len(specs))
	seen := make(map[string]string, len(specs))
	for i, spec := range specs {
		rel, err := filepath.Rel(dir, spec)
		if err != nil {
			return nil, fmt.Errorf("locating %s: %w", spec, err)
		}
		out := filepath.Join(outDir, filepath.Dir(rel), testFileName(spec))
		if prev, ok := seen[out]; ok {
			return nil, fmt.Errorf("%w: %s and %s both write %s", errOutputCollision, prev, spec, out)
		}
		seen[out] = spec
		outputs[i] = out
	}
	return outputs, nil
}

// scaffoldOne generates the suite for one input and merges it into outPath.
func scaffoldOne(cmd *cobra.Command, specIO SpecIO, input, outPath string, opts acceptance.GenerateOptions) error {
	log := loggerFrom(cmd.Context())

	feature, err := readFeature(cmd, specIO, input)
	if err != nil {
		return err
	}

	existing, err := readExisting(cmd, specIO, outPath)
	if err != nil {
		return err
	}

	code, err := acceptance.GenerateSuite(feature, opts, existing)
	if err != nil {
		return fmt.Errorf("generating %s: %w", outPath, err)
	}
	if err := specIO.WriteFileAtomic(outPath, code); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	pending := strings.Count(code, acceptance.UnboundSentinel)
	log.Debug("scaffolded suite",
		zap.String("input", input),
		zap.String("out", outPath),
		zap.Int("scenarios", len(feature.Scenarios)),
		zap.Int("pending", pending))
	fmt.Fprintf(cmd.OutOrStdout(), "Scaffolded %s: %d scenarios, %d pending\n",
		sanitizePath(outPath), len(feature.Scenarios), pending)
	return nil
}

// readFeature loads a feature from a plain-text spec or a serialized IR file.
func readFeature(cmd *cobra.Command, specIO SpecIO, path string) (*acceptance.Feature, error) {
	format, err := acceptance.FormatForPath(path)
	if err != nil {
		return readSpec(cmd, specIO, path)
	}
	data, err := specIO.ReadFile(cmd.Context(), path)
	if err != nil {
		return nil, fmt.Errorf("reading IR: %w", err)
	}
	feature, err := acceptance.DeserializeIR(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return feature, nil
}

// readExisting returns the current content of outPath, or "" if it does not exist.
func readExisting(cmd *cobra.Command, specIO SpecIO, outPath string) (string, error) {
	exists, isDir, err := specIO.StatFile(outPath)
	if err != nil {
		return "", fmt.Errorf("checking %s: %w", outPath, err)
	}
	if !exists {
		return "", nil
	}
	if isDir {
		return "", fmt.Errorf("%s is a directory", outPath)
	}
	data, err := specIO.ReadFile(cmd.Context(), outPath)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", outPath, err)
	}
	return string(data), nil
}

// testFileName maps a spec path to its generated test file name:
// "specs/US1-add-item.txt" becomes "us1_add_item_test.go".
func testFileName(specPath string) string {
	base := strings.TrimSuffix(filepath.Base(specPath), filepath.Ext(specPath))
	words := strings.FieldsFunc(strings.ToLower(base), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return "feature_test.go"
	}
	return strings.Join(words, "_") + "_test.go"
}
