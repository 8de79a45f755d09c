package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eykd/spicy-go/acceptance"
)

// NewParseCmd creates the parse subcommand.
func NewParseCmd(specIO SpecIO) *cobra.Command {
	var formatName, outPath string

	cmd := &cobra.Command{
		Use:          "parse <spec-path>",
		Short:        "Parse a GWT spec file and output its IR",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := acceptance.ParseFormat(formatName)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			log := loggerFrom(ctx)
			specPath := args[0]

			feature, err := readSpec(cmd, specIO, specPath)
			if err != nil {
				return err
			}
			log.Debug("parsed spec",
				zap.String("path", specPath),
				zap.Int("scenarios", len(feature.Scenarios)))

			data, err := acceptance.SerializeIR(feature, format)
			if err != nil {
				return fmt.Errorf("encoding IR: %w", err)
			}

			if outPath == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := specIO.WriteFileAtomic(outPath, string(data)); err != nil {
				return fmt.Errorf("writing %s: %w", outPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s: %d scenarios\n", sanitizePath(outPath), len(feature.Scenarios))
			return nil
		},
	}
	cmd.Flags().StringVar(&formatName, "format", string(acceptance.FormatJSON), "IR format: json or yaml")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write the IR to this file instead of stdout")
	return cmd
}

// readSpec reads and parses a plain-text spec.
func readSpec(cmd *cobra.Command, specIO SpecIO, path string) (*acceptance.Feature, error) {
	data, err := specIO.ReadFile(cmd.Context(), path)
	if err != nil {
		return nil, fmt.Errorf("reading spec: %w", err)
	}
	feature, err := acceptance.ParseSpec(string(data), path)
	if err != nil {
		return nil, fmt.Errorf("parsing spec: %w", err)
	}
	return feature, nil
}
