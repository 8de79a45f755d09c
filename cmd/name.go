package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eykd/spicy-go/acceptance"
	"github.com/eykd/spicy-go/bdd"
)

// NewNameCmd creates the name subcommand, which shows how scenario method
// names are displayed in test output.
func NewNameCmd() *cobra.Command {
	var prefix string
	var fromDescription bool

	cmd := &cobra.Command{
		Use:   "name <method>...",
		Short: "Print the display name of scenario methods",
		Long: "Print the display name of each scenario method, one per line.\n" +
			"With --method, arguments are scenario descriptions and the generated method name is printed instead.",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if prefix == "" {
				cfg, err := bdd.ConfigFromEnv()
				if err != nil {
					loggerFrom(cmd.Context()).Debug(err.Error())
				}
				prefix = cfg.Prefix
			}
			out := cmd.OutOrStdout()
			for _, arg := range args {
				if fromDescription {
					fmt.Fprintln(out, acceptance.MethodName(arg))
					continue
				}
				fmt.Fprintln(out, bdd.ScenarioName(arg, prefix))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "", "scenario method prefix (default from SPICY_PREFIX or \""+bdd.DefaultPrefix+"\")")
	cmd.Flags().BoolVar(&fromDescription, "method", false, "treat arguments as descriptions and print method names")
	return cmd
}
