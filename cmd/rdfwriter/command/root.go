// Package command implements the rdfwriter command line.
package command

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cayleygraph/rdfwriter/internal/config"

	// Load all supported output formats.
	_ "github.com/cayleygraph/rdfwriter/writer/csv"
	_ "github.com/cayleygraph/rdfwriter/writer/jsonld"
	_ "github.com/cayleygraph/rdfwriter/writer/nquads"
	_ "github.com/cayleygraph/rdfwriter/writer/rdfxml"
	_ "github.com/cayleygraph/rdfwriter/writer/trig"
	_ "github.com/cayleygraph/rdfwriter/writer/turtle"
)

const flagConfig = "config"

// Set by the main package.
var (
	Version   string
	BuildDate string
)

// NewRootCmd creates the rdfwriter command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rdfwriter",
		Short:         "Serialize RDF graphs and datasets in a variety of syntaxes.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString(flagConfig)
			return config.Load(viper.GetViper(), file)
		},
	}
	config.SetDefaults(viper.GetViper())
	root.PersistentFlags().String(flagConfig, "", "path to an explicit configuration file (yaml, json or toml)")
	root.AddCommand(
		NewConvertCmd(),
		NewFormatsCmd(),
		NewVersionCmd(),
	)
	return root
}

func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Version information.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if Version != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "rdfwriter %s built %s\n", Version, BuildDate)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "rdfwriter snapshot")
			}
			return nil
		},
	}
}
