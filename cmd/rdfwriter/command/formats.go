package command

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cayleygraph/rdfwriter/writer"
)

func NewFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported output formats.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tEXT\tMIME\tNAMED GRAPHS")
			for _, f := range writer.Formats() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%v\n", f.Name,
					strings.Join(f.Ext, ","), strings.Join(f.Mime, ","), f.Dataset)
			}
			return tw.Flush()
		},
	}
}
