package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cayleygraph/rdfwriter/clog"
	"github.com/cayleygraph/rdfwriter/graph/memstore"
	"github.com/cayleygraph/rdfwriter/internal"
	"github.com/cayleygraph/rdfwriter/internal/config"
	chttp "github.com/cayleygraph/rdfwriter/internal/http"
	"github.com/cayleygraph/rdfwriter/writer"
)

const (
	flagLoad        = "load"
	flagLoadFormat  = "load_format"
	flagDump        = "dump"
	flagDumpFormat  = "dump_format"
	flagCompression = "compression"
	flagThreads     = "threads"
	flagPretty      = "pretty"
	flagHighSpeed   = "high_speed"
	flagBOM         = "bom"
	flagPrefix      = "prefix"
	flagBase        = "base"
	flagMetrics     = "metrics_addr"
	flagQuiet       = "quiet"
)

var _ pflag.Value = (*writer.CompressionLevel)(nil)

func registerLoadFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(flagLoad, "i", "", `quad file to load ("-" for stdin)`)
	var names []string
	for _, f := range quad.Formats() {
		if f.Reader != nil {
			names = append(names, f.Name)
		}
	}
	cmd.Flags().String(flagLoadFormat, "", `quad file format to use for loading instead of auto-detection ("`+strings.Join(names, `", "`)+`")`)
}

func registerDumpFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(flagDump, "o", "-", `file to write the dataset to ("-" for stdout)`)
	var names []string
	for _, f := range writer.Formats() {
		names = append(names, f.Name)
	}
	cmd.Flags().String(flagDumpFormat, "", `output format to use instead of auto-detection ("`+strings.Join(names, `", "`)+`")`)
}

func registerWriterFlags(cmd *cobra.Command) {
	def := writer.DefaultOptions()
	comp := def.Compression
	cmd.Flags().Var(&comp, flagCompression, "syntax compression level (none, minimal, default, medium, more, high)")
	cmd.Flags().Int(flagThreads, def.Threads, "number of graphs written concurrently")
	cmd.Flags().Bool(flagPretty, def.PrettyPrint, "indent and align nested output")
	cmd.Flags().Bool(flagHighSpeed, def.HighSpeed, "write graphs with many distinct subjects one triple per line")
	cmd.Flags().Bool(flagBOM, def.BOM, "prefix output files with a UTF-8 byte order mark")
	cmd.Flags().StringArray(flagPrefix, nil, "namespace prefix in the form name=iri (repeatable)")
	cmd.Flags().String(flagBase, "", "base IRI of the output")

	for key, name := range map[string]string{
		config.KeyCompression: flagCompression,
		config.KeyThreads:     flagThreads,
		config.KeyPrettyPrint: flagPretty,
		config.KeyHighSpeed:   flagHighSpeed,
		config.KeyBOM:         flagBOM,
		config.KeyBase:        flagBase,
	} {
		_ = viper.BindPFlag(key, cmd.Flags().Lookup(name))
	}
}

func NewConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "convert [flags] [input...]",
		Aliases: []string{"conv"},
		Short:   "Convert quad files between supported formats.",
		Example: "rdfwriter convert -i data.nq -o data.trig\n" +
			"rdfwriter convert --compression none --dump_format ntriples data.nq",
		RunE: func(cmd *cobra.Command, args []string) error {
			if quiet, _ := cmd.Flags().GetBool(flagQuiet); quiet {
				clog.SetV(-1)
			}
			v := viper.GetViper()
			var files []string
			if name, _ := cmd.Flags().GetString(flagLoad); name != "" {
				files = append(files, name)
			}
			files = append(files, args...)
			if len(files) == 0 {
				return errors.New("no input files specified")
			}
			loadFormat, _ := cmd.Flags().GetString(flagLoadFormat)
			dump, _ := cmd.Flags().GetString(flagDump)
			dumpFormat, _ := cmd.Flags().GetString(flagDumpFormat)
			if dump == "-" && dumpFormat == "" {
				dumpFormat = "nquads"
			}

			f, err := internal.OutputFormat(dump, dumpFormat)
			if err != nil {
				return err
			}
			opts, err := config.WriterOptions(v)
			if err != nil {
				return err
			}
			opts.Warning = clog.Warner(f.Name)

			if addr, _ := cmd.Flags().GetString(flagMetrics); addr != "" {
				stop, err := chttp.Serve(addr)
				if err != nil {
					return err
				}
				defer stop()
			}

			st := memstore.New()
			batch := v.GetInt(config.KeyLoadBatch)
			if batch <= 0 {
				batch = internal.DefaultBatch
			}
			for _, name := range files {
				if err := internal.Load(st, batch, name, loadFormat); err != nil {
					return fmt.Errorf("failed to load %q: %w", name, err)
				}
			}
			if err := applyPrefixes(cmd, v, st); err != nil {
				return err
			}
			if dump == "-" {
				return f.New(opts).Save(st, cmd.OutOrStdout(), true)
			}
			return internal.Dump(st, dump, f.Name, opts)
		},
	}
	registerLoadFlags(cmd)
	registerDumpFlags(cmd)
	registerWriterFlags(cmd)
	cmd.Flags().String(flagMetrics, "", "serve prometheus metrics on this address while converting")
	cmd.Flags().BoolP(flagQuiet, "q", false, "hide logs and warnings")
	return cmd
}

// applyPrefixes binds the configured and command line prefixes and the base
// IRI on every graph of st.
func applyPrefixes(cmd *cobra.Command, v *viper.Viper, st *memstore.Store) error {
	prefixes := config.Prefixes(v)
	flags, _ := cmd.Flags().GetStringArray(flagPrefix)
	for _, s := range flags {
		p, err := config.ParsePrefix(s)
		if err != nil {
			return err
		}
		prefixes = append(prefixes, p)
	}
	for _, p := range prefixes {
		st.AddNamespace(p.Name, p.IRI)
	}
	if base := v.GetString(config.KeyBase); base != "" {
		for _, g := range st.Graphs() {
			g.(*memstore.Graph).SetBaseIRI(quad.IRI(base))
		}
	}
	return nil
}
