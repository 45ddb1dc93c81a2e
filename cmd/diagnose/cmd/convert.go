package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-resdata/internal/config"
	"github.com/robert-malhotra/go-resdata/internal/ctxlog"
	"github.com/robert-malhotra/go-resdata/resdata"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Convert a keyword file between binary and formatted layouts",
	Long: `Convert reads every keyword of the input and writes it to the output.
The output layout follows the output extension unless --formatted is given
or the configuration sets output.formatted. Compression defaults to the
configured output.compression.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := ctxlog.FromContext(cmd.Context())

		cfg := configFrom(cmd.Context())
		out := *cfg.Output
		if cmd.Flags().Changed("compression") {
			out.Compression, _ = cmd.Flags().GetString("compression")
		}
		compression, err := out.CompressionMode()
		if err != nil {
			return err
		}

		opts := []resdata.Option{resdata.WithLogger(logger), resdata.WithCompression(compression)}
		switch {
		case cmd.Flags().Changed("formatted"):
			formatted, _ := cmd.Flags().GetBool("formatted")
			opts = append(opts, resdata.WithFormatted(formatted))
		case out.Formatted:
			opts = append(opts, resdata.WithFormatted(true))
		}

		n, err := convert(args[0], args[1], opts)
		if err != nil {
			return err
		}
		logger.Info("converted", "from", args[0], "to", args[1], "keywords", n, "compression", out.Compression)
		printf(cmd, "wrote %d keywords to %s\n", n, args[1])
		return nil
	},
}

func convert(in, out string, opts []resdata.Option) (int, error) {
	f, err := resdata.Open(in)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	w, err := resdata.Create(out, opts...)
	if err != nil {
		return 0, err
	}

	n := 0
	for kw, err := range f.Records() {
		if err != nil {
			w.Close()
			return n, fmt.Errorf("reading %s: %w", in, err)
		}
		if err := w.Write(kw); err != nil {
			w.Close()
			return n, fmt.Errorf("writing %s: %w", out, err)
		}
		n++
	}
	return n, w.Close()
}

func init() {
	convertCmd.Flags().Bool("formatted", false, "write the formatted (ASCII) layout")
	convertCmd.Flags().String("compression", config.Default().Output.Compression, "output compression (none, gzip, zstd, snappy)")
	rootCmd.AddCommand(convertCmd)
}
