package cmd

import (
	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-resdata/internal/ctxlog"
	"github.com/robert-malhotra/go-resdata/resdata"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords <file>",
	Short: "List the keywords of a file",
	Long: `List every keyword of a binary or formatted file with its type and
element count. With --index the file must be uncompressed binary and the
byte offset, size and content checksum of each keyword are printed too.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := ctxlog.FromContext(cmd.Context())
		withIndex, _ := cmd.Flags().GetBool("index")

		f, err := resdata.Open(args[0], resdata.WithLogger(logger))
		if err != nil {
			return err
		}
		defer f.Close()

		if withIndex {
			idx, err := f.Index()
			if err != nil {
				return err
			}
			printf(cmd, "%-8s  %-4s  %10s  %12s  %10s  %s\n", "NAME", "TYPE", "COUNT", "OFFSET", "SIZE", "CHECKSUM")
			for _, e := range idx.Entries() {
				printf(cmd, "%-8s  %-4s  %10d  %12d  %10d  %016x\n", e.Name, e.Type.Tag(), e.Count, e.Offset, e.Size, e.Checksum)
			}
			return nil
		}

		printf(cmd, "%-8s  %-4s  %10s\n", "NAME", "TYPE", "COUNT")
		n := 0
		for kw, err := range f.Records() {
			if err != nil {
				return err
			}
			printf(cmd, "%-8s  %-4s  %10d\n", kw.Name(), kw.Type().Tag(), kw.Len())
			n++
		}
		logger.Info("listed keywords", "path", args[0], "count", n, "mode", f.Mode(), "compression", f.Compression())
		return nil
	},
}

func init() {
	keywordsCmd.Flags().Bool("index", false, "print offsets and checksums from a keyword index")
	rootCmd.AddCommand(keywordsCmd)
}
