package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"xdao.co/c2patext/c2patext"
	"xdao.co/c2patext/cidutil"
	"xdao.co/c2patext/jumbf"
)

// inspect [FILE]: list every wrapper candidate without enforcing uniqueness.
func inspectCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [FILE|-]",
		Short: "List wrapper candidates and their JUMBF box headers",
		Args:  positional(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, argOrStdin(args))
			if err != nil {
				return err
			}
			rep := c2patext.Scan(string(text))
			return writeReport(cmd.OutOrStdout(), rep, o.cfg.Hash)
		},
	}
}

func writeReport(w io.Writer, rep c2patext.ScanReport, hash string) error {
	fmt.Fprintf(w, "wrappers: %d\n", len(rep.Wrappers))
	fmt.Fprintf(w, "rejected: %d\n", rep.Rejected)
	for i, sp := range rep.Wrappers {
		id, err := cidutil.CIDv1Raw(sp.Payload, hash)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "[%d] bytes=%d..%d scalars=%d..%d version=%d length=%d cid=%s\n",
			i, sp.ByteStart, sp.ByteEnd, sp.Start, sp.End, sp.Header.Version, sp.Header.Length, id)

		h, err := jumbf.ParseBoxHeader(sp.Payload)
		if err != nil {
			fmt.Fprintf(w, "    jumbf: %v\n", err)
			continue
		}
		fmt.Fprintf(w, "    jumbf: type=%q size=%d effective=%d header=%d\n",
			h.Type.String(), h.Size, h.EffectiveSize, h.HeaderLen)
	}
	return nil
}
