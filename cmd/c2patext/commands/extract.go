package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"xdao.co/c2patext/c2patext"
	"xdao.co/c2patext/cidutil"
)

// extract [FILE]: remove the wrapper and write the clean text to stdout.
func extractCmd(o *options) *cobra.Command {
	var (
		manifestOut string
		store       bool
		stripAll    bool
	)
	cmd := &cobra.Command{
		Use:   "extract [FILE|-]",
		Short: "Extract an embedded manifest and print the clean text",
		Args:  positional(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, argOrStdin(args))
			if err != nil {
				return err
			}

			ex, err := c2patext.ExtractManifest(string(text))
			if err != nil {
				if !stripAll || !errors.Is(err, c2patext.ErrMultipleWrappers) {
					return fmt.Errorf("%s: %w", c2patext.CodeOf(err), err)
				}
				rep := c2patext.Scan(string(text))
				o.log.Warn("multiple wrappers stripped", slog.Int("wrappers", len(rep.Wrappers)))
				return writeOutput(cmd, "-", []byte(c2patext.Strip(string(text))))
			}

			if !ex.Found {
				o.log.Info("no manifest wrapper found")
				return writeOutput(cmd, "-", []byte(ex.CleanText))
			}

			id, err := cidutil.CIDv1Raw(ex.Manifest, o.cfg.Hash)
			if err != nil {
				return err
			}
			o.log.Info("extracted manifest",
				slog.Int("offset", ex.Offset),
				slog.Int("length", ex.Length),
				slog.Int("manifest_bytes", len(ex.Manifest)),
				slog.String("cid", id.String()))

			if manifestOut != "" {
				if err := writeOutput(cmd, manifestOut, ex.Manifest); err != nil {
					return err
				}
			}
			if store {
				s, err := o.openStore()
				if err != nil {
					return err
				}
				stored, err := s.Put(ex.Manifest)
				if err != nil {
					return err
				}
				o.log.Info("stored manifest", slog.String("cid", stored.String()))
			}
			return writeOutput(cmd, "-", []byte(ex.CleanText))
		},
	}
	cmd.Flags().StringVar(&manifestOut, "manifest-out", "", "write the manifest bytes to this file")
	cmd.Flags().BoolVar(&store, "store", false, "put the manifest into the manifest store")
	cmd.Flags().BoolVar(&stripAll, "strip-all", false, "on multiple wrappers, strip them all instead of failing")
	return cmd
}
