package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ipfs/go-cid"
	"github.com/spf13/cobra"

	"xdao.co/c2patext/c2patext"
	"xdao.co/c2patext/cidutil"
	"xdao.co/c2patext/validator"
)

// embed: append a manifest wrapper to NFC-normalized text.
func embedCmd(o *options) *cobra.Command {
	var (
		textPath     string
		manifestPath string
		manifestCID  string
		outPath      string
		validate     bool
		mode         string
	)
	cmd := &cobra.Command{
		Use:   "embed --text FILE (--manifest FILE | --manifest-cid CID)",
		Short: "Embed a manifest into text",
		Args:  positional(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (manifestPath == "") == (manifestCID == "") {
				return usageErr(errors.New("exactly one of --manifest or --manifest-cid is required"))
			}
			m, err := o.mode(mode)
			if err != nil {
				return err
			}

			text, err := readInput(cmd, textPath)
			if err != nil {
				return err
			}

			var manifest []byte
			if manifestPath != "" {
				if manifest, err = readInput(cmd, manifestPath); err != nil {
					return err
				}
			} else {
				id, err := cid.Parse(manifestCID)
				if err != nil {
					return usageErr(fmt.Errorf("invalid --manifest-cid: %w", err))
				}
				s, err := o.openStore()
				if err != nil {
					return err
				}
				if manifest, err = s.Get(id); err != nil {
					return fmt.Errorf("load manifest %s: %w", id, err)
				}
			}

			if uint64(len(manifest)) > c2patext.MaxManifestSize {
				return fmt.Errorf("manifest too large: %d bytes", len(manifest))
			}

			if validate {
				res := validator.ValidateManifest(manifest, o.cfg.JumbfChecks(), m.Strict())
				if !res.Valid {
					fmt.Fprintln(cmd.ErrOrStderr(), res.String())
					return failSilently()
				}
			}

			id, err := cidutil.CIDv1Raw(manifest, o.cfg.Hash)
			if err != nil {
				return err
			}
			out := c2patext.EmbedManifest(string(text), manifest)
			o.log.Info("embedded manifest",
				slog.Int("manifest_bytes", len(manifest)),
				slog.String("cid", id.String()),
				slog.Int("offset", len(out)-len(c2patext.EncodeWrapper(manifest))))
			return writeOutput(cmd, outPath, []byte(out))
		},
	}
	cmd.Flags().StringVar(&textPath, "text", "", "text file to embed into (- for stdin)")
	cmd.Flags().StringVar(&manifestPath, "manifest", "", "manifest (JUMBF) file")
	cmd.Flags().StringVar(&manifestCID, "manifest-cid", "", "load the manifest from the store by CID")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&validate, "validate", false, "validate the manifest before embedding")
	cmd.Flags().StringVar(&mode, "mode", "", "compliance mode: permissive|strict")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}
