package commands

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"xdao.co/c2patext/validator"
)

// validate manifest|wrapper|text FILE: structural checks with stable codes.
func validateCmd(o *options) *cobra.Command {
	var (
		mode   string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate manifests, wrappers or embedded text",
	}
	cmd.PersistentFlags().StringVar(&mode, "mode", "", "compliance mode: permissive|strict")
	cmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	report := func(cmd *cobra.Command, res validator.Result) error {
		if asJSON {
			b, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), res.String())
		}
		if !res.Valid {
			o.log.Debug("validation failed",
				slog.String("code", res.PrimaryCode().String()),
				slog.Int("issues", len(res.Issues)))
			return failSilently()
		}
		return nil
	}

	var noJumbf bool
	manifest := &cobra.Command{
		Use:   "manifest [FILE|-]",
		Short: "Validate raw manifest (JUMBF) bytes",
		Args:  positional(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := o.mode(mode)
			if err != nil {
				return err
			}
			b, err := readInput(cmd, argOrStdin(args))
			if err != nil {
				return err
			}
			jumbfChecks := o.cfg.JumbfChecks() && !noJumbf
			return report(cmd, validator.ValidateManifest(b, jumbfChecks, m.Strict()))
		},
	}
	manifest.Flags().BoolVar(&noJumbf, "no-jumbf", false, "skip JUMBF structure checks")

	wrapper := &cobra.Command{
		Use:   "wrapper [FILE|-]",
		Short: "Validate decoded wrapper bytes (header and payload)",
		Args:  positional(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := readInput(cmd, argOrStdin(args))
			if err != nil {
				return err
			}
			return report(cmd, validator.ValidateWrapperBytes(b))
		},
	}

	text := &cobra.Command{
		Use:   "text [FILE|-]",
		Short: "Validate the manifest wrapper embedded in text",
		Args:  positional(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := o.mode(mode)
			if err != nil {
				return err
			}
			b, err := readInput(cmd, argOrStdin(args))
			if err != nil {
				return err
			}
			return report(cmd, validator.ValidateEmbedded(string(b), m.Strict()))
		},
	}

	cmd.AddCommand(manifest, wrapper, text)
	return cmd
}
