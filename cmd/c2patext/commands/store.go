package commands

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ipfs/go-cid"
	"github.com/spf13/cobra"

	"xdao.co/c2patext/storage"
	"xdao.co/c2patext/storage/bundle"
)

// store put|get|has|list|export|import: manage the content-addressed manifest store.
func storeCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage the local manifest store",
	}

	put := &cobra.Command{
		Use:   "put [FILE|-]",
		Short: "Store a manifest and print its CID",
		Args:  positional(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.openStore()
			if err != nil {
				return err
			}
			b, err := readInput(cmd, argOrStdin(args))
			if err != nil {
				return err
			}
			id, err := s.Put(b)
			if err != nil {
				return err
			}
			o.log.Debug("stored manifest", slog.String("cid", id.String()), slog.Int("bytes", len(b)))
			fmt.Fprintln(cmd.OutOrStdout(), id.String())
			return nil
		},
	}

	var outPath string
	get := &cobra.Command{
		Use:   "get CID",
		Short: "Write a stored manifest",
		Args:  positional(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseCID(args[0])
			if err != nil {
				return err
			}
			s, err := o.openStore()
			if err != nil {
				return err
			}
			b, err := s.Get(id)
			if err != nil {
				return fmt.Errorf("%s: %w", id, err)
			}
			return writeOutput(cmd, outPath, b)
		},
	}
	get.Flags().StringVarP(&outPath, "output", "o", "", "output file (default stdout)")

	has := &cobra.Command{
		Use:   "has CID",
		Short: "Report whether a manifest is stored; exits 1 when absent",
		Args:  positional(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseCID(args[0])
			if err != nil {
				return err
			}
			s, err := o.openStore()
			if err != nil {
				return err
			}
			ok := s.Has(id)
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			if !ok {
				return failSilently()
			}
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List stored manifest CIDs",
		Args:  positional(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.openStore()
			if err != nil {
				return err
			}
			l, ok := s.(storage.Lister)
			if !ok {
				return errors.New("configured store cannot list its contents")
			}
			ids, err := l.List()
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id.String())
			}
			return nil
		},
	}

	var (
		exportOut string
		noIndex   bool
	)
	export := &cobra.Command{
		Use:   "export [CID...]",
		Short: "Write stored manifests as a deterministic TAR bundle (all when no CID is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := o.mode("")
			if err != nil {
				return err
			}
			s, err := o.openStore()
			if err != nil {
				return err
			}
			ids := make([]cid.Cid, 0, len(args))
			for _, a := range args {
				id, err := parseCID(a)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}
			if len(ids) == 0 {
				l, ok := s.(storage.Lister)
				if !ok {
					return errors.New("configured store cannot list its contents")
				}
				if ids, err = l.List(); err != nil {
					return err
				}
			}
			var buf bytes.Buffer
			if err := bundle.Export(&buf, s, ids, bundle.ExportOptions{IncludeIndex: !noIndex, Strict: m.Strict()}); err != nil {
				return err
			}
			o.log.Info("exported bundle", slog.Int("manifests", len(ids)), slog.Int("bytes", buf.Len()))
			return writeOutput(cmd, exportOut, buf.Bytes())
		},
	}
	export.Flags().StringVarP(&exportOut, "output", "o", "", "output file (default stdout)")
	export.Flags().BoolVar(&noIndex, "no-index", false, "omit index.json")

	var (
		ignoreUnknown bool
		requireValid  bool
	)
	imp := &cobra.Command{
		Use:   "import [FILE|-]",
		Short: "Import manifests from a TAR bundle",
		Args:  positional(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := o.mode("")
			if err != nil {
				return err
			}
			s, err := o.openStore()
			if err != nil {
				return err
			}
			b, err := readInput(cmd, argOrStdin(args))
			if err != nil {
				return err
			}
			ids, err := bundle.Import(bytes.NewReader(b), s, bundle.ImportOptions{
				IgnoreUnknown: ignoreUnknown,
				RequireValid:  requireValid,
				Strict:        m.Strict(),
			})
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id.String())
			}
			if err != nil {
				return err
			}
			o.log.Info("imported bundle", slog.Int("manifests", len(ids)))
			return nil
		},
	}
	imp.Flags().BoolVar(&ignoreUnknown, "ignore-unknown", false, "skip unknown bundle entries")
	imp.Flags().BoolVar(&requireValid, "require-valid", false, "reject manifests that fail validation (mode from config)")

	cmd.AddCommand(put, get, has, list, export, imp)
	return cmd
}

func parseCID(s string) (cid.Cid, error) {
	id, err := cid.Parse(s)
	if err != nil {
		return cid.Undef, usageErr(fmt.Errorf("invalid CID %q: %w", s, err))
	}
	return id, nil
}
