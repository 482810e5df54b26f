// Command optionalgen generates typed optional variants for Go types marked
// with an //optional:variant directive, and registers them in the default
// registry of the optional package.
//
//	//optional:variant
//	type DataObject struct { ... }
//
//	//optional:variant Resource
//	type Handle struct { ... }
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/NickyBoy89/optional/internal/gosrc"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type options struct {
	output  string
	pkg     string
	dryRun  bool
	verbose bool
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "optionalgen [flags] files...",
		Short: "Generate typed optional variants for marked Go types",
		Args:  cobra.MinimumNArgs(1),
		PersistentPreRun: func(*cobra.Command, []string) {
			if opts.verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, args, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", "", "File to write the generated code to, defaults to standard output")
	flags.StringVarP(&opts.pkg, "package", "p", "", "Package of the generated code, defaults to the package of the scanned files")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Don't write the generated code (check if generation succeeds)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Additional debug info")

	return cmd
}

func run(ctx context.Context, opts *options, paths []string, stdout io.Writer) error {
	var files []*gosrc.File

	for _, path := range paths {
		if filepath.Ext(path) != ".go" || strings.HasSuffix(path, "_test.go") {
			log.WithField("file", path).Debug("Skipping file")
			continue
		}

		source, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		file, err := gosrc.Scan(ctx, source)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		log.WithFields(log.Fields{
			"file":         path,
			"declarations": len(file.Declarations),
		}).Debug("Scanned file")

		files = append(files, file)
	}

	generated, err := Generate(opts.pkg, files...)
	if err != nil {
		return err
	}

	if opts.dryRun {
		log.Info("Generated variants, not writing them")
		return nil
	}
	if opts.output == "" {
		_, err = stdout.Write(generated)
		return err
	}
	if err := os.WriteFile(opts.output, generated, 0o644); err != nil {
		return err
	}
	log.WithField("file", opts.output).Info("Wrote variants")
	return nil
}
