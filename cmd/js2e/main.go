// Command js2e generates typed Elm modules (types, decoders, encoders)
// from JSON Schema documents.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	js2e "github.com/albertored/json-schema-to-elm"
	"github.com/albertored/json-schema-to-elm/codegen"
	"github.com/albertored/json-schema-to-elm/emitter"
	_ "github.com/albertored/json-schema-to-elm/emitter/elm"
	"github.com/albertored/json-schema-to-elm/i18n"
)

var (
	flagOut     string
	flagModule  string
	flagConfig  string
	flagTarget  string
	flagStrict  bool
	flagVerbose bool
)

// entered tracks whether argument and flag parsing succeeded; failures
// before RunE exit 2, generation failures exit 1.
var entered bool

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "js2e <schema.json> [more-schemas.json...]",
		Short: "Generate Elm types, decoders and encoders from JSON Schema",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entered = true
			return runGenerate(cmd, args)
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringVarP(&flagOut, "out", "o", ".", "Output directory for generated modules")
	cmd.Flags().StringVarP(&flagModule, "module", "m", "", "Root module prefix for generated modules")
	cmd.Flags().StringVarP(&flagConfig, "config", "c", "", "YAML options file (flags override it)")
	cmd.Flags().StringVar(&flagTarget, "target", "elm", "Registered emitter target")
	cmd.Flags().BoolVar(&flagStrict, "strict", false, "Escalate warnings to errors")
	cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		log.SetLevel(log.DebugLevel)
	}

	opts := js2e.Options{}
	if flagConfig != "" {
		loaded, err := js2e.LoadOptions(flagConfig)
		if err != nil {
			return err
		}
		opts = loaded
	}
	if flagModule != "" {
		opts.RootModule = flagModule
	}
	if flagStrict {
		opts.Strict = true
	}

	em, ok := emitter.Lookup(flagTarget)
	if !ok {
		return fmt.Errorf("unknown target %q (registered: %v)", flagTarget, emitter.Names())
	}

	docs := make([]js2e.Document, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read schema: %w", err)
		}
		uri := "file://" + filepath.ToSlash(absPath(path))
		doc, err := js2e.DecodeDocument(uri, data)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}

	result, err := codegen.Generate(docs, em, opts)
	if err != nil {
		return err
	}
	printDiagnostics(result)

	for _, name := range result.SortedFileNames() {
		target := filepath.Join(flagOut, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		if err := os.WriteFile(target, []byte(result.Files[name]), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", target, err)
		}
		log.WithField("file", target).Debug("wrote module")
	}

	if len(result.Errors) > 0 {
		// Diagnostics were already printed; keep the process exit
		// message short.
		return fmt.Errorf("%d error(s)", len(result.Errors))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Generated %d module(s) in %s\n", len(result.Files), flagOut)
	return nil
}

func printDiagnostics(result js2e.SchemaResult) {
	warnColor := color.New(color.FgYellow)
	errColor := color.New(color.FgRed)
	for _, w := range result.Warnings {
		warnColor.Fprintf(os.Stderr, "warning: %s at %s: %s\n", i18n.T(w.Kind, nil), w.Identifier, w.Message)
	}
	for _, e := range result.Errors {
		errColor.Fprintf(os.Stderr, "error: %s at %s: %s\n", i18n.T(e.Kind, nil), e.Identifier, e.Message)
	}
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if !entered {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
