// Package cli implements the erbfmt command-line driver (§6): glob
// expansion over file arguments, per-file formatting, and the write/list/
// check exit-code contract. The core library itself never logs or touches
// the filesystem; both are this package's job.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	erbfmt "github.com/ryancbahan/erb-fmt"
	"github.com/ryancbahan/erb-fmt/internal/config"
	"github.com/ryancbahan/erb-fmt/internal/diag"
	"github.com/ryancbahan/erb-fmt/internal/grammar"
	"github.com/ryancbahan/erb-fmt/internal/log"
	"github.com/ryancbahan/erb-fmt/internal/version"
)

type options struct {
	write      bool
	list       bool
	configPath string
	debug      bool
	showVer    bool
}

// Execute builds and runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "erbfmt [flags] <path>...",
		Short: "Format embedded-template (ERB) files",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.showVer {
				fmt.Fprintln(cmd.OutOrStdout(), version.GetFullVersion())
				return nil
			}
			return run(cmd, args, opts)
		},
		SilenceUsage: true,
	}

	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "write result to source file instead of stdout")
	cmd.Flags().BoolVarP(&opts.list, "list", "l", false, "print the names of files whose formatting differs, without writing")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to a config file (default: discovered per-directory)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	cmd.Flags().BoolVar(&opts.showVer, "version", false, "print version information and exit")

	return cmd
}

func run(cmd *cobra.Command, args []string, opts *options) error {
	if opts.debug {
		log.SetLevel(log.LevelDebug)
		for _, k := range []string{"version", "gitCommit", "gitTag", "buildTime", "gitDirty"} {
			log.Debug("build info: %s=%s", k, version.GetBuildInfo()[k])
		}
	}

	if len(args) == 0 {
		return fmt.Errorf("erbfmt: no file arguments given")
	}

	files, err := expandArgs(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("erbfmt: no files matched")
	}

	facade, err := grammar.NewFacade()
	if err != nil {
		return fmt.Errorf("erbfmt: %w", err)
	}

	hasError := false
	for _, file := range files {
		if err := processFile(cmd, facade, file, opts); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "erbfmt: %s: %v\n", file, err)
			hasError = true
		}
	}

	if hasError {
		return fmt.Errorf("erbfmt: one or more files failed to format")
	}
	return nil
}

// expandArgs resolves every argument as a glob pattern (doublestar, so `**`
// recurses) and returns the sorted, deduplicated set of matched file paths.
func expandArgs(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string

	for _, arg := range args {
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", arg, err)
		}
		if len(matches) == 0 {
			if info, statErr := os.Stat(arg); statErr == nil && !info.IsDir() {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true
			out = append(out, m)
		}
	}

	sort.Strings(out)
	return out, nil
}

func resolveConfig(opts *options, dir string) (config.Config, error) {
	path := opts.configPath
	if path == "" {
		discovered, err := config.Discover(dir)
		if err != nil {
			return config.Config{}, err
		}
		path = discovered
	}
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func processFile(cmd *cobra.Command, facade *grammar.Facade, path string, opts *options) error {
	src, err := os.ReadFile(path) //nolint:gosec // G304: path comes from CLI args/glob expansion
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(opts, filepath.Dir(path))
	if err != nil {
		return err
	}

	result := erbfmt.Format(facade, src, cfg)
	if opts.debug && result.Debug != nil {
		log.Debug("%s: %d placeholder(s)\n%s", path, result.Debug.PlaceholderCount, result.Debug.PlaceholderHTML)
	}
	if result.Diagnostics.HasError() {
		for _, d := range result.Diagnostics {
			log.Error("%s: region %d: %s", path, d.RegionIndex, d.Message)
		}
		return fmt.Errorf("formatting produced %d diagnostic(s)", len(result.Diagnostics))
	}

	changed := result.Output != string(src)

	switch {
	case opts.list:
		if changed {
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
	case opts.write:
		if changed {
			if err := os.WriteFile(path, []byte(result.Output), 0o644); err != nil { //nolint:gosec // G306: formatted source, not secret data
				return err
			}
		}
	default:
		fmt.Fprint(cmd.OutOrStdout(), result.Output)
	}

	logDiagnostics(path, result.Diagnostics)
	return nil
}

func logDiagnostics(path string, diags diag.List) {
	for _, d := range diags {
		switch d.Severity {
		case diag.Warning:
			log.Warn("%s: region %d: %s", path, d.RegionIndex, d.Message)
		case diag.Info:
			log.Debug("%s: region %d: %s", path, d.RegionIndex, d.Message)
		}
	}
}
