package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ucodekit/ucls/internal/config"
	"github.com/ucodekit/ucls/internal/diagnostics"
	"github.com/ucodekit/ucls/internal/lsp"
	"github.com/ucodekit/ucls/internal/modules"
	"github.com/ucodekit/ucls/internal/pipeline"
)

// errCheckFailed signals a non-zero exit without an extra error line; the
// diagnostics themselves are the message.
var errCheckFailed = errors.New("check failed")

type checkOptions struct {
	noColor        bool
	maxDiagnostics int
	root           string
}

func newCheckCommand() *cobra.Command {
	opts := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check [files or directories]",
		Short: "Statically check ucode sources and print diagnostics",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args)
		},
	}
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	cmd.Flags().IntVar(&opts.maxDiagnostics, "max-diagnostics", 0, "cap diagnostics per file (0 = use config)")
	cmd.Flags().StringVar(&opts.root, "root", ".", "workspace root holding "+config.ConfigFileName)
	return cmd
}

type fileReport struct {
	path  string
	items []diagnostics.Diagnostic
	src   string
	err   error
}

func runCheck(opts *checkOptions, args []string) error {
	cfg, err := config.Load(opts.root)
	if err != nil {
		return err
	}
	if opts.maxDiagnostics > 0 {
		cfg.MaxDiagnostics = opts.maxDiagnostics
	}

	files, err := collectFiles(args, opts.root, cfg)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.New("no source files to check")
	}

	registry := modules.NewRegistry()
	reports := make([]fileReport, len(files))

	// Files are independent; the registry and config are read-only, so the
	// whole set checks in parallel.
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				reports[i] = fileReport{path: path, err: err}
				return nil
			}
			ctx := pipeline.Analyze(string(data), registry, cfg)
			reports[i] = fileReport{path: path, items: ctx.Report(), src: string(data)}
			return nil
		})
	}
	g.Wait()

	errCount, _ := render(os.Stdout, opts.noColor, reports)
	if errCount > 0 {
		return errCheckFailed
	}
	return nil
}

// collectFiles expands the argument list into source files, applying the
// workspace ignore patterns to anything found by directory walking.
func collectFiles(args []string, root string, cfg *config.Config) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !isSourceFile(path) {
				return nil
			}
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = path
			}
			if cfg.Ignored(rel) {
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// render prints one line per diagnostic in path:line:col order and a closing
// summary. It returns the error and warning totals.
func render(out *os.File, noColor bool, reports []fileReport) (errCount, warnCount int) {
	color.NoColor = noColor || !isatty.IsTerminal(out.Fd())
	errColor := color.New(color.FgRed, color.Bold)
	warnColor := color.New(color.FgYellow, color.Bold)
	posColor := color.New(color.FgCyan)

	for _, r := range reports {
		if r.err != nil {
			errCount++
			fmt.Fprintf(out, "%s: %s\n", errColor.Sprint("error"), r.err)
			continue
		}
		for _, d := range r.items {
			pos := lsp.OffsetToPosition(r.src, d.Start)
			label := errColor.Sprintf("error %s", d.Code)
			if d.Severity == diagnostics.SeverityWarning {
				warnCount++
				label = warnColor.Sprintf("warning %s", d.Code)
			} else {
				errCount++
			}
			fmt.Fprintf(out, "%s %s: %s\n",
				posColor.Sprintf("%s:%d:%d:", r.path, pos.Line+1, pos.Character+1),
				label, d.Message)
		}
	}

	fmt.Fprintf(out, "%d error(s), %d warning(s)\n", errCount, warnCount)
	return errCount, warnCount
}
