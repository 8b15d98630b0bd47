// Command apisan drives the symbolic-execution-trace checkers over a
// directory of traces (spec.md §6, SPEC_FULL.md §8): `build`/`compile`
// shell out to an external analyzer binary that produces those traces;
// `check` runs a checker over them and prints the ranked bug reports.
// Grounded on cmd/lci's cli.App/cli.Command shape (urfave/cli/v2).
package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/cogumbreiro/apisan/internal/checker"
	"github.com/cogumbreiro/apisan/internal/config"
	"github.com/cogumbreiro/apisan/internal/dbg"
	"github.com/cogumbreiro/apisan/internal/explorer"
	"github.com/cogumbreiro/apisan/internal/report"
	"github.com/cogumbreiro/apisan/internal/trace"
)

func main() {
	app := &cli.App{
		Name:  "apisan",
		Usage: "frequency-based API usage anomaly detector over symbolic execution traces",
		Commands: []*cli.Command{
			buildCommand(),
			compileCommand(),
			checkCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "apisan: %v\n", err)
		os.Exit(1)
	}
}

// analyzerFlag names the external analyzer binary; build/compile are
// thin wrappers around it (spec.md §1 Non-goals: symbolic execution
// itself is out of scope, only trace analysis is implemented here).
var analyzerFlag = &cli.StringFlag{
	Name:  "analyzer",
	Usage: "path to the external symbolic-execution analyzer binary",
	Value: "apisan-analyzer",
}

func buildCommand() *cli.Command {
	return &cli.Command{
		Name:      "build",
		Usage:     "build a traced binary via the external analyzer",
		ArgsUsage: "[analyzer args...]",
		Flags:     []cli.Flag{analyzerFlag},
		Action: func(c *cli.Context) error {
			return shellOut(c.String("analyzer"), append([]string{"build"}, c.Args().Slice()...))
		},
	}
}

func compileCommand() *cli.Command {
	return &cli.Command{
		Name:      "compile",
		Usage:     "compile and trace a single file via the external analyzer",
		ArgsUsage: "[analyzer args...]",
		Flags:     []cli.Flag{analyzerFlag},
		Action: func(c *cli.Context) error {
			return shellOut(c.String("analyzer"), append([]string{"compile"}, c.Args().Slice()...))
		},
	}
}

func shellOut(bin string, args []string) error {
	cmd := exec.Command(bin, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	return cmd.Run()
}

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "run a checker over a directory of trace files",
		ArgsUsage: "<checker>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db", Usage: "directory to explore for trace files", Value: "."},
			&cli.StringFlag{Name: "filename", Usage: "as-out prefix used to resolve original source filenames"},
			&cli.BoolFlag{Name: "skip-cache", Usage: "disable the per-file result cache"},
			&cli.BoolFlag{Name: "cache", Usage: "force-enable the per-file result cache, overriding config"},
			&cli.BoolFlag{Name: "parallel", Usage: "explore files concurrently"},
			&cli.BoolFlag{Name: "source", Usage: "include the resolved source line in each report"},
		},
		Action: checkAction,
	}
}

func checkAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("check requires exactly one checker name (missing or thread)", 1)
	}

	cfg, err := config.Load()
	if err != nil {
		return cli.Exit(err, 1)
	}
	dbg.Quiet(cfg.IgnoredLogLevels)

	chk, err := newChecker(c.Args().First(), cfg)
	if err != nil {
		return cli.Exit(err, 1)
	}

	skipCache := cfg.SkipCache
	if c.Bool("skip-cache") {
		skipCache = true
	}
	if c.Bool("cache") {
		skipCache = false
	}

	var resolveFor func(string) trace.Resolver
	if prefix := c.String("filename"); prefix != "" {
		resolveFor = trace.FilenameResolver(prefix)
	}

	exp := explorer.New(chk, resolveFor, skipCache)

	var reports []checker.Report
	if c.Bool("parallel") {
		reports, err = exp.ExploreParallel(c.String("db"))
	} else {
		reports, err = exp.Explore(c.String("db"))
	}
	if err != nil {
		return cli.Exit(err, 1)
	}

	printBugs(reports, cfg.Reference, c.Bool("source"))
	return nil
}

// printBugs prints the "POTENTIAL BUGS" banner and one line per report,
// mirroring original_source/analyzer/bin/main.py's print_bugs: silent
// when there's nothing to report, banner-then-reports otherwise.
func printBugs(reports []checker.Report, referenceCount int, withSource bool) {
	if len(reports) == 0 {
		return
	}
	fmt.Println(strings.Repeat("=", 30) + " POTENTIAL BUGS " + strings.Repeat("=", 30))
	for _, r := range reports {
		fmt.Println(report.Render(r.Score, r.Code, r.Key, r.Ctx, r.References, referenceCount, withSource))
	}
}

func newChecker(name string, cfg config.Config) (checker.Checker, error) {
	switch name {
	case "missing":
		return checker.NewMissingCheck(cfg.Threshold), nil
	case "thread":
		return checker.NewThreadSafety(cfg.Threshold), nil
	default:
		return nil, fmt.Errorf("unknown checker %q (expected missing or thread)", name)
	}
}
