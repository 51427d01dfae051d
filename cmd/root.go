package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/masmgr/commitlog/config"
	"github.com/masmgr/commitlog/internal/cache"
	"github.com/masmgr/commitlog/internal/git"
	"github.com/masmgr/commitlog/internal/output"
	"github.com/urfave/cli/v2"
)

// Deps replaces collaborators that are otherwise built from configuration.
// The zero value runs real git processes and opens the configured cache.
type Deps struct {
	Runner git.Runner  // nil: git.ExecRunner with the configured timeout
	Store  cache.Store // nil: opened from the cache section; not closed when set
}

// App creates the CLI application.
func App() *cli.App {
	return NewApp(Deps{})
}

// NewApp creates the CLI application with the given collaborators.
func NewApp(deps Deps) *cli.App {
	return &cli.App{
		Name:    "commitlog",
		Usage:   "Read, page, search and cache commit history of local git clones",
		Version: "1.0.0",
		Commands: []*cli.Command{
			GetBranchesCmd(deps),
			GetCommitsCmd(deps),
			GetCommitCmd(deps),
			SearchCommitsCmd(deps),
			ConcurrentSearchCommitsCmd(deps),
			WriteCacheCmd(deps),
			ReadCacheCmd(deps),
			DiffCacheCmd(deps),
			ReplayLogCmd(),
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file (.json, .yaml or .toml)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (trace, debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Log encoding (json, text)",
			},
		},
	}
}

// Common flags shared across repository commands
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "repo",
			Aliases:  []string{"r"},
			Usage:    "Repository name (resolved under git.reposRoot) or absolute path",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (console, json, csv, markdown, ci)",
			Value:   "console",
		},
		&cli.IntFlag{
			Name:    "top",
			Aliases: []string{"n"},
			Usage:   "Number of results to show (0 for all)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
	}
}

func branchFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "branch",
		Aliases: []string{"b"},
		Usage:   "Remote branch name (default: master, then trunk, then the first branch)",
	}
}

func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "author", Usage: "Match commits whose author matches this pattern"},
		&cli.StringFlag{Name: "committer", Usage: "Match commits whose committer matches this pattern"},
		&cli.StringFlag{Name: "description", Usage: "Match commits whose message matches this pattern"},
	}
}

// getOutputFormat parses the output format flag.
func getOutputFormat(s string) output.OutputFormat {
	switch s {
	case "json":
		return output.FormatJSON
	case "csv":
		return output.FormatCSV
	case "markdown", "md":
		return output.FormatMarkdown
	case "ci", "ndjson":
		return output.FormatCI
	default:
		return output.FormatConsole
	}
}

// loadConfig loads configuration from file or defaults and applies global flag overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if level := c.String("log-level"); level != "" {
		cfg.Log.Level = level
	}
	if format := c.String("log-format"); format != "" {
		cfg.Log.Format = format
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func stdout(c *cli.Context) io.Writer {
	if c.App.Writer != nil {
		return c.App.Writer
	}
	return os.Stdout
}

func stderr(c *cli.Context) io.Writer {
	if c.App.ErrWriter != nil {
		return c.App.ErrWriter
	}
	return os.Stderr
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
