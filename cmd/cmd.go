package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/rubiojr/cppgen/config"
	"github.com/rubiojr/cppgen/cpp"
	"github.com/rubiojr/cppgen/gen"
)

// Execute runs the cppgen CLI with the given version string.
func Execute(version string) {
	cmd := &cli.Command{
		Name:                   "cppgen",
		Usage:                  "Generate C++ header/source pairs from a JSON codefile config",
		Version:                version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:    "no-color",
				Aliases: []string{"C"},
				Usage:   "Disable ANSI color output",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			setupLogging(cmd)
			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:      "gen",
				Usage:     "Generate files from a codefile config",
				ArgsUsage: "<config.json>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Directory to write generated files to",
						Value:   ".",
					},
					&cli.BoolFlag{
						Name:  "check",
						Usage: "Verify files on disk match instead of writing",
					},
					&cli.StringFlag{
						Name:  "indent",
						Usage: "Indentation style: tab, or a space count (2, 4, ...)",
						Value: "tab",
					},
				},
				Action: genAction,
			},
			{
				Name:      "emit",
				Usage:     "Print generated text to stdout",
				ArgsUsage: "<config.json>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "source",
						Usage: "Print the source surface instead of the header",
					},
					&cli.StringFlag{
						Name:  "indent",
						Usage: "Indentation style: tab, or a space count (2, 4, ...)",
						Value: "tab",
					},
				},
				Action: emitAction,
			},
			{
				Name:      "check",
				Usage:     "Validate a codefile config without generating anything",
				ArgsUsage: "<config.json>",
				Action:    checkAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging configures logrus: debug level with --verbose, colors
// only when stderr is a terminal and color wasn't disabled.
func setupLogging(cmd *cli.Command) {
	if cmd.Bool("verbose") {
		logrus.SetLevel(logrus.DebugLevel)
	}
	noColor := cmd.Bool("no-color") || os.Getenv("NO_COLOR") != "" ||
		!term.IsTerminal(int(os.Stderr.Fd()))
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableColors: noColor,
	})
}

// parseStyle maps the --indent flag to a cpp.Style.
func parseStyle(s string) (cpp.Style, error) {
	if s == "" || s == "tab" {
		return cpp.TabStyle{}, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return nil, fmt.Errorf("invalid indent %q: want tab or a positive space count", s)
	}
	return cpp.SpaceStyle{Width: n}, nil
}

func genAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: cppgen gen [-o dir] [--check] <config.json>")
	}
	style, err := parseStyle(cmd.String("indent"))
	if err != nil {
		return err
	}
	cfg, err := config.Load(cmd.Args().First())
	if err != nil {
		return err
	}
	g := &gen.Generator{Style: style}
	fs, err := g.Generate(cfg)
	if err != nil {
		return err
	}
	outDir := cmd.String("output")
	if cmd.Bool("check") {
		if err := fs.Verify(ctx, outDir); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "%d files up to date\n", fs.Len())
		return nil
	}
	if err := fs.Write(ctx, outDir); err != nil {
		return err
	}
	for _, p := range fs.Paths() {
		logrus.WithField("file", p).Debug("wrote")
	}
	fmt.Fprintf(os.Stderr, "wrote %d files to %s\n", fs.Len(), outDir)
	return nil
}

func emitAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: cppgen emit [--source] <config.json>")
	}
	style, err := parseStyle(cmd.String("indent"))
	if err != nil {
		return err
	}
	cfg, err := config.Load(cmd.Args().First())
	if err != nil {
		return err
	}
	g := &gen.Generator{Style: style}
	for i := range cfg.Codefiles {
		cf := &cfg.Codefiles[i]
		header, source, err := g.Render(cf)
		if err != nil {
			return err
		}
		if cmd.Bool("source") {
			fmt.Print(source)
		} else {
			fmt.Print(header)
		}
	}
	return nil
}

func checkAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: cppgen check <config.json>")
	}
	cfg, err := config.Load(cmd.Args().First())
	if err != nil {
		return err
	}
	for i := range cfg.Codefiles {
		if _, err := cfg.Codefiles[i].Build(); err != nil {
			return err
		}
	}
	fmt.Fprintf(os.Stderr, "%d codefiles OK\n", len(cfg.Codefiles))
	return nil
}
