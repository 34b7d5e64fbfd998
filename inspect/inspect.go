// Package inspect implements "parse" command: selector text in, chosen
// representation out.
package inspect

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"cssel/config"
	"cssel/css"
	"cssel/css/serialize"
	"cssel/state"
)

// Run parses every command argument as a selector group and prints it.
func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("parse")

	if cmd.Args().Len() == 0 {
		return errors.New("no selectors have been specified")
	}

	format := config.OutputFormatDebug
	if env.Cfg != nil {
		format = env.Cfg.Output.Format
	}
	if name := cmd.String("format"); len(name) > 0 {
		var err error
		if format, err = config.ParseOutputFormat(name); err != nil {
			return fmt.Errorf("unable to use requested output format: %w", err)
		}
	}

	out := cmd.Root().Writer
	if out == nil {
		out = os.Stdout
	}

	parser := env.NewParser(cmd.Bool("strict"))

	var errs error
	for i, text := range cmd.Args().Slice() {
		if err := ctx.Err(); err != nil {
			return err
		}
		g, err := parser.Parse(text)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("selector %d (%q): %w", i+1, text, err))
			continue
		}
		for _, w := range parser.Warnings() {
			log.Warn("Questionable selector", zap.String("selector", text), zap.String("warning", w))
		}
		if err := Write(out, g, format); err != nil {
			return err
		}
		log.Debug("Selector processed", zap.String("selector", text), zap.Int("alternatives", g.Len()), zap.Int("simple", countSimple(g)))
	}
	return errs
}

// Write prints group in requested format followed by new line.
func Write(w io.Writer, g *css.Group, format config.OutputFormat) error {
	var (
		text string
		err  error
	)
	switch format {
	case config.OutputFormatDebug:
		text = g.String() + "\n"
	case config.OutputFormatCss:
		text, err = serialize.String(g)
		text += "\n"
	case config.OutputFormatTree:
		text, err = serialize.Dump(g)
	case config.OutputFormatYaml:
		var data []byte
		data, err = serialize.Marshal(g)
		text = string(data)
	default:
		return fmt.Errorf("unsupported output format %s", format)
	}
	if err != nil {
		return fmt.Errorf("unable to serialize selector: %w", err)
	}
	if _, err := io.WriteString(w, text); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}
	return nil
}

func countSimple(g *css.Group) int {
	var n int
	for _, sel := range g.All() {
		css.Walk(sel, func(*css.Simple) bool {
			n++
			return true
		})
	}
	return n
}
