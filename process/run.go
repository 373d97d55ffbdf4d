// Package process implements the main command: it checks input, loads the
// document, normalizes it and saves the result.
package process

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"docxfix/docx"
	"docxfix/normalize"
	"docxfix/state"
)

func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("process")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input file has been specified")
	}
	dst := cmd.Args().Get(1)
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	defer func(start time.Time) {
		log.Debug("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, log)
}

// process handles single document independently of CLI framework.
func process(ctx context.Context, src, dst string, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	log.Info("Loading", zap.String("file", src))

	fi, err := os.Stat(src)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("input file '%s' not found", src)
		}
		return fmt.Errorf("unable to access input file: %w", err)
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("input is not a regular file (%s)", src)
	}

	ok, err := isDocxFile(src)
	if err != nil {
		return fmt.Errorf("unable to check file type: %w", err)
	}
	if !ok {
		return fmt.Errorf("input was not recognized as docx document (%s)", src)
	}

	if env.Debug() {
		if err := env.Rpt.StoreCopy("source"+filepath.Ext(src), src); err != nil {
			log.Warn("Unable to store input in the report", zap.Error(err))
		}
	}

	pkg, err := docx.Open(src)
	if err != nil {
		return fmt.Errorf("unable to load document: %w", err)
	}
	doc := pkg.Document()

	stats := doc.Stats()
	log.Info("Document loaded", zap.String("part", pkg.MainPartName()),
		zap.Int("paragraphs", stats.Paragraphs), zap.Int("tables", stats.Tables))
	log.Debug("Package parts", zap.Strings("parts", pkg.PartNames()))
	if env.Debug() {
		env.Rpt.StoreData("outline-before.txt", []byte(doc.Outline()))
	}

	rpt, err := normalize.New(normalize.FromConfig(&env.Cfg.Normalize), log).Apply(ctx, doc)
	if err != nil {
		return fmt.Errorf("unable to normalize document: %w", err)
	}

	out := buildOutputPath(src, dst, &env.Cfg.Output)
	log.Info("Saving", zap.String("file", out))
	if err := pkg.Save(out, env.Cfg.Output.FixZip); err != nil {
		return fmt.Errorf("unable to save document: %w", err)
	}
	log.Info("Done", rpt.Fields()...)

	log.Info("Final document stats",
		zap.Int("paragraphs", rpt.After.Paragraphs),
		zap.Int("tables", rpt.After.Tables),
		zap.Int("sections", rpt.After.Sections))

	if env.Debug() {
		env.Rpt.StoreData("outline-after.txt", []byte(doc.Outline()))
		env.Rpt.Store("result"+filepath.Ext(out), out)
	}
	return nil
}
