/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package processor

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog/log"

	"github.com/suparena/texfigure"
	"github.com/suparena/texfigure/config"
	"github.com/suparena/texfigure/datastore"
	"github.com/suparena/texfigure/datastore/ddb"
	"github.com/suparena/texfigure/datastore/filestore"
	"github.com/suparena/texfigure/errors"
	"github.com/suparena/texfigure/logger"
	"github.com/suparena/texfigure/storagemodels"
)

var (
	configFlag = flag.String("config", "", "Path to the texfigure YAML config")
	baseFlag   = flag.String("base", "", "Base directory, overrides the config")
)

// Options are the global command line settings.
type Options struct {
	ConfigPath string
	BaseDir    string
	// EnvFiles replaces the default ".env" lookup when set.
	EnvFiles []string
}

// Main runs the tool with the process arguments and exits on failure.
func Main() {
	if !flag.Parsed() {
		flag.Parse()
	}
	opts := Options{ConfigPath: *configFlag, BaseDir: *baseFlag}
	if err := Run(context.Background(), opts, flag.Args(), os.Stdout); err != nil {
		log.Error().Err(err).Msg("texfigure failed")
		fmt.Fprintln(os.Stderr, "texfigure:", err)
		os.Exit(1)
	}
}

// Run executes one command. Output meant for the user goes to out.
func Run(ctx context.Context, opts Options, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.NewValidationError("command", "missing command (init, list, show, multi, deps, sync)")
	}

	cfg, err := config.Load(opts.ConfigPath, opts.EnvFiles...)
	if err != nil {
		return err
	}
	if opts.BaseDir != "" {
		cfg.BaseDir = opts.BaseDir
	}

	closeLog, err := logger.Init(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	cmd, rest := args[0], args[1:]
	log.Debug().Str("command", cmd).Strs("args", rest).Str("base", cfg.BaseDir).Msg("running")

	switch cmd {
	case "init":
		return runInit(ctx, cfg, out)
	case "list":
		return runList(ctx, cfg, out)
	case "show":
		return runShow(ctx, cfg, rest, out)
	case "multi":
		return runMulti(ctx, cfg, rest, out)
	case "deps":
		return runDeps(cfg, out)
	case "sync":
		return runSync(ctx, cfg, out)
	default:
		return errors.NewValidationError("command", fmt.Sprintf("unknown command %q", cmd))
	}
}

// Document returns the configured document name, defaulting to the chapter.
func Document(cfg *config.Config) string {
	if cfg.Document != "" {
		return cfg.Document
	}
	return texfigure.ChapterName(cfg.Chapter)
}

func resolve(cfg *config.Config, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(cfg.BaseDir, path)
}

// Manifest returns the YAML record store configured by cfg.
func Manifest(cfg *config.Config) *filestore.Store {
	return filestore.New(resolve(cfg, cfg.Manifest), Document(cfg))
}

// DynamoDB returns the DynamoDB record store configured by cfg.
func DynamoDB(ctx context.Context, cfg *config.Config) (*ddb.DynamodbDataStore[storagemodels.FigureRecord], error) {
	d := cfg.DynamoDB
	return ddb.NewDynamodbDataStore[storagemodels.FigureRecord](ctx, d.AccessKey, d.SecretKey, d.Region, d.Table, Document(cfg))
}

func dirOption(name string, with func(string) texfigure.Option, without func() texfigure.Option) texfigure.Option {
	if name == "" {
		return without()
	}
	return with(name)
}

// NewManager builds a Manager from cfg. It publishes to the manifest and,
// when a table is configured, to DynamoDB.
func NewManager(ctx context.Context, cfg *config.Config, tracker texfigure.Tracker, extra ...texfigure.Option) (*texfigure.Manager, error) {
	opts := []texfigure.Option{
		texfigure.WithNumber(cfg.Chapter),
		texfigure.WithDocument(Document(cfg)),
		texfigure.WithDefaultExt(cfg.DefaultExt),
		texfigure.WithTextWidth(cfg.TextWidth),
		texfigure.WithLogger(logger.Component("manager")),
		dirOption(cfg.Dirs.Figs, texfigure.WithFigDir, texfigure.WithoutFigDir),
		dirOption(cfg.Dirs.Data, texfigure.WithDataDir, texfigure.WithoutDataDir),
		dirOption(cfg.Dirs.Code, texfigure.WithCodeDir, texfigure.WithoutCodeDir),
		texfigure.WithRecordStore("manifest", Manifest(cfg)),
	}
	if cfg.DynamoDB.Enabled() {
		store, err := DynamoDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		opts = append(opts, texfigure.WithRecordStore("dynamodb", store))
	}
	return texfigure.NewManager(tracker, cfg.BaseDir, append(opts, extra...)...)
}

func runInit(ctx context.Context, cfg *config.Config, out io.Writer) error {
	m, err := NewManager(ctx, cfg, nil)
	if err != nil {
		return err
	}
	for _, dir := range []string{m.BaseDir(), m.FigDir(), m.DataDir(), m.CodeDir()} {
		if dir != "" {
			fmt.Fprintln(out, dir)
		}
	}
	return nil
}

func runList(ctx context.Context, cfg *config.Config, out io.Writer) error {
	records, err := Manifest(cfg).List(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, rec := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", rec.Number, rec.Key, strings.Join(rec.FileNames, ","))
	}
	return tw.Flush()
}

func figureFor(ctx context.Context, store datastore.DataStore[storagemodels.FigureRecord], key string) (*texfigure.Figure, error) {
	rec, err := store.GetOne(ctx, key)
	if err != nil {
		return nil, err
	}
	return texfigure.FigureFromRecord(*rec)
}

func runShow(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	if len(args) != 1 {
		return errors.NewValidationError("show", "usage: show <key>")
	}
	fig, err := figureFor(ctx, Manifest(cfg), args[0])
	if err != nil {
		return err
	}
	tex, err := fig.LaTeX()
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, tex)
	return err
}

func runMulti(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("multi", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	rows := fs.Int("rows", 1, "Number of grid rows")
	cols := fs.Int("cols", 0, "Number of grid columns, defaults to the number of keys")
	ref := fs.String("ref", "", "Reference of the composite figure")
	if err := fs.Parse(args); err != nil {
		return errors.NewValidationError("multi", err.Error())
	}
	keys := fs.Args()
	if len(keys) == 0 {
		return errors.NewValidationError("multi", "usage: multi -rows r -cols c -ref name key...")
	}
	if *cols == 0 {
		*cols = (len(keys) + *rows - 1) / *rows
	}

	store := Manifest(cfg)
	figs := make([]*texfigure.Figure, 0, len(keys))
	for _, k := range keys {
		fig, err := figureFor(ctx, store, k)
		if err != nil {
			return err
		}
		figs = append(figs, fig)
	}

	mf, err := texfigure.MultiFigureOf(*rows, *cols, *ref, figs...)
	if err != nil {
		return err
	}
	tex, err := mf.LaTeX()
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, tex)
	return err
}

func runDeps(cfg *config.Config, out io.Writer) error {
	list, err := texfigure.LoadDependencyList(resolve(cfg, cfg.DependencyFile))
	if err != nil {
		return err
	}
	for _, f := range list.Dependencies {
		fmt.Fprintf(out, "dependency\t%s\n", f)
	}
	for _, f := range list.Created {
		fmt.Fprintf(out, "created\t%s\n", f)
	}
	return nil
}

func runSync(ctx context.Context, cfg *config.Config, out io.Writer) error {
	if !cfg.DynamoDB.Enabled() {
		return errors.NewValidationError("dynamodb.table", "no DynamoDB table configured")
	}
	remote, err := DynamoDB(ctx, cfg)
	if err != nil {
		return err
	}
	return Sync(ctx, Manifest(cfg), remote, out)
}

// Sync copies every record of src to dst.
func Sync(ctx context.Context, src, dst datastore.DataStore[storagemodels.FigureRecord], out io.Writer) error {
	records, err := src.List(ctx)
	if err != nil {
		return err
	}
	for _, rec := range records {
		if err := dst.Put(ctx, rec); err != nil {
			return fmt.Errorf("sync %s: %w", rec.ID(), err)
		}
		fmt.Fprintf(out, "synced %s\n", rec.ID())
	}
	log.Info().Int("records", len(records)).Msg("sync complete")
	return nil
}
