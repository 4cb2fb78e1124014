package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/go-multisig/common/types"
	"github.com/spacemeshos/go-multisig/config"
	"github.com/spacemeshos/go-multisig/engine"
	"github.com/spacemeshos/go-multisig/filesystem"
	"github.com/spacemeshos/go-multisig/metrics"
	"github.com/spacemeshos/go-multisig/multisig"
	"github.com/spacemeshos/go-multisig/signing"
	"github.com/spacemeshos/go-multisig/sql"
)

const (
	lockFile   = "multisig.lock"
	metricsJob = "multisig"
)

// app holds state shared by all subcommands.
type app struct {
	// fs holds keys, definitions, proposals and signatures.
	// The database and its lock always live on the OS filesystem.
	fs     afero.Fs
	out    io.Writer
	logOut zapcore.WriteSyncer

	configPath string
	dataDir    string
	logEncoder string
	logLevel   string

	cfg    config.Config
	logger *zap.Logger

	lock   *flock.Flock
	db     *sql.Database
	engine *engine.Engine
	client *multisig.Client
}

func (a *app) addFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&a.configPath, "config", "c", "", "load configuration from file")
	flags.StringVarP(&a.dataDir, "data-dir", "d", a.cfg.DataDirParent, "directory with the accounts database")
	flags.StringVar(&a.logEncoder, "log-encoder", a.cfg.Logging.Encoder, "log encoder, console or json")
	flags.StringVar(&a.logLevel, "log-level", "", "overwrite log level of every module")
}

// setup loads configuration. Flags set on the command line take precedence over the file.
func (a *app) setup(cmd *cobra.Command) error {
	if err := config.LoadConfig(a.configPath, &a.cfg); err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		a.cfg.DataDirParent = a.dataDir
	}
	if flags.Changed("log-encoder") {
		a.cfg.Logging.Encoder = a.logEncoder
	}
	if a.logLevel != "" {
		a.cfg.Logging.SetLevel(a.logLevel)
	}
	types.SetAddressHRP(a.cfg.Address.NetworkHRP)

	logger, err := a.cfg.Logging.Logger(a.logOut, config.AppLogger)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// prefix separates signatures of different networks.
func (a *app) prefix() []byte {
	return []byte(a.cfg.Address.NetworkHRP)
}

func (a *app) namedLogger(module string) (*zap.Logger, error) {
	return a.cfg.Logging.Logger(a.logOut, module)
}

// open locks the data directory and opens the database.
func (a *app) open() error {
	dir := a.cfg.DataDir()
	if err := filesystem.ExistOrCreate(afero.NewOsFs(), dir); err != nil {
		return err
	}
	fl := flock.New(filepath.Join(dir, lockFile))
	locked, err := fl.TryLock()
	if err != nil {
		return fmt.Errorf("flock %s: %w", fl.Path(), err)
	} else if !locked {
		return fmt.Errorf("data directory %s is used by another process (locking file %s)", dir, fl.Path())
	}
	a.lock = fl

	dbLog, err := a.namedLogger(config.DatabaseLogger)
	if err != nil {
		return err
	}
	path := a.cfg.DatabasePath()
	db, err := sql.Open("file:"+path,
		sql.WithConnections(a.cfg.Database.Connections),
		sql.WithLatencyMetering(a.cfg.Database.LatencyMetrics),
		sql.WithLogger(dbLog),
	)
	if err != nil {
		return err
	}
	a.db = db

	engineLog, err := a.namedLogger(config.EngineLogger)
	if err != nil {
		return err
	}
	verifier, err := signing.NewEdVerifier(signing.WithVerifierPrefix(a.prefix()))
	if err != nil {
		return err
	}
	a.engine, err = engine.New(db,
		engine.WithLogger(engineLog),
		engine.WithConfig(a.cfg.Engine),
		engine.WithVerifier(verifier),
	)
	if err != nil {
		return err
	}
	clientLog, err := a.namedLogger(config.ClientLogger)
	if err != nil {
		return err
	}
	a.client, err = multisig.New(a.engine, a.engine,
		multisig.WithLogger(clientLog),
		multisig.WithVerifier(verifier),
	)
	if err != nil {
		return err
	}
	a.logger.Debug("opened database", zap.String("path", path))
	return nil
}

// close pushes metrics and releases everything acquired by open.
func (a *app) close(ctx context.Context) error {
	var errs []error
	if a.db != nil {
		if err := metrics.Push(ctx, a.logger, a.cfg.Metrics, metricsJob, a.cfg.Address.NetworkHRP); err != nil {
			errs = append(errs, err)
		}
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
		a.db = nil
	}
	if a.lock != nil {
		if err := a.lock.Unlock(); err != nil {
			errs = append(errs, fmt.Errorf("unlock %s: %w", a.lock.Path(), err))
		}
		a.lock = nil
	}
	return errors.Join(errs...)
}

// withEngine runs fn with an open database.
func (a *app) withEngine(ctx context.Context, fn func() error) (err error) {
	if err := a.open(); err != nil {
		return errors.Join(err, a.close(ctx))
	}
	defer func() {
		err = errors.Join(err, a.close(ctx))
	}()
	return fn()
}
