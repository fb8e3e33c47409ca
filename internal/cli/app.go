package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/rustyeddy/coinfolio/coingecko"
	"github.com/rustyeddy/coinfolio/config"
	"github.com/rustyeddy/coinfolio/ledger"
	"github.com/rustyeddy/coinfolio/pkg/id"
	"github.com/rustyeddy/coinfolio/report"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// RootConfig holds the global flags and what setup derives from them. It
// lives for exactly one command invocation.
type RootConfig struct {
	ConfigPath string
	DBPath     string
	LogLevel   string
	NoColor    bool
	Format     string

	Config *config.Config
	Log    *logrus.Entry
}

// setup loads configuration, applies flag overrides and builds the logger.
func (rc *RootConfig) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(rc.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if rc.DBPath != "" {
		cfg.Ledger.DBPath = rc.DBPath
	}
	if rc.LogLevel != "" {
		cfg.Log.Level = rc.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := report.ParseFormat(rc.Format); err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log, rc.NoColor, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	rc.Config = cfg
	rc.Log = logger.WithFields(logrus.Fields{
		"session": id.NewSession(),
		"command": cmd.Name(),
	})
	rc.Log.WithField("db", cfg.Ledger.DBPath).Debug("configured")
	return nil
}

func newLogger(cfg config.LogConfig, noColor bool, w io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(w)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: noColor})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	logger.SetLevel(level)
	return logger, nil
}

// openLedger opens the store for this invocation. The returned func closes it.
func (rc *RootConfig) openLedger() (*ledger.Ledger, func(), error) {
	path := rc.Config.Ledger.DBPath
	store, err := ledger.NewSQLite(path)
	if err != nil {
		return nil, nil, err
	}

	log := rc.Log.WithField("db", path)
	log.Debug("opened ledger")
	closeFn := func() {
		if err := store.Close(); err != nil {
			log.WithError(err).Warn("close ledger")
		}
	}
	return ledger.New(store, log), closeFn, nil
}

func (rc *RootConfig) priceClient() (*coingecko.Client, error) {
	p := rc.Config.Prices
	timeout, err := p.ParseTimeout()
	if err != nil {
		return nil, fmt.Errorf("prices.timeout: %w", err)
	}

	opts := []coingecko.Option{coingecko.WithLogger(rc.Log)}
	if timeout > 0 {
		opts = append(opts, coingecko.WithTimeout(timeout))
	}
	if p.BaseURL != "" {
		opts = append(opts, coingecko.WithBaseURL(p.BaseURL))
	}
	return coingecko.NewClient(p.APIKey, p.Pro, opts...), nil
}

// currency picks the quote currency: the flag when set, else the config.
func (rc *RootConfig) currency(flag string) string {
	if flag == "" {
		flag = rc.Config.Prices.Currency
	}
	return strings.ToLower(flag)
}

// print renders md and writes it to the command's output.
func (rc *RootConfig) print(cmd *cobra.Command, md string) error {
	format, err := report.ParseFormat(rc.Format)
	if err != nil {
		return err
	}
	r, err := report.NewRenderer(format, rc.NoColor, 100)
	if err != nil {
		return err
	}
	out, err := r.Render(md)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}
