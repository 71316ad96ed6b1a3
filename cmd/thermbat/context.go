package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/ukaji3/thermbat-go/internal/config"
	"github.com/ukaji3/thermbat-go/internal/logging"
	"github.com/ukaji3/thermbat-go/pkg/thermbat/store"
	"github.com/ukaji3/thermbat-go/pkg/thermbat/store/fsstore"
	"github.com/ukaji3/thermbat-go/pkg/thermbat/store/memstore"
	"github.com/ukaji3/thermbat-go/pkg/thermbat/store/s3store"
	"github.com/ukaji3/thermbat-go/pkg/thermbat/store/sqlitestore"
	"github.com/ukaji3/thermbat-go/pkg/thermbat/workflow"
)

type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag, logFormatFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) logger(cmd *cobra.Command) (*slog.Logger, error) {
	opts := logging.Options{Writer: cmd.ErrOrStderr()}
	if cfg, _ := c.ensureConfig(); cfg != nil {
		opts.Level = cfg.Logging.Level
		opts.Format = cfg.Logging.Format
	}
	if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
		opts.Level = *c.logLevelFlag
	}
	if c.logFormatFlag != nil && strings.TrimSpace(*c.logFormatFlag) != "" {
		opts.Format = *c.logFormatFlag
	}
	return logging.New(opts)
}

// withService opens the configured store and runs fn with a request-scoped
// context and workflow service.
func (c *commandContext) withService(cmd *cobra.Command, fn func(context.Context, *workflow.Service) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.logger(cmd)
	if err != nil {
		return err
	}
	ctx := logging.NewRequestContext(cmd.Context())

	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	logging.WithContext(ctx, logger).Debug("store opened",
		logging.FieldComponent, "cli",
		"backend", cfg.Store.Backend,
		"command", cmd.Name(),
	)
	return fn(ctx, workflow.NewService(st, workflow.WithLogger(logger)))
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Store.Backend {
	case config.BackendFS:
		st, err := fsstore.Open(cfg.Store.Root)
		if err != nil {
			return nil, nil, err
		}
		return st, noop, nil
	case config.BackendSQLite:
		st, err := sqlitestore.Open(cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return st, st.Close, nil
	case config.BackendS3:
		st, err := s3store.New(ctx, s3store.Config{
			Bucket:          cfg.S3.Bucket,
			Prefix:          cfg.S3.Prefix,
			Region:          cfg.S3.Region,
			Profile:         cfg.S3.Profile,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
		})
		if err != nil {
			return nil, nil, err
		}
		return st, noop, nil
	case config.BackendMemory:
		return memstore.New(), noop, nil
	}
	return nil, nil, fmt.Errorf("unsupported store backend %q", cfg.Store.Backend)
}
