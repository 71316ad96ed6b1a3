package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	return errors.Join(
		c.validateStore(),
		c.validateS3(),
		c.validateLogging(),
	)
}

func (c *Config) validateStore() error {
	switch c.Store.Backend {
	case BackendFS:
		if strings.TrimSpace(c.Store.Root) == "" {
			return errors.New("store.root must be set for the fs backend")
		}
	case BackendSQLite:
		if strings.TrimSpace(c.Store.SQLitePath) == "" {
			return errors.New("store.sqlite_path must be set for the sqlite backend")
		}
	case BackendS3, BackendMemory:
	default:
		return fmt.Errorf("store.backend: unsupported value %q (want fs, s3, sqlite or memory)", c.Store.Backend)
	}
	return nil
}

func (c *Config) validateS3() error {
	if c.Store.Backend != BackendS3 {
		return nil
	}
	var errs []error
	if c.S3.Bucket == "" {
		errs = append(errs, errors.New("s3.bucket must be set (or THERMBAT_BUCKET) for the s3 backend"))
	}
	if (c.S3.AccessKeyID == "") != (c.S3.SecretAccessKey == "") {
		errs = append(errs, errors.New("s3.access_key_id and s3.secret_access_key must be set together"))
	}
	return errors.Join(errs...)
}

func (c *Config) validateLogging() error {
	var errs []error
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "console", "json", "auto":
	default:
		errs = append(errs, fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format))
	}
	return errors.Join(errs...)
}
