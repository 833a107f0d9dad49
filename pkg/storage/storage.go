package storage

import (
	"fmt"
	"strings"
	"time"
)

// Config holds the S3 connection and layout settings.
type Config struct {
	// Bucket is the target bucket (required).
	Bucket string
	// AccessKey and SecretKey are static credentials (required).
	AccessKey string
	SecretKey string
	// Endpoint overrides the AWS endpoint, e.g. for MinIO.
	Endpoint string
	// Region defaults to us-east-1.
	Region string
	// PathStyle enables path-style addressing (required for MinIO).
	PathStyle bool
	// Prefix is prepended to every object key. Defaults to "catalogs".
	Prefix string
	// KeepHistory uploads an immutable copy of every commit as well.
	KeepHistory bool
	// Timeout bounds each Commit. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// Defaults.
const (
	DefaultRegion = "us-east-1"
	DefaultPrefix = "catalogs"
	ContentType   = "application/json"

	DefaultTimeout = 30 * time.Second
)

func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.Prefix == "" {
		c.Prefix = DefaultPrefix
	}
	c.Prefix = strings.Trim(c.Prefix, "/")
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}

func (c *Config) validate() error {
	var missing []string
	if c.Bucket == "" {
		missing = append(missing, "bucket")
	}
	if c.AccessKey == "" {
		missing = append(missing, "access key")
	}
	if c.SecretKey == "" {
		missing = append(missing, "secret key")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidConfig, strings.Join(missing, ", "))
	}
	return nil
}

// Snapshot describes the objects written for one commit.
type Snapshot struct {
	Latest  string
	History string // empty unless KeepHistory is set
	Size    int64
}
