package cache

import (
	"context"
	"fmt"
	"os"

	"wordtrack/internal/config"
	"wordtrack/internal/wt"
)

// NewCacheFromConfig creates a SnapshotCache implementation based on the cache config type.
// S3 credentials are read from WORDTRACK_S3_ACCESS_KEY_ID and
// WORDTRACK_S3_SECRET_ACCESS_KEY when set. Encryption is applied by the caller.
func NewCacheFromConfig(cfg config.CacheConfig) (wt.SnapshotCache, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryCache(cfg.Name), nil
	case "filesystem":
		if cfg.FSRoot == "" {
			return nil, fmt.Errorf("filesystem cache requires fs_root to be set")
		}
		c, err := NewFileSystemCache(cfg.Name, cfg.FSRoot)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "bolt":
		if cfg.BoltPath == "" {
			return nil, fmt.Errorf("bolt cache requires bolt_path to be set")
		}
		c, err := NewBoltCache(cfg.Name, cfg.BoltPath)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "s3":
		client, err := NewS3Client(context.Background(), S3Options{
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     os.Getenv("WORDTRACK_S3_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("WORDTRACK_S3_SECRET_ACCESS_KEY"),
		})
		if err != nil {
			return nil, err
		}
		c, err := NewS3Cache(cfg.Name, cfg.S3Bucket, cfg.S3Prefix, client)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown cache type: %s", cfg.Type)
	}
}
