package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config represents the main configuration for wordtrack.
type Config struct {
	RootFolderID string           `toml:"root_folder_id"`
	BaseDir      string           `toml:"base_dir"`
	LogDir       string           `toml:"log_dir"`
	LogLevel     string           `toml:"log_level"` // "debug", "info" (default), "warn" or "error"
	TimeZone     string           `toml:"time_zone"` // IANA name; empty means the local zone
	Google       GoogleConfig     `toml:"google"`
	Database     DatabaseConfig   `toml:"database"`
	Cache        CacheConfig      `toml:"cache"`
	Encryption   EncryptionConfig `toml:"encryption"`
	Sync         SyncConfig       `toml:"sync"`
}

// GoogleConfig holds the OAuth client secret and the cached user token.
type GoogleConfig struct {
	CredentialsPath string `toml:"credentials_path"`
	TokenPath       string `toml:"token_path"`
}

// EncryptionConfig holds paths to the age key pair used to encrypt cached text.
type EncryptionConfig struct {
	Type           string `toml:"type"` // "age" (default) or "test"
	PublicKeyPath  string `toml:"public_key_path"`
	PrivateKeyPath string `toml:"private_key_path"`
}

// SyncConfig holds tree traversal settings.
type SyncConfig struct {
	Ignore   []string `toml:"ignore"`
	Interval string   `toml:"interval"` // time.Duration string used by `wordtrack watch`
}

// CacheConfig represents configuration for the snapshot cache backend.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type CacheConfig struct {
	Type      string `toml:"type"` // "memory", "filesystem", "s3" or "bolt"
	Name      string `toml:"name"`
	Encrypted bool   `toml:"encrypted"`

	// S3-specific fields (only used when Type == "s3")
	S3Bucket   string `toml:"s3_bucket,omitempty"`
	S3Prefix   string `toml:"s3_prefix,omitempty"`
	S3Region   string `toml:"s3_region,omitempty"`
	S3Endpoint string `toml:"s3_endpoint,omitempty"`

	// FileSystem-specific fields (only used when Type == "filesystem")
	FSRoot string `toml:"fs_root,omitempty"`

	// Bolt-specific fields (only used when Type == "bolt")
	BoltPath string `toml:"bolt_path,omitempty"`
}

// DatabaseConfig represents configuration for the word count database.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type DatabaseConfig struct {
	Type    string `toml:"type"`               // "sqlite" or "memory"
	DataDir string `toml:"data_dir,omitempty"` // only used for type=sqlite
}

// DefaultSyncInterval is used by `wordtrack watch` when no interval is configured.
const DefaultSyncInterval = 30 * time.Minute

// NewConfig creates a new Config with default paths below baseDir.
func NewConfig(rootFolderID, baseDir string) *Config {
	return &Config{
		RootFolderID: rootFolderID,
		BaseDir:      baseDir,
		LogDir:       filepath.Join(baseDir, "log"),
		LogLevel:     "info",
		Google: GoogleConfig{
			CredentialsPath: filepath.Join(baseDir, "credentials.json"),
			TokenPath:       filepath.Join(baseDir, "token.json"),
		},
		Database: DatabaseConfig{
			Type:    "sqlite",
			DataDir: filepath.Join(baseDir, "db"),
		},
		Cache: CacheConfig{
			Type:   "filesystem",
			Name:   "local",
			FSRoot: filepath.Join(baseDir, "cache"),
		},
		Encryption: EncryptionConfig{
			PublicKeyPath:  filepath.Join(baseDir, "keys", "wordtrack.pub"),
			PrivateKeyPath: filepath.Join(baseDir, "keys", "wordtrack.key"),
		},
		Sync: SyncConfig{
			Interval: DefaultSyncInterval.String(),
		},
	}
}

// Location returns the configured time zone, or time.Local when unset.
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid time_zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// SyncInterval parses Sync.Interval, falling back to DefaultSyncInterval.
func (c *Config) SyncInterval() (time.Duration, error) {
	if c.Sync.Interval == "" {
		return DefaultSyncInterval, nil
	}
	d, err := time.ParseDuration(c.Sync.Interval)
	if err != nil {
		return 0, fmt.Errorf("invalid sync interval %q: %w", c.Sync.Interval, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("sync interval must be positive, got %s", d)
	}
	return d, nil
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}

// LoadEnv loads a .env file from dir into the process environment.
// Variables that are already set win over the file, and a missing file is
// not an error.
func LoadEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides config values with environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("WORDTRACK_ROOT_FOLDER_ID"); v != "" {
		c.RootFolderID = v
	}
	if v := getenv("WORDTRACK_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}
