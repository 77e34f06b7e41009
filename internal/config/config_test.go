package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestManager_ReadWrite_RoundTrip(t *testing.T) {
	original := &Config{
		RootFolderID: "1AbCdEf",
		BaseDir:      "/home/user/.local/share/wordtrack",
		LogDir:       "/home/user/.local/share/wordtrack/log",
		LogLevel:     "debug",
		TimeZone:     "Europe/Berlin",
		Google: GoogleConfig{
			CredentialsPath: "/home/user/.local/share/wordtrack/credentials.json",
			TokenPath:       "/home/user/.local/share/wordtrack/token.json",
		},
		Cache: CacheConfig{Type: "s3", Name: "remote", S3Bucket: "snapshots", S3Region: "eu-west-1", Encrypted: true},
		Encryption: EncryptionConfig{
			PublicKeyPath:  "/home/user/.local/share/wordtrack/keys/wordtrack.pub",
			PrivateKeyPath: "/home/user/.local/share/wordtrack/keys/wordtrack.key",
		},
		Database: DatabaseConfig{Type: "sqlite", DataDir: "/home/user/.local/share/wordtrack/db"},
		Sync: SyncConfig{
			Ignore:   []string{"Archive", "Drafts/old*"},
			Interval: "15m",
		},
	}

	var buf bytes.Buffer
	m := &Manager{}

	if err := m.Write(&buf, original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.RootFolderID != original.RootFolderID {
		t.Errorf("RootFolderID = %q, want %q", got.RootFolderID, original.RootFolderID)
	}
	if got.BaseDir != original.BaseDir {
		t.Errorf("BaseDir = %q, want %q", got.BaseDir, original.BaseDir)
	}
	if got.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", got.LogLevel, "debug")
	}
	if got.TimeZone != "Europe/Berlin" {
		t.Errorf("TimeZone = %q, want %q", got.TimeZone, "Europe/Berlin")
	}
	if got.Google.TokenPath != original.Google.TokenPath {
		t.Errorf("Google.TokenPath = %q, want %q", got.Google.TokenPath, original.Google.TokenPath)
	}
	if got.Cache.Type != "s3" || got.Cache.S3Bucket != "snapshots" || !got.Cache.Encrypted {
		t.Errorf("Cache = %+v, want encrypted s3 cache in bucket snapshots", got.Cache)
	}
	if got.Encryption.PrivateKeyPath != original.Encryption.PrivateKeyPath {
		t.Errorf("Encryption.PrivateKeyPath = %q, want %q", got.Encryption.PrivateKeyPath, original.Encryption.PrivateKeyPath)
	}
	if got.Database.Type != "sqlite" {
		t.Errorf("Database.Type = %q, want %q", got.Database.Type, "sqlite")
	}
	if len(got.Sync.Ignore) != 2 {
		t.Fatalf("len(Sync.Ignore) = %d, want 2", len(got.Sync.Ignore))
	}
	if got.Sync.Interval != "15m" {
		t.Errorf("Sync.Interval = %q, want %q", got.Sync.Interval, "15m")
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("folder-1", "/data/wordtrack")

	if cfg.RootFolderID != "folder-1" {
		t.Errorf("RootFolderID = %q, want %q", cfg.RootFolderID, "folder-1")
	}
	if cfg.LogDir != "/data/wordtrack/log" {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, "/data/wordtrack/log")
	}
	if cfg.Google.CredentialsPath != "/data/wordtrack/credentials.json" {
		t.Errorf("Google.CredentialsPath = %q, want %q", cfg.Google.CredentialsPath, "/data/wordtrack/credentials.json")
	}
	if cfg.Database.DataDir != "/data/wordtrack/db" {
		t.Errorf("Database.DataDir = %q, want %q", cfg.Database.DataDir, "/data/wordtrack/db")
	}
	if cfg.Cache.Type != "filesystem" || cfg.Cache.FSRoot != "/data/wordtrack/cache" {
		t.Errorf("Cache = %+v, want filesystem cache at /data/wordtrack/cache", cfg.Cache)
	}
	if cfg.Encryption.PublicKeyPath != "/data/wordtrack/keys/wordtrack.pub" {
		t.Errorf("Encryption.PublicKeyPath = %q, want %q", cfg.Encryption.PublicKeyPath, "/data/wordtrack/keys/wordtrack.pub")
	}
}

func TestConfig_Location(t *testing.T) {
	tests := []struct {
		name    string
		zone    string
		want    string
		wantErr bool
	}{
		{name: "empty uses local", zone: "", want: time.Local.String()},
		{name: "utc", zone: "UTC", want: "UTC"},
		{name: "invalid", zone: "Not/AZone", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{TimeZone: tt.zone}
			got, err := cfg.Location()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Location() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got.String() != tt.want {
				t.Errorf("Location() = %q, want %q", got.String(), tt.want)
			}
		})
	}
}

func TestConfig_SyncInterval(t *testing.T) {
	tests := []struct {
		name     string
		interval string
		want     time.Duration
		wantErr  bool
	}{
		{name: "default", interval: "", want: DefaultSyncInterval},
		{name: "parsed", interval: "1h30m", want: 90 * time.Minute},
		{name: "garbage", interval: "soon", wantErr: true},
		{name: "zero", interval: "0s", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Sync: SyncConfig{Interval: tt.interval}}
			got, err := cfg.SyncInterval()
			if (err != nil) != tt.wantErr {
				t.Fatalf("SyncInterval() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("SyncInterval() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	env := map[string]string{
		"WORDTRACK_ROOT_FOLDER_ID": "from-env",
	}
	cfg := NewConfig("from-file", "/data")
	cfg.ApplyEnv(func(k string) string { return env[k] })

	if cfg.RootFolderID != "from-env" {
		t.Errorf("RootFolderID = %q, want %q", cfg.RootFolderID, "from-env")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want unchanged %q", cfg.LogLevel, "info")
	}
}

func TestLoadEnv(t *testing.T) {
	t.Run("missing file is not an error", func(t *testing.T) {
		if err := LoadEnv(t.TempDir()); err != nil {
			t.Errorf("LoadEnv() error = %v", err)
		}
	})

	t.Run("loads variables", func(t *testing.T) {
		const key = "WORDTRACK_LOADENV_TEST"
		t.Cleanup(func() { os.Unsetenv(key) })

		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(key+"=abc\n"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := LoadEnv(dir); err != nil {
			t.Fatalf("LoadEnv() error = %v", err)
		}
		if got := os.Getenv(key); got != "abc" {
			t.Errorf("%s = %q, want %q", key, got, "abc")
		}
	})
}

func TestInit(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "wordtrack.toml")
		cfg := NewConfig("f1", dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		if _, err := os.Stat(path); err != nil {
			t.Fatalf("config file not created: %v", err)
		}
	})

	t.Run("fails if file already exists", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "wordtrack.toml")
		cfg := NewConfig("f1", dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("first Init() error = %v", err)
		}

		err := Init(path, cfg)
		if err == nil {
			t.Fatal("second Init() expected error")
		}
	})
}

func TestReadFromFile(t *testing.T) {
	t.Run("reads valid config", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "wordtrack.toml")
		cfg := NewConfig("read-test", dir)
		cfg.Database = DatabaseConfig{Type: "memory"}

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		got, err := ReadFromFile(path)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if got.RootFolderID != "read-test" {
			t.Errorf("RootFolderID = %q, want %q", got.RootFolderID, "read-test")
		}
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		_, err := ReadFromFile("/nonexistent/path/wordtrack.toml")
		if err == nil {
			t.Fatal("ReadFromFile() expected error for missing file")
		}
	})
}
