package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wordtrack/internal/app"
	"wordtrack/internal/config"
	"wordtrack/internal/encryption"
	"wordtrack/internal/gdrive"
	"wordtrack/internal/wt"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates a WTApp for read-only commands.
// The caller must defer app.Close().
func newApp(operation string) (*app.WTApp, error) {
	cfg, _, err := app.LoadConfig()
	if err != nil {
		return nil, err
	}

	a, err := app.NewWTApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

// newSyncApp is newApp for commands that talk to Google Drive.
func newSyncApp(ctx context.Context, operation string) (*app.WTApp, *config.Config, error) {
	cfg, _, err := app.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	a, err := app.NewSyncApp(ctx, cfg, operation, encryption.NewPassphraseReader())
	if err != nil {
		if gdrive.IsAuthRequiredError(err) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, cfg, nil
}

var rootCmd = &cobra.Command{
	Use:           "wordtrack",
	Short:         "Track daily word counts of a Google Drive writing folder",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init [ROOT_FOLDER_ID]",
	Short: "Initialize configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		rootFolderID := ""
		if len(args) > 0 {
			rootFolderID = args[0]
		}

		cfg := config.NewConfig(rootFolderID, defaults["base_dir"])
		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		if err := app.MigrateDatabase(cfg); err != nil {
			return err
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		if rootFolderID == "" {
			fmt.Println("No root folder set: edit root_folder_id or set WORDTRACK_ROOT_FOLDER_ID.")
		}
		fmt.Printf("Put your OAuth client secret at %s, then run `wordtrack auth login`.\n", cfg.Google.CredentialsPath)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := app.LoadConfig()
		if err != nil {
			return err
		}

		fmt.Printf("Configuration from %s:\n\n", path)
		fmt.Printf("Root Folder: %s\n", cfg.RootFolderID)
		fmt.Printf("Base Dir:    %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:     %s\n", cfg.LogDir)
		fmt.Printf("Log Level:   %s\n", cfg.LogLevel)
		fmt.Printf("Time Zone:   %s\n", valueOr(cfg.TimeZone, "local"))
		fmt.Printf("Database:    %s %s\n", cfg.Database.Type, cfg.Database.DataDir)
		fmt.Printf("Cache:       %s (%s) encrypted=%v\n", cfg.Cache.Type, cfg.Cache.Name, cfg.Cache.Encrypted)
		fmt.Printf("Interval:    %s\n", cfg.Sync.Interval)
		for _, p := range cfg.Sync.Ignore {
			fmt.Printf("Ignore:      %s\n", p)
		}
		return nil
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Generate the key pair used to encrypt cached document text",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := app.LoadConfig()
		if err != nil {
			return err
		}

		enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
		if err != nil {
			return err
		}
		if enc.IsConfigured() {
			return fmt.Errorf("keys already exist at %s", cfg.Encryption.PublicKeyPath)
		}

		passphrase, err := encryption.NewPassphraseReader().ReadNew()
		if err != nil {
			return err
		}
		if err := enc.Setup(passphrase); err != nil {
			return fmt.Errorf("generating keys: %w", err)
		}

		fmt.Printf("Keys written to %s\n", cfg.Encryption.PublicKeyPath)
		fmt.Println("Set cache.encrypted = true in the config to encrypt snapshots.")
		return nil
	},
}

// auth command
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage Google Drive authorization",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authorize read-only access to Google Drive",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := app.LoadConfig()
		if err != nil {
			return err
		}

		oauthCfg, err := gdrive.LoadClientConfig(cfg.Google.CredentialsPath)
		if err != nil {
			return err
		}
		if err := gdrive.LoginManual(cmd.Context(), oauthCfg, cfg.Google.TokenPath, os.Stdin, os.Stdout); err != nil {
			return err
		}

		fmt.Printf("Token saved to %s\n", cfg.Google.TokenPath)
		return nil
	},
}

// sync command
var syncCmd = &cobra.Command{
	Use:   "sync [FOLDER_ID]",
	Short: "Sync word counts from Google Drive",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, _, err := newSyncApp(ctx, "sync")
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.Sync(ctx, firstArg(args))
		if err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}

		printSyncResult(res)
		return nil
	},
}

// watch command
var watchCmd = &cobra.Command{
	Use:   "watch [FOLDER_ID]",
	Short: "Sync repeatedly until interrupted",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, cfg, err := newSyncApp(ctx, "watch")
		if err != nil {
			return err
		}
		defer a.Close()

		interval, err := cfg.SyncInterval()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("interval") {
			interval, _ = cmd.Flags().GetDuration("interval")
		}

		fmt.Printf("Syncing every %s. Press Ctrl-C to stop.\n", interval)
		return a.Watch(ctx, firstArg(args), interval, func(res *wt.SyncResult, err error) {
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s  sync failed: %v\n", time.Now().Format("15:04:05"), err)
				return
			}
			fmt.Printf("%s  ", time.Now().Format("15:04:05"))
			printSyncResult(res)
		})
	},
}

func printSyncResult(res *wt.SyncResult) {
	fmt.Printf("Total words: %d (diffed %d, unchanged %d, failed %d)\n",
		res.TotalWords, res.DocumentsDiffed, res.DocumentsSkipped, res.DocumentsFailed)
}

// progress command
var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show words added and removed per document and folder",
	RunE: func(cmd *cobra.Command, args []string) error {
		sinceText, _ := cmd.Flags().GetString("since")

		a, err := newApp("progress")
		if err != nil {
			return err
		}
		defer a.Close()

		since, err := parseSince(sinceText, time.Now().In(a.Location()))
		if err != nil {
			return err
		}

		entries, err := a.GetProgress(since)
		if err != nil {
			return err
		}

		fmt.Printf("Progress since %s\n\n", since.Format("Mon 2006-01-02"))
		if len(entries) == 0 {
			fmt.Println("No writing activity.")
			return nil
		}
		printProgress(os.Stdout, entries, terminalWidth())
		return nil
	},
}

// summary command
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show today's, this week's and total word counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")

		a, err := newApp("summary")
		if err != nil {
			return err
		}
		defer a.Close()

		sum, err := a.GetSummary(days)
		if err != nil {
			return err
		}
		printSummary(os.Stdout, sum, terminalWidth())
		return nil
	},
}

// log command
var logCmd = &cobra.Command{
	Use:   "log DOC_ID",
	Short: "View a document's revision events",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp("log")
		if err != nil {
			return err
		}
		defer a.Close()

		doc, events, err := a.GetDocumentLog(args[0], limit)
		if err != nil {
			return err
		}

		fmt.Printf("%s  %d words\n\n", doc.Name, doc.TotalWords)
		if len(events) == 0 {
			fmt.Println("No revision events.")
			return nil
		}

		for _, e := range events {
			fmt.Printf("%s  %-8s  %s  rev %s\n",
				e.Timestamp.In(a.Location()).Format("2006-01-02 15:04:05"),
				formatNet(e.NetChange),
				e.Description.String,
				valueOr(e.RevisionID.String, "-"),
			)
		}
		return nil
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View sync operation history",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp("history")
		if err != nil {
			return err
		}
		defer a.Close()

		ops, err := a.GetHistory(limit)
		if err != nil {
			return err
		}

		if len(ops) == 0 {
			fmt.Println("No sync operations recorded.")
			return nil
		}

		for _, op := range ops {
			duration := ""
			if op.FinishedAt.Valid {
				d := op.FinishedAt.Time.Sub(op.StartedAt)
				duration = d.Truncate(time.Millisecond).String()
			}
			fmt.Printf("#%d  %-10s  %s  %-8s  %-10s  %s\n",
				op.ID,
				op.Operation,
				op.StartedAt.In(a.Location()).Format("2006-01-02 15:04:05"),
				op.Status,
				duration,
				op.Parameters,
			)
		}
		return nil
	},
}

// tree command
var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Show the synced folder tree with word counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("tree")
		if err != nil {
			return err
		}
		defer a.Close()

		roots, err := a.GetTree()
		if err != nil {
			return err
		}
		if len(roots) == 0 {
			fmt.Println("Nothing synced yet.")
			return nil
		}
		for _, root := range roots {
			printTree(os.Stdout, root, "")
		}
		return nil
	},
}

// db command
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the word count database",
}

var dbBackupCmd = &cobra.Command{
	Use:   "backup DEST",
	Short: "Write a consistent copy of the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("db backup")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.BackupDatabase(args[0]); err != nil {
			return fmt.Errorf("backup failed: %w", err)
		}
		fmt.Printf("Database copied to %s\n", args[0])
		return nil
	},
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := app.LoadConfig()
		if err != nil {
			return err
		}
		if err := app.MigrateDatabase(cfg); err != nil {
			return err
		}
		fmt.Println("Database schema is up to date.")
		return nil
	},
}

var dbStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether the schema is up to date",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := app.LoadConfig()
		if err != nil {
			return err
		}
		if err := app.CheckDatabase(cfg); err != nil {
			return fmt.Errorf("schema out of date (run `wordtrack db migrate`): %w", err)
		}
		fmt.Println("Database schema is up to date.")
		return nil
	},
}

func firstArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configKeysCmd)

	// auth subcommands
	authCmd.AddCommand(authLoginCmd)

	// db subcommands
	dbCmd.AddCommand(dbBackupCmd)
	dbCmd.AddCommand(dbMigrateCmd)
	dbCmd.AddCommand(dbStatusCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().Duration("interval", config.DefaultSyncInterval, "Time between syncs (overrides sync.interval)")
	rootCmd.AddCommand(progressCmd)
	progressCmd.Flags().StringP("since", "s", defaultSince, `Start of the period, e.g. "yesterday", "3 days ago" or 2024-01-15`)
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().IntP("days", "d", 14, "Number of days in the trend")
	rootCmd.AddCommand(logCmd)
	logCmd.Flags().IntP("limit", "n", 20, "Maximum number of events to show")
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of operations to show")
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(dbCmd)
}
