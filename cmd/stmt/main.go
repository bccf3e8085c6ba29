package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/statement-sorter/internal/cli"
	"github.com/Veraticus/statement-sorter/internal/common"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "stmt",
		Short: "🗄️  Sort PDF bank statements into place",
		Long: `statement-sorter: classifies PDF bank and brokerage statements by their
first-page text, extracts the statement date, and renames each file into a
deterministic destination, optionally organized into issuer/year folders.`,
		PersistentPreRunE: initConfig,
		RunE:              runSort,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/stmt/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")

	rootCmd.Flags().StringP("input", "i", "./inbox", "input directory containing PDFs")
	rootCmd.Flags().StringP("output", "o", "./processed", "output directory for renamed files")
	rootCmd.Flags().Bool("dry-run", false, "preview destinations without moving anything")
	rootCmd.Flags().Bool("organize", false, "group renamed files into issuer subfolders")
	rootCmd.Flags().Bool("organize-year", false, "add year subfolders beneath issuer folders")
	rootCmd.Flags().Bool("force", false, "overwrite an existing file at the destination")
	rootCmd.Flags().BoolP("verbose", "v", false, "increase output verbosity")

	// Bind flags to viper
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("input.dir", rootCmd.Flags().Lookup("input"))
	_ = viper.BindPFlag("output.dir", rootCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("organize.issuer", rootCmd.Flags().Lookup("organize"))
	_ = viper.BindPFlag("organize.year", rootCmd.Flags().Lookup("organize-year"))

	rootCmd.AddCommand(versionCmd())
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err.Error()))
		os.Exit(1)
	}
}

func initConfig(cmd *cobra.Command, _ []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		viper.AddConfigPath(fmt.Sprintf("%s/.config/stmt", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("STMT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	return setupLogging(cmd)
}

func setupLogging(cmd *cobra.Command) error {
	level := viper.GetString("logging.level")
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = "debug"
	}

	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		return fmt.Errorf("invalid log level: %s", level)
	}

	return common.SetupLogger(slogLevel, viper.GetString("logging.format"))
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			slog.Info("stmt version", "version", version)
		},
	}
}
