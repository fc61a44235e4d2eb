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

	"github.com/studyloop/studyloop/internal/profile"
	"github.com/studyloop/studyloop/server"
	"github.com/studyloop/studyloop/store"
	"github.com/studyloop/studyloop/store/db"
)

const greetingBanner = `studyloop - spaced-repetition review scheduler`

var rootCmd = &cobra.Command{
	Use:   "studyloop",
	Short: "A spaced-repetition review scheduling server",
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		logLevel := slog.LevelInfo
		if viper.GetString("mode") != "prod" {
			logLevel = slog.LevelDebug
		}
		logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
		slog.SetDefault(logger)

		instanceProfile := &profile.Profile{
			Mode:    viper.GetString("mode"),
			Addr:    viper.GetString("addr"),
			Port:    viper.GetInt("port"),
			Data:    viper.GetString("data"),
			Driver:  viper.GetString("driver"),
			DSN:     viper.GetString("dsn"),
			Secret:  viper.GetString("secret"),
			Version: "0.1.0",
		}
		if err := instanceProfile.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		dbDriver, err := db.NewDBDriver(instanceProfile)
		if err != nil {
			return fmt.Errorf("failed to create db driver: %w", err)
		}

		storeInstance := store.New(dbDriver, instanceProfile)
		if err := storeInstance.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}

		s, err := server.NewServer(ctx, instanceProfile, storeInstance, logger)
		if err != nil {
			return fmt.Errorf("failed to create server: %w", err)
		}

		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigc
			logger.Info("shutdown signal received")
			s.Shutdown(ctx)
			cancel()
		}()

		fmt.Println(greetingBanner)
		if err := s.Start(ctx); err != nil {
			if ctx.Err() == nil {
				return fmt.Errorf("server error: %w", err)
			}
		}

		<-ctx.Done()
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("mode", "dev", `server mode, can be "dev" or "prod"`)
	rootCmd.PersistentFlags().String("addr", "", "address of the server")
	rootCmd.PersistentFlags().Int("port", 8231, "port of the server")
	rootCmd.PersistentFlags().String("data", ".", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", `database driver, "sqlite" or "postgres"`)
	rootCmd.PersistentFlags().String("dsn", "", "database source name")
	rootCmd.PersistentFlags().String("secret", "", "secret used to sign access tokens")

	for _, flag := range []string{"mode", "addr", "port", "data", "driver", "dsn", "secret"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(err)
		}
	}

	viper.SetEnvPrefix("studyloop")
	viper.AutomaticEnv()
}
