// Command travelctl is an operator console for the travel agency backend:
// it lists, creates and removes tours, bookings and categories through the
// same cached, reconciling client the site uses.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/atlas-tours/travel-client/pkg/config"
	"github.com/atlas-tours/travel-client/pkg/logging"
	"github.com/atlas-tours/travel-client/pkg/remote"
	"github.com/atlas-tours/travel-client/pkg/resource"
	"github.com/atlas-tours/travel-client/pkg/store"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "travelctl",
	Short: "Travel agency admin console",
	Long: "Command-line console for the travel agency backend.\n" +
		"Manages tours, bookings and categories through the cached client.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "travel.toml", "path to the TOML config file")
}

// app bundles the resource managers built from the effective config.
type app struct {
	tours      *resource.Tours
	bookings   *resource.Bookings
	categories *resource.Categories
}

// newApp loads configuration (.env, TOML file, environment overrides) and
// wires the client, storage and managers.
func newApp(cmd *cobra.Command) (*app, error) {
	// A local .env is optional; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	cfg = config.ApplyEnv(cfg)

	logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.Log.Level),
		Pretty: cfg.Log.Pretty,
		Output: os.Stderr,
	})

	client, err := remote.New(remote.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout(),
	})
	if err != nil {
		return nil, err
	}

	var storage store.Storage
	if cfg.Storage.RedisAddr != "" {
		storage = store.NewRedisStorage(redis.NewClient(&redis.Options{
			Addr: cfg.Storage.RedisAddr,
		}), "travel")
	} else {
		storage, err = store.NewFileStorage(cfg.Storage.Dir)
		if err != nil {
			return nil, err
		}
	}

	return &app{
		tours:      resource.NewTours(cmd.Context(), client, storage),
		bookings:   resource.NewBookings(client),
		categories: resource.NewCategories(client),
	}, nil
}

// reportStatus prints the mutation outcome, surfacing degraded mode.
func reportStatus(status resource.Status) {
	if status == resource.StatusDegraded {
		fmt.Println("warning: backend unreachable, change applied locally only (degraded)")
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
