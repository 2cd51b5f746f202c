// Package reservations parses reservations service flags and launches the service.
package reservations

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/reservio/internal/platform/cmd"
	server "github.com/louisbranch/reservio/internal/services/reservations/app"
)

// Config holds reservations command configuration.
type Config struct {
	Port int `env:"RESERVIO_RESERVATIONS_PORT" envDefault:"8090"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The reservations gRPC server port")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the reservations service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceReservations, func(context.Context) error {
		return server.Run(ctx, cfg.Port)
	})
}
