// Command generate-token pairs with a Dirigera hub and writes the resulting
// access token to a config file. Run it, press the action button on the hub
// when prompted, and point your client at the generated config.toml.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/go-dirigera/dirigera"
)

func main() {
	_ = godotenv.Load(".env")
	viper.AutomaticEnv()
	viper.SetDefault("config_file", dirigera.DefaultConfigFile)
	viper.SetDefault("client_name", "localhost")
	viper.SetDefault("log_level", "info")

	var level slog.Level
	if err := level.UnmarshalText([]byte(viper.GetString("log_level"))); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	configFile := viper.GetString("config_file")
	if _, err := os.Stat(configFile); err == nil {
		logger.Error("config file already exists, refusing to overwrite", "path", configFile)
		os.Exit(1)
	}

	ip, err := hubAddress()
	if err != nil {
		logger.Error("failed to read hub address", "error", err)
		os.Exit(1)
	}
	if ip == "" {
		logger.Error("no hub address given")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := dirigera.DefaultPairingConfig()
	cfg.ClientName = viper.GetString("client_name")

	pairer := dirigera.NewPairer(ip,
		dirigera.WithPairingConfig(cfg),
		dirigera.WithPairingLogger(logger),
		dirigera.WithPairingStateFunc(func(s dirigera.PairingState) {
			if s == dirigera.StateAwaitingConfirmation {
				fmt.Println("Press the action button on the bottom of your Dirigera hub")
			}
		}),
	)

	token, err := pairer.Pair(ctx)
	if err != nil {
		switch {
		case dirigera.IsPairingTimeout(err):
			logger.Error("button was not pressed in time, run again to retry")
		case dirigera.IsPairingRejected(err):
			logger.Error("hub rejected the pairing attempt", "error", err)
		default:
			logger.Error("pairing failed", "error", err)
		}
		os.Exit(1)
	}

	if err := dirigera.SaveConfig(configFile, &dirigera.Config{IPAddress: ip, Token: token}); err != nil {
		logger.Error("failed to save config", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Configuration has been saved to %s\n", configFile)
}

// hubAddress takes the hub IP from the first argument or prompts for it.
func hubAddress() (string, error) {
	if len(os.Args) > 1 {
		return strings.TrimSpace(os.Args[1]), nil
	}

	fmt.Print("Enter hub IP address: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
