package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/data-ballpit/internal/config"
	"github.com/iburimskiy/data-ballpit/internal/game"
	"github.com/iburimskiy/data-ballpit/internal/logging"
)

func main() {
	configFile := flag.String("config", "", "Path to a JSON settings file")
	envFile := flag.String("env", ".env", "Path to a .env file with BALLPIT_* variables")
	dataDir := flag.String("data", "", "Directory holding the dataset files (default: data)")
	logLevel := flag.String("log-level", "", "debug, info, warn or error")
	policy := flag.String("policy", "", "Normalization policy: per-dataset or global")
	mute := flag.Bool("mute", false, "Disable spawn sounds")
	flag.Parse()

	settings, err := loadSettings(*configFile, *envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Flags override the file and the environment.
	if *dataDir != "" {
		settings.DataDir = *dataDir
	}
	if *logLevel != "" {
		settings.LogLevel = *logLevel
	}
	if *policy != "" {
		settings.Policy = *policy
	}
	if *mute {
		settings.Sound = false
	}
	if !logging.SetLogLevel(settings.LogLevel) {
		logging.Warnf("unknown log level %q, using info", settings.LogLevel)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, err := game.NewGame(ctx, settings)
	if err != nil {
		logging.Errorf("%v", err)
		os.Exit(1)
	}
	defer g.Close()

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("Data Ballpit - click a dataset to play it, Space: clear, Esc/Q: quit")
	ebiten.SetTPS(config.TPS)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		g.Close()
		logging.Errorf("%v", err)
		os.Exit(1)
	}
}

func loadSettings(path, envFile string) (config.Settings, error) {
	settings := config.Default()
	if path != "" {
		s, err := config.Load(path)
		if err != nil {
			return settings, err
		}
		settings = s
	}
	loaded, err := config.LoadDotEnv(envFile)
	switch {
	case err != nil:
		logging.Warnf("%v", err)
	case loaded:
		logging.Infof("Loaded environment variables from %s", envFile)
	default:
		logging.Debugf("No %s file found, using system environment variables", envFile)
	}
	if err := settings.ApplyEnv(); err != nil {
		return settings, err
	}
	return settings, nil
}
