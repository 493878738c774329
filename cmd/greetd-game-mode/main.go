// Command greetd-game-mode is a system daemon that watches connected
// gamepads and toggles the greetd login manager between desktop and game
// mode when a pad's Mode/Guide button is pressed and released.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MasonRhodesDev/greetd-game-mode/internal/adapters/linuxpad"
	"github.com/MasonRhodesDev/greetd-game-mode/internal/adapters/session"
	"github.com/MasonRhodesDev/greetd-game-mode/internal/adapters/systemdctl"
	"github.com/MasonRhodesDev/greetd-game-mode/internal/config"
	"github.com/MasonRhodesDev/greetd-game-mode/internal/core/gamemode"
)

var Version = "dev"

// logLevelEnv overrides the configured log level; set to "debug" for
// per-event tracing.
const logLevelEnv = "GREETD_GAME_MODE_LOG"

var (
	flagConfig      string
	flagListDevices bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "greetd-game-mode",
		Short: "Toggle greetd between desktop and game mode with a gamepad",
		Long: `greetd-game-mode runs in the background on the greeter's terminal and
listens for the Mode/Guide button of any connected gamepad. On each
press-and-release it repoints greetd's config.toml symlink at the other of
two static configs (desktop or game mode) and restarts the greetd unit so
the change takes effect. The daemon always resets to desktop mode at
startup.`,
		Args:          cobra.NoArgs,
		RunE:          rootRun,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&flagConfig, "config", "c", "", "Path to config file (default "+config.DefaultPath+")")
	flags.BoolVar(&flagListDevices, "list-devices", false, "Print detected input devices and exit")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootRun(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	codes, err := parseModeButtons(cfg.Input.ModeButtons)
	if err != nil {
		return err
	}

	if flagListDevices {
		return listDevices(codes)
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	logger.Info("game mode service starting", "version", Version)

	monitor, err := linuxpad.NewMonitor(codes, cfg.ScanInterval(), logger)
	if err != nil {
		return err
	}
	defer monitor.Close()
	for _, path := range monitor.Devices() {
		logger.Info("gamepad attached at startup", "device", path)
	}

	switcher := gamemode.NewSwitcher(cfg.ConfigPath(), cfg.DesktopConfigPath(), cfg.GameConfigPath(), logger)
	invoker := systemdctl.NewInvoker(cfg.Service.Unit, cfg.Terminal.VT, cfg.Service.UseSudo)

	var guard gamemode.SessionGuard
	if cfg.Terminal.Guard && cfg.Terminal.VT > 0 {
		guard = session.NewTTYGuard(cfg.Terminal.VT)
	}
	var vt gamemode.VTSwitcher
	if cfg.Terminal.Switch && cfg.Terminal.VT > 0 {
		vt = invoker
	}

	svc, err := gamemode.NewService(gamemode.ServiceConfig{
		Source:       monitor,
		Switcher:     switcher,
		Detector:     gamemode.NewEdgeDetector(codes),
		Restarter:    invoker,
		Guard:        guard,
		VT:           vt,
		Logger:       logger,
		PollInterval: cfg.PollInterval(),
	})
	if err != nil {
		return err
	}

	if err := svc.Reconcile(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := svc.Run(ctx); err != nil {
		return err
	}
	logger.Info("game mode service exiting")
	return nil
}

func parseModeButtons(names []string) ([]uint16, error) {
	codes := make([]uint16, 0, len(names))
	for _, name := range names {
		code, err := linuxpad.ParseButton(name)
		if err != nil {
			return nil, fmt.Errorf("input.mode_buttons: %w", err)
		}
		codes = append(codes, code)
	}
	return codes, nil
}

func listDevices(codes []uint16) error {
	devices, err := linuxpad.ListGamepads(codes)
	if err != nil {
		return err
	}
	for _, dev := range devices {
		tags := make([]string, 0, 2)
		if dev.IsVirtual {
			tags = append(tags, "virtual")
		}
		if dev.HasButton {
			tags = append(tags, "mode button")
		}
		suffix := ""
		if len(tags) > 0 {
			suffix = " [" + strings.Join(tags, ", ") + "]"
		}
		fmt.Printf("%s: %s%s\n", dev.Path, dev.Name, suffix)
	}
	return nil
}

// newLogger builds the daemon logger: text handler on stderr plus the
// append-only log file. Failure to open the log file is a startup error.
func newLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if cfg.Log.Debug {
		level = slog.LevelDebug
	}
	if raw := strings.TrimSpace(os.Getenv(logLevelEnv)); raw != "" {
		parsed, err := parseLogLevel(raw)
		if err != nil {
			return nil, nil, err
		}
		level = parsed
	}

	out := io.Writer(os.Stderr)
	closeLog := func() {}
	if cfg.Log.File != "" {
		file, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		out = io.MultiWriter(os.Stderr, file)
		closeLog = func() { _ = file.Close() }
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	return logger, closeLog, nil
}

func parseLogLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warning", "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid %s value %q (expected debug|info|warning|error)", logLevelEnv, value)
	}
}
