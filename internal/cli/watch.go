package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/soellman/pidfile"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/tessro/vortex/internal/app"
	"github.com/tessro/vortex/internal/syncer"
	"github.com/tessro/vortex/internal/ui"
	"github.com/tessro/vortex/internal/watch"
)

var (
	watchNoEmoji   bool
	watchTimestamp bool
	watchFormat    string
	watchNotify    bool
	watchMQTT      string
	watchPIDFile   string
	watchInterval  int
)

var watchCmd = &cobra.Command{
	Use:     "watch",
	Aliases: []string{"tail"},
	Short:   "Follow playback changes in real-time",
	Long: `Poll the player service and print playback changes as they happen.

Events tracked:
  - Song changes
  - Pause, resume and stop
  - Random/repeat changes
  - Player errors and recovery

Events can also be shown as desktop notifications (--notify) and published
as retained JSON documents to an MQTT broker (--mqtt).`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchNoEmoji, "no-emoji", false, "disable emoji output")
	watchCmd.Flags().BoolVarP(&watchTimestamp, "timestamp", "t", false, "show timestamps")
	watchCmd.Flags().StringVarP(&watchFormat, "format", "f", "", "custom format template")
	watchCmd.Flags().BoolVar(&watchNotify, "notify", false, "show desktop notifications")
	watchCmd.Flags().StringVar(&watchMQTT, "mqtt", "", "MQTT broker URL to publish events to")
	watchCmd.Flags().StringVar(&watchPIDFile, "pidfile", "", "write the process id to this file")
	watchCmd.Flags().IntVarP(&watchInterval, "interval", "i", 0, "poll interval in milliseconds (overrides player.refresh_rate)")

	rootCmd.AddCommand(watchCmd)
}

// applyWatchFlags merges command-line flags over the [watch] section.
func applyWatchFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	if flags.Changed("no-emoji") {
		emoji := !watchNoEmoji
		cfg.Watch.Emoji = &emoji
	}
	if flags.Changed("timestamp") {
		cfg.Watch.Timestamp = watchTimestamp
	}
	if flags.Changed("format") {
		cfg.Watch.Format = watchFormat
	}
	if flags.Changed("notify") {
		cfg.Watch.Notify = watchNotify
	}
	if flags.Changed("mqtt") {
		cfg.Watch.MQTT.Broker = watchMQTT
	}
	if flags.Changed("pidfile") {
		cfg.Watch.PIDFile = watchPIDFile
	}
	if flags.Changed("interval") {
		cfg.Player.RefreshRate = watchInterval
	}

	if cfg.Player.RefreshRate <= 0 {
		return errors.New("watch needs a positive refresh rate; set player.refresh_rate or --interval")
	}
	return cfg.Validate()
}

func newSinks(logger *zap.Logger) ([]watch.Sink, error) {
	var sinks []watch.Sink
	if cfg.Watch.Notify {
		sinks = append(sinks, watch.NewNotifier())
	}
	if cfg.Watch.MQTT.Broker != "" {
		publisher, err := watch.NewPublisher(cfg.Watch.MQTT, logger.Named("mqtt"))
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, publisher)
	}
	return sinks, nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := applyWatchFlags(cmd); err != nil {
		return err
	}

	tmpl, err := watch.ParseTemplate(cfg.Watch.Format)
	if err != nil {
		return err
	}
	formatter := watch.NewFormatter(
		watch.WithEmoji(cfg.Watch.EmojiEnabled()),
		watch.WithTimestamp(cfg.Watch.Timestamp),
		watch.WithTemplate(tmpl),
	)

	logger, err := newLogger(false)
	if err != nil {
		return err
	}

	if cfg.Watch.PIDFile != "" {
		if err := pidfile.Write(cfg.Watch.PIDFile); err != nil {
			return fmt.Errorf("failed to write pid file: %w", err)
		}
		defer func() { _ = pidfile.Remove(cfg.Watch.PIDFile) }()
	}

	sinks, err := newSinks(logger)
	if err != nil {
		return err
	}
	defer func() {
		for _, sink := range sinks {
			_ = sink.Close()
		}
	}()

	var watcher *watch.Watcher
	session, err := app.New(cfg, ui.NewScreen(), logger,
		fx.Decorate(func(r syncer.Renderer) syncer.Renderer {
			watcher = watch.NewWatcher(r, logger.Named("watch"))
			return watcher
		}),
	)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := session.Start(ctx); err != nil {
		return err
	}
	defer func() {
		stopSession(session, logger)
		watcher.Close()
	}()

	err = watch.Stream(ctx, watcher.Events(), cmd.OutOrStdout(), formatter, sinks, logger)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
