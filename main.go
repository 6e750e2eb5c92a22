package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/llehouerou/cdplay/internal/app"
	"github.com/llehouerou/cdplay/internal/config"
	"github.com/llehouerou/cdplay/internal/errmsg"
	"github.com/llehouerou/cdplay/internal/input"
	"github.com/llehouerou/cdplay/internal/keymap"
	"github.com/llehouerou/cdplay/internal/logging"
	"github.com/llehouerou/cdplay/internal/mpris"
	"github.com/llehouerou/cdplay/internal/notify"
	"github.com/llehouerou/cdplay/internal/playback"
	"github.com/llehouerou/cdplay/internal/player"
	"github.com/llehouerou/cdplay/internal/state"
	"github.com/llehouerou/cdplay/internal/ui/screen"
)

func main() {
	os.Exit(run())
}

func run() int {
	log, closeLog := logging.Open()
	defer closeLog()

	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("load config")
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpConfigLoad, err))
		return 1
	}
	log.Info().Str("path", cfg.Path).Int("collections", len(cfg.Library.Collections)).Msg("config loaded")

	keys, err := keymap.New(cfg.Keys)
	if err != nil {
		log.Error().Err(err).Msg("key bindings")
		fmt.Fprintln(os.Stderr, errmsg.FormatWith(errmsg.OpConfigLoad, cfg.Path, err))
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := play(ctx, cfg, keys, log); err != nil {
		log.Error().Err(err).Msg("exit")
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func play(ctx context.Context, cfg *config.Config, keys *keymap.KeyMap, log zerolog.Logger) error {
	terminal := input.NewTerminal(keys, log, input.Options(os.Stdin)...)
	scr := screen.New(os.Stdout, keys, screen.WithLogger(log))

	var st state.Interface
	if m, err := state.Open(log); err != nil {
		log.Warn().Err(err).Msg("open state")
		scr.Report(errmsg.Format(errmsg.OpStateOpen, err))
		st = state.NewMock(nil)
	} else {
		st = m
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Warn().Err(err).Msg("close state")
		}
	}()

	mpv := player.NewMPV(player.Options{
		Binary:    cfg.Player.Binary,
		Volume:    cfg.Player.Volume,
		IPCPath:   cfg.Player.IPCPath,
		ExtraArgs: cfg.Player.ExtraArgs,
	}, log)

	ctrl := playback.New(mpv, terminal, scr, log)
	defer ctrl.Close()

	if keysAdapter, err := mpris.New(ctrl, log); err != nil {
		log.Warn().Err(err).Msg(string(errmsg.OpMediaKeys))
	} else {
		defer func() {
			if err := keysAdapter.Close(); err != nil {
				log.Debug().Err(err).Msg("close mpris")
			}
		}()
	}

	if cfg.Notifications {
		startNotifications(ctx, ctrl, log)
	}

	a := app.New(cfg.Library, terminal, scr, ctrl, st, log,
		app.WithTrackChanges(ctrl.Subscribe().TrackChanged),
	)
	err := a.Run(ctx)
	if errors.Is(err, input.ErrQuit) {
		return nil
	}
	return err
}

func startNotifications(ctx context.Context, ctrl *playback.Controller, log zerolog.Logger) {
	n, err := notify.New()
	if err != nil {
		log.Warn().Err(err).Msg("desktop notifications")
		return
	}
	go notify.NewTracks(n, log).Run(ctx, ctrl.Subscribe().TrackChanged)
}
