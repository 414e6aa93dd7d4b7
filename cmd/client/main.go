// Package main is the entry point for the Midgard UI client.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-ui/internal/config"
	"github.com/Faultbox/midgard-ui/internal/engine/input"
	"github.com/Faultbox/midgard-ui/internal/engine/ui2d"
	"github.com/Faultbox/midgard-ui/internal/engine/window"
	"github.com/Faultbox/midgard-ui/internal/game"
	"github.com/Faultbox/midgard-ui/internal/logger"
	"github.com/Faultbox/midgard-ui/internal/ui"
)

const windowTitle = "Midgard UI"

var background = ui.RGB(24, 28, 40)

func main() {
	flags, err := config.ParseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(2)
	}
	cfg, cfgPath, err := config.Load(flags)
	if err != nil {
		fatal("Config error", err)
	}

	logOpts := logger.Options{
		Level:      cfg.Logging.Level,
		Components: cfg.Logging.Components,
		Console:    os.Stdout,
	}
	if cfg.Logging.LogFile != "" {
		logOpts.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.InitWithOptions(logOpts); err != nil {
		fatal("Logger error", err)
	}
	defer logger.Sync()

	logger.Info("starting client", zap.String("config", cfgPath))
	logger.Sugar.Debugf("config: %+v", cfg)

	if err := run(cfg, cfgPath); err != nil {
		logger.Error("client error", zap.Error(err))
		logger.Sync()
		fatal("Client error", err)
	}
	logger.Info("client closed normally")
}

func run(cfg *config.Config, cfgPath string) error {
	win, err := window.New(window.Config{
		Title:      windowTitle,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	defer win.Close()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("initializing OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized", zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))

	renderer, err := ui2d.New(win.GetSize())
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	defer renderer.Close()
	resize := func() {
		w, h := win.GetSize()
		pw, ph := win.DrawableSize()
		renderer.Resize(w, h, pw, ph)
	}
	resize()

	g, err := game.New(game.Options{Config: cfg, ConfigPath: cfgPath})
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	defer g.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := g.Start(ctx); err != nil {
		return err
	}

	in := input.New()
	var frameDelay time.Duration
	if cfg.Graphics.FPSLimit > 0 {
		frameDelay = time.Second / time.Duration(cfg.Graphics.FPSLimit)
	}

	title := ""
	last := time.Now()
	for g.Running() && ctx.Err() == nil {
		now := time.Now()
		dt := now.Sub(last).Seconds()
		last = now

		// 1. Input
		if in.Update() {
			break
		}
		for _, e := range in.Events() {
			if e.Type == input.EventWindowResize {
				resize()
			}
		}
		in.Dispatch(g)
		win.SetCursor(in.Cursor())
		if name := g.State().Name(); name != title {
			title = name
			win.SetTitle(windowTitle + " - " + name)
		}

		// 2. Queued commands, state, panels
		if err := g.Tick(dt); err != nil {
			return fmt.Errorf("tick: %w", err)
		}

		// 3. Draw
		renderer.Clear(background)
		renderer.Begin()
		g.Draw(renderer, 1)
		renderer.End()
		win.SwapBuffers()

		if frameDelay > 0 {
			if spent := time.Since(now); spent < frameDelay {
				time.Sleep(frameDelay - spent)
			}
		}
	}
	return nil
}

// fatal reports an error the client cannot recover from and exits. A native
// message box is shown too since the client usually runs without a console.
func fatal(title string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", title, err)
	dialog.Message("%v", err).Title(title).Error()
	os.Exit(1)
}
