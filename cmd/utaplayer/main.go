// Command utaplayer plays a music directory through the headless player
// and serves the current track to display clients.
//
// Usage:
//
//	utaplayer [-config utaplayer.yaml]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/trackmeta"
	"github.com/simonhull/trackmeta/internal/config"
	"github.com/simonhull/trackmeta/internal/nowplaying"
	"github.com/simonhull/trackmeta/internal/player"
)

var (
	configPath  = flag.String("config", "utaplayer.yaml", "Path to configuration file")
	writeConfig = flag.Bool("write-config", false, "Write the effective configuration to -config and exit")
	showVersion = flag.Bool("version", false, "Print version information and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(trackmeta.GetBuildInfo())
		return
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *writeConfig {
		if err := config.SaveConfig(*configPath, cfg); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}
		log.Printf("Wrote %s", *configPath)
		return
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	playlist, err := player.ScanDir(cfg.Library.Directory, cfg.Library.Recursive, cfg.HasExtension)
	if err != nil {
		log.Fatalf("Failed to scan library: %v", err)
	}
	log.Printf("Found %d files in %s", len(playlist), cfg.Library.Directory)

	session := trackmeta.NewSession(
		trackmeta.WithLogger(logger),
		trackmeta.WithFallbacks(cfg.Playback.FallbackArtist, cfg.Playback.FallbackAlbum),
	)

	server := nowplaying.NewServer(session, cfg.Server.AllowedOrigins, logger)

	p := player.New(session, playlist,
		player.WithLogger(logger),
		player.WithRealtime(cfg.Playback.Realtime),
		player.WithLoop(cfg.Playback.Loop),
		player.OnTrack(func(s trackmeta.Snapshot) {
			server.PublishSnapshot(nowplaying.TypeTrack, s)
		}),
		player.OnTick(time.Duration(cfg.Playback.TickSeconds*float64(time.Second)), func(s trackmeta.Snapshot) {
			server.PublishSnapshot(nowplaying.TypeTick, s)
		}),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(ctx, cfg.Server.Addr)
	})
	g.Go(func() error {
		err := p.Run(ctx)
		log.Printf("Playback finished: %d played, %d skipped", p.Played(), p.Skipped())
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		// Keep serving the last track until interrupted.
		<-ctx.Done()
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("utaplayer: %v", err)
	}
}
