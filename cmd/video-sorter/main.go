// Package main provides the video sorter desktop entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/alecthomas/kingpin/v2"
	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/ytget/video-sorter/internal/config"
	"github.com/ytget/video-sorter/internal/history"
	"github.com/ytget/video-sorter/internal/logger"
	"github.com/ytget/video-sorter/internal/platform"
	"github.com/ytget/video-sorter/internal/player"
	"github.com/ytget/video-sorter/internal/session"
	"github.com/ytget/video-sorter/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.video-sorter"
	AppName = "Video File Sorter"
)

var (
	cli          = kingpin.New("video-sorter", "Play the videos in a folder one by one and delete the ones not worth keeping")
	verbose      = cli.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Envar("VIDEO_SORTER_VERBOSE").Bool()
	logfile      = cli.Flag("logfile", "Path to log file (default: stdout)").Envar("VIDEO_SORTER_LOGFILE").String()
	mpvBinary    = cli.Flag("mpv", "mpv executable (default: the one saved in settings)").Envar("VIDEO_SORTER_MPV").String()
	historyFile  = cli.Flag("history", "Recent folders file (default: ~/"+platform.HistoryFileName+")").Envar("VIDEO_SORTER_HISTORY").String()
	startTimeout = cli.Flag("start-timeout", "How long to wait for mpv to accept commands").Envar("VIDEO_SORTER_START_TIMEOUT").Duration()
	startFolder  = cli.Arg("folder", "Folder to open on start").String()
)

func main() {
	cli.Version(version)
	kingpin.MustParse(cli.Parse(os.Args[1:]))

	a := app.NewWithID(AppID)
	a.Settings().SetTheme(ui.NewCompactTheme())
	settings := config.NewSettings(a)

	opts := config.Options{
		MPVBinary:    *mpvBinary,
		HistoryFile:  *historyFile,
		StartFolder:  *startFolder,
		LogOutput:    *logfile,
		StartTimeout: *startTimeout,
	}
	if *verbose {
		opts.LogLevel = "debug"
	}
	cli.FatalIfError(opts.Load(settings), "")

	if err := logger.Init(logger.Config{Output: opts.LogOutput, Level: opts.LogLevel}); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	zlog.Info().Str("version", version).Msg(AppName + " starting")

	if err := run(a, settings, opts); err != nil {
		zlog.Error().Err(err).Msg("video sorter failed")
		os.Exit(1)
	}
}

// run starts the engine and blocks in the UI event loop. The deferred close
// runs even if the window was torn down without the close intercept.
func run(a fyne.App, settings *config.Settings, opts config.Options) error {
	mpv := player.NewMPV(opts.MPVBinary)
	ctx, cancel := context.WithTimeout(context.Background(), opts.StartTimeout)
	defer cancel()
	if err := mpv.Start(ctx); err != nil {
		return errors.Wrap(err, "launch player")
	}

	svc := session.NewService(mpv, openHistory(opts.HistoryFile), session.NewTimerScheduler(fyne.Do), session.Config{
		SkipShort: settings.GetSkipShort(),
		SkipLong:  settings.GetSkipLong(),
		Volume:    settings.GetVolume(),
	})
	defer func() {
		if err := svc.Close(); err != nil {
			zlog.Warn().Err(err).Msg("shutdown")
		}
	}()

	root := ui.NewRootUI(a.NewWindow(AppName), a, svc, settings)

	a.Lifecycle().SetOnStarted(func() {
		if opts.StartFolder != "" {
			root.LoadFolder(opts.StartFolder)
		}
	})

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		sig := <-sigs
		zlog.Info().Str("signal", sig.String()).Msg("quitting")
		fyne.Do(root.Quit)
	}()

	root.ShowAndRun()
	return nil
}

// openHistory returns the recent-folders store at path, or at the default
// location in the home directory
func openHistory(path string) *history.Store {
	if path == "" {
		p, err := platform.HistoryFilePath()
		if err != nil {
			zlog.Warn().Err(err).Msg("history disabled")
			return nil
		}
		path = p
	}
	zlog.Debug().Str("path", path).Msg("history file")
	return history.New(path)
}
