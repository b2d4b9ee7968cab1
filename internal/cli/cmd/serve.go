package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/sevlyar/go-daemon"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/matjam/lazyimg"
	"github.com/matjam/lazyimg/internal/cli/cmd/utils"
	"github.com/matjam/lazyimg/internal/gallery"
	"github.com/matjam/lazyimg/internal/probe"
	"github.com/matjam/lazyimg/internal/registry"
)

func NewServeCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve a directory of images as a lazily loaded gallery",
		Run: func(cmd *cobra.Command, args []string) {
			// The daemon child runs this again; Reborn tells the two apart.
			if viper.GetBool("background") {
				daemonize()
				return
			}
			StartServer()
		},
	}

	c.Flags().String("listen", "", "address to listen on")
	c.Flags().String("images", "", "directory of images to serve")
	c.Flags().String("mode", "", "render mode: eager or ssr")
	_ = viper.BindPFlag("listen", c.Flags().Lookup("listen"))
	_ = viper.BindPFlag("images", c.Flags().Lookup("images"))
	_ = viper.BindPFlag("mode", c.Flags().Lookup("mode"))

	return c
}

// StartServer runs the gallery server until it receives SIGINT or SIGTERM.
func StartServer() {
	log.Infof("StartServer() started in PID: %d", os.Getpid())

	if os.Getenv("BACKGROUND_PROCESS") == "1" {
		setupRotatingLogger()
	}

	mode := gallery.Mode(viper.GetString("mode"))
	if mode != gallery.ModeEager && mode != gallery.ModeSSR {
		log.Fatalf("Unknown mode %q, expected eager or ssr", mode)
	}

	library := gallery.NewLibrary(
		utils.CanonicalPath(viper.GetString("images")),
		viper.GetInt("placeholder_width"),
	)
	library.SetShuffle(viper.GetBool("shuffle"))
	if err := library.Scan(); err != nil {
		log.Fatalf("Error scanning images: %v", err)
	}
	if len(library.Images()) == 0 {
		log.Warnf("No images found in %s", library.Dir())
	}

	server := gallery.NewServer(gallery.Config{
		Library:    library,
		Display:    utils.DisplayConfig(viper.GetViper()),
		Mode:       mode,
		Formats:    probe.New(probe.DefaultSurface),
		Registry:   registry.New(),
		ConfigFile: viper.ConfigFileUsed(),
		Version:    strings.Trim(lazyimg.Version, "\n\r "),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		errs <- server.Start(viper.GetString("listen"))
	}()

	select {
	case err := <-errs:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case <-ctx.Done():
		log.Info("Shutting down ...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Errorf("Shutdown failed: %v", err)
		}
	}

	log.Infof("lazyimg exited")
}

func runtimeDir() string {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = os.TempDir()
	}
	return dir
}

func daemonize() {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("Failed to get working directory: %v", err)
	}

	cntxt := &daemon.Context{
		PidFileName: filepath.Join(runtimeDir(), "lazyimg.pid"),
		PidFilePerm: 0644,
		WorkDir:     wd,
		Umask:       027,
		Env:         append(os.Environ(), "BACKGROUND_PROCESS=1"),
	}

	child, err := cntxt.Reborn()
	if err != nil {
		log.Fatalf("Failed to start in background: %v", err)
	}
	if child != nil {
		log.Infof("lazyimg started in background, PID %d", child.Pid)
		return
	}
	defer func() {
		if err := cntxt.Release(); err != nil {
			log.Errorf("Failed to release pid file: %v", err)
		}
	}()

	StartServer()
}

func setupRotatingLogger() {
	home := os.Getenv("HOME")
	logDir := filepath.Join(home, ".local", "share", "lazyimg")
	logPath := filepath.Join(logDir, "lazyimg.log")

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Fatalf("failed to create log directory: %v", err)
	}

	writer, err := rotatelogs.New(
		logPath+".%Y%m%d%H%M",
		rotatelogs.WithLinkName(logPath),
		rotatelogs.WithMaxAge(7*24*time.Hour),
		rotatelogs.WithRotationSize(10*1024*1024),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		log.Fatalf("failed to configure log rotation: %v", err)
	}

	log.SetOutput(writer)
	log.SetLevel(log.InfoLevel)
	if viper.GetBool("debug") {
		log.SetLevel(log.DebugLevel)
	}
}

func serverURL() string {
	listen := viper.GetString("listen")
	if strings.HasPrefix(listen, ":") {
		listen = "127.0.0.1" + listen
	}
	return fmt.Sprintf("http://%s", listen)
}
