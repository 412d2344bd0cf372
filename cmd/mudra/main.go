package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/plugin"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
	"github.com/ayusman/mudra/internal/volume"
)

// pluginTimeout bounds a single volume plugin call.
const pluginTimeout = 2 * time.Second

func main() {
	fmt.Println("Mudra - Pinch Volume Control")

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	var st *store.Store
	if cfg.History {
		st, err = store.New(cfg.DatabasePath())
		if err != nil {
			log.Fatalf("Failed to initialize store: %v", err)
		}
		defer st.Close()
	}

	a := app.New(app.Config{
		CameraConfig: capture.Config{
			DeviceID: cfg.CameraID,
			Width:    cfg.FrameWidth,
			Height:   cfg.FrameHeight,
		},
		DetectorConfig: detector.Config{
			MaxHands:        cfg.MaxHands,
			MinConfidence:   cfg.MinDetectionConfidence,
			MinTrackingConf: cfg.MinTrackingConfidence,
			ScriptPath:      serviceScript(cfg.DataDir),
		},
		Sink:  volume.NewSink(volumeBackend(cfg)),
		Store: st,
	})
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go a.Run(ctx)

	srv := server.New(server.Config{
		App:       a,
		StaticDir: cfg.StaticDir,
	})

	if cfg.Tray {
		go serve(ctx, stop, srv, cfg.Addr)
		runTray(ctx, stop, a, cfg.Addr)
		return
	}

	serve(ctx, stop, srv, cfg.Addr)
}

func serve(ctx context.Context, stop context.CancelFunc, srv *server.Server, addr string) {
	defer stop()

	fmt.Printf("Starting server on %s\n", addr)
	if err := srv.Serve(ctx, addr); err != nil {
		log.Printf("Server failed: %v", err)
	}
}

// runTray blocks in the tray event loop until Quit is chosen or ctx ends.
func runTray(ctx context.Context, stop context.CancelFunc, a *app.App, addr string) {
	t := tray.New()
	t.OnToggle(func(active bool) error {
		if active {
			return a.StartCamera()
		}
		return a.StopCamera()
	})
	t.OnOpen(func() {
		if err := openBrowser(browserURL(addr)); err != nil {
			log.Printf("Failed to open browser: %v", err)
		}
	})
	t.OnQuit(stop)

	go t.Follow(ctx, a)
	go func() {
		<-ctx.Done()
		t.Quit()
	}()

	t.Run()
}

// volumeBackend returns the plugin backend for the configured volume
// plugin, or nil when it is missing or unsupported here.
func volumeBackend(cfg config.Config) volume.Backend {
	mgr := plugin.NewManager(cfg.PluginDir)
	if err := mgr.Discover(); err != nil {
		log.Printf("Plugin discovery failed: %v", err)
		return nil
	}

	backend, err := volume.NewPluginBackend(mgr, cfg.VolumePlugin, plugin.NewExecutor(pluginTimeout))
	if err != nil {
		log.Printf("Volume plugin unavailable: %v", err)
		return nil
	}
	return backend
}

// serviceScript returns the landmark service under dataDir when present,
// leaving the detector's own search otherwise.
func serviceScript(dataDir string) string {
	path := filepath.Join(dataDir, "scripts", detector.ServiceScript)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

func browserURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}

func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
