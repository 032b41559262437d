package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"pawnpuzzle/internal/server/game"
	httpserver "pawnpuzzle/internal/server/http"
	"pawnpuzzle/internal/server/ws"
	"pawnpuzzle/internal/store"
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}

	_ = cmd.Start() // headless hosts have no browser; ignore
}

func main() {
	addr := flag.String("addr", getenv("PUZZLE_ADDR", ":2888"), "listen address")
	webDir := flag.String("web", getenv("PUZZLE_WEB", "./web"), "directory with index.html and assets; empty disables")
	storeKind := flag.String("store", getenv("PUZZLE_STORE", "fs"), "layout store: fs|memory")
	dataDir := flag.String("data", getenv("PUZZLE_DATA", "./data/layouts"), "directory for the fs layout store")
	levelStr := flag.String("log-level", getenv("PUZZLE_LOG_LEVEL", "info"), "debug|info|warn|error")
	origins := flag.String("origins", getenv("PUZZLE_ORIGINS", ""), "comma-separated CORS / websocket origin allow-list (default localhost and 127.0.0.1 on the listen port)")
	idle := flag.Duration("idle", getdur("PUZZLE_IDLE", 2*time.Hour), "drop games idle longer than this")
	browser := flag.Bool("open", false, "open the default browser after start")
	flag.Parse()

	log, err := newLogger(*levelStr)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer log.Sync()

	var layouts store.LayoutStore
	switch strings.ToLower(strings.TrimSpace(*storeKind)) {
	case "memory", "mem":
		layouts = store.NewMemory()
	case "fs", "file":
		layouts = store.NewFS(*dataDir)
	default:
		log.Fatal("unknown store", zap.String("store", *storeKind))
	}

	allow := splitCSV(*origins)
	if len(allow) == 0 {
		allow = localOrigins(*addr)
	}
	games := game.NewManager(log.Named("games"))
	api := httpserver.NewHandler(games, layouts, log.Named("api"))
	hub := ws.NewHub(games, allow, log.Named("ws"))
	handler := httpserver.NewRouter(api, httpserver.Options{
		WebDir:  *webDir,
		Live:    hub,
		Origins: allow,
		Log:     log.Named("http"),
	})

	srv := &http.Server{
		Addr:              *addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		log.Info("listening", zap.String("addr", *addr), zap.String("web", *webDir), zap.String("store", *storeKind))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if *idle > 0 {
		eg.Go(func() error {
			t := time.NewTicker(*idle / 4)
			defer t.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-t.C:
					if games.Prune(*idle) > 0 {
						log.Debug("sessions after prune", zap.Int("active", games.Len()))
					}
				}
			}
		})
	}

	if *browser {
		// give the listener a moment before the browser hits it
		go func() {
			time.Sleep(100 * time.Millisecond)
			openBrowser("http://127.0.0.1" + *addr)
		}()
	}

	if err := eg.Wait(); err != nil {
		log.Error("server error", zap.Error(err))
		os.Exit(1)
	}
	log.Info("shut down")
}

func newLogger(level string) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

func localOrigins(addr string) []string {
	_, port, err := net.SplitHostPort(addr)
	if err != nil || port == "" {
		return nil
	}
	return []string{"http://localhost:" + port, "http://127.0.0.1:" + port}
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
