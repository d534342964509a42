// Command posed runs the pose-feedback service: the scoring endpoint
// the detection loops call into, plus session review and report
// endpoints over the results database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/romanvieito/gym-feedback-ai-9-4/internal/api"
	"github.com/romanvieito/gym-feedback-ai-9-4/internal/config"
	"github.com/romanvieito/gym-feedback-ai-9-4/internal/pose/detect"
	"github.com/romanvieito/gym-feedback-ai-9-4/internal/storage/sqlite"
	"github.com/romanvieito/gym-feedback-ai-9-4/internal/version"
)

var (
	listen      = flag.String("listen", ":8080", "Listen address")
	dbFile      = flag.String("db", "pose_sessions.db", "Path to the session database")
	configFile  = flag.String("config", "", "Path to a tuning config JSON file")
	debugLog    = flag.Bool("debug", false, "Enable diagnostic log streams")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("posed %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	if *listen == "" {
		log.Fatal("Listen address is required")
	}

	cfg := config.EmptyTuningConfig()
	if *configFile != "" {
		loaded, err := config.LoadTuningConfig(*configFile)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}

	if *debugLog {
		detect.SetLogWriters(os.Stderr, os.Stderr, nil)
	} else {
		detect.SetLogWriters(os.Stderr, nil, nil)
	}

	store, err := sqlite.New(*dbFile)
	if err != nil {
		log.Fatalf("failed to open session database: %v", err)
	}
	defer store.Close()

	server := api.NewServer(store, cfg, nil)

	httpServer := &http.Server{
		Addr:    *listen,
		Handler: api.LoggingMiddleware(server.ServeMux()),
	}

	go func() {
		log.Printf("listening on %s", *listen)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Print("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
