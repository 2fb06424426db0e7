// Command memstore is a small demonstration driver for the store package:
// it loads configuration, starts the cleanup worker, and exercises TTL
// entries and mutable key handles.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/kmoz000/shared-memory-store/observability"
	"github.com/kmoz000/shared-memory-store/store"
)

func main() {
	var (
		configFile      = flag.String("config", "", "Path to store config JSON file (optional)")
		cleanupInterval = flag.Int64("cleanup-interval", 0, "Cleanup interval in milliseconds (overrides config)")
		ttl             = flag.Duration("ttl", 2*time.Second, "TTL for the demo's expiring entries")
		observerName    = flag.String("observer", "", `Named observer from the registry (e.g. "noop"); empty builds a slog observer`)
		verbose         = flag.Bool("verbose", false, "Enable verbose logging to stderr")
	)
	flag.Parse()

	cfg := store.DefaultConfig()
	if *configFile != "" {
		loaded, err := store.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = *loaded
	}
	if *cleanupInterval > 0 {
		cfg.CleanupIntervalMs = *cleanupInterval
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	var obs observability.Observer
	if *observerName != "" {
		var err error
		obs, err = observability.GetObserver(*observerName)
		if err != nil {
			log.Fatalf("Failed to resolve observer: %v", err)
		}
	} else {
		obs = observability.NewSlogObserver(logger)
	}

	s := store.New(&cfg, store.WithObserver(obs))
	defer s.Close()

	s.StartCleanupTask()

	s.Set("greeting", "hello")
	s.Set("token", "abc123", store.WithPermanent(false), store.WithMaxAge(*ttl))

	handle, err := s.CreateHandle("alias")
	if err != nil {
		log.Fatalf("Failed to create handle: %v", err)
	}
	s.Set(handle, 42)

	fmt.Printf("size: %d, keys: %v\n", s.Size(), s.Keys())

	if v, ok := s.Get("token"); ok {
		fmt.Printf("token before expiry: %v\n", v)
	}

	handle.Write("renamed")
	if v, ok := s.Get(handle); ok {
		fmt.Printf("handle %s (now %q) still resolves: %v\n", handle.ID(), handle, v)
	}

	time.Sleep(*ttl + 100*time.Millisecond)

	if _, ok := s.Get("token"); !ok {
		fmt.Println("token expired")
	}
	fmt.Printf("size after expiry: %d, live keys: %v\n", s.Size(), s.Keys())

	if s.StopCleanupTask() {
		fmt.Println("cleanup worker stopped")
	}
}
