// Command smoke sends concurrent recommendation requests to a running
// service and checks every playlist it returns.
package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/crosstune/internal/smoketest"
	"github.com/okian/crosstune/pkg/logger"
)

// Default configuration constants.
const (
	defaultRequests  = 1000
	defaultWorkers   = 2 // multiplier for runtime.NumCPU()
	defaultPoolSize  = 10
	defaultSelection = 3
	defaultK         = 20
	defaultTimeout   = 10 * time.Second
	defaultReadyWait = 2 * time.Minute
	defaultRunLimit  = 10 * time.Minute
)

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:9080", "Base URL of the service")
		requests  = flag.Int("requests", defaultRequests, "Number of recommendation requests to send")
		workers   = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		pool      = flag.Int("pool", defaultPoolSize, "Titles sampled for building selections")
		selection = flag.Int("selection", defaultSelection, "Titles per request")
		k         = flag.Int("k", defaultK, "Tracks per playlist")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		readyWait = flag.Duration("ready-wait", defaultReadyWait, "How long to wait for the catalog to load")
		seed      = flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed for building selections")
		verbose   = flag.Bool("verbose", false, "Log every failed request")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunLimit)
	defer cancel()

	config := &smoketest.Config{
		BaseURL:   *baseURL,
		Requests:  *requests,
		Workers:   *workers,
		PoolSize:  *pool,
		Selection: *selection,
		K:         *k,
		Timeout:   *timeout,
		ReadyWait: *readyWait,
		Seed:      *seed,
		Verbose:   *verbose,
	}

	if _, err := smoketest.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Smoke run failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
