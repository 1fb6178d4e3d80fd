package smoketest

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/crosstune/pkg/logger"
)

const (
	readyPollInterval    = 500 * time.Millisecond
	percentageMultiplier = 100
)

// ErrInvariant reports that at least one playlist broke an invariant.
var ErrInvariant = errors.New("playlist invariant violated")

// Run executes a complete smoke run and returns its statistics.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	if config.Workers < 1 || config.Selection < 1 || config.K < 1 || config.PoolSize < config.Selection {
		return nil, fmt.Errorf("invalid smoke config: workers=%d selection=%d k=%d pool=%d",
			config.Workers, config.Selection, config.K, config.PoolSize)
	}

	stats := &Stats{StartTime: time.Now()}
	log := logger.Get().Named("smoke")

	log.Info(ctx, "starting smoke run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("requests", config.Requests),
		logger.Int("workers", config.Workers),
		logger.Int("selection", config.Selection),
		logger.Int("k", config.K))

	client := newHTTPClient(config.Timeout)

	if err := waitReady(ctx, client, config); err != nil {
		return nil, fmt.Errorf("service readiness check failed: %w", err)
	}

	pool, err := samplePool(ctx, client, config)
	if err != nil {
		return nil, fmt.Errorf("title sampling failed: %w", err)
	}

	submit(ctx, client, config, pool, stats, log)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, log, stats)

	if stats.Violations > 0 {
		return stats, fmt.Errorf("%w: %d responses", ErrInvariant, stats.Violations)
	}
	return stats, nil
}

// waitReady polls /readyz until it answers 200 or ReadyWait elapses.
func waitReady(ctx context.Context, client *httpClient, config *Config) error {
	deadline := time.Now().Add(config.ReadyWait)
	url := config.BaseURL + "/readyz"

	for {
		status, err := client.getJSON(ctx, url, nil)
		if err == nil && status == http.StatusOK {
			return nil
		}
		if time.Now().After(deadline) {
			if err != nil {
				return err
			}
			return fmt.Errorf("not ready, last status %d", status)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(readyPollInterval):
		}
	}
}

func samplePool(ctx context.Context, client *httpClient, config *Config) ([]string, error) {
	var resp sampleResponse
	url := config.BaseURL + "/api/v1/movies/sample?n=" + strconv.Itoa(config.PoolSize)
	status, err := client.getJSON(ctx, url, &resp)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("sample returned status %d", status)
	}
	if len(resp.Titles) < config.Selection {
		return nil, fmt.Errorf("sample returned %d titles, need %d", len(resp.Titles), config.Selection)
	}
	return resp.Titles, nil
}

// submit sends Requests recommendation requests through a worker pool.
func submit(ctx context.Context, client *httpClient, config *Config, pool []string, stats *Stats, log logger.Logger) {
	url := config.BaseURL + "/api/v1/recommendations"

	var submitted, successful, rejected, failed, violations int64

	jobs := make(chan int, config.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < config.Workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			rng := rand.New(rand.NewPCG(config.Seed, uint64(workerID)))

			for range jobs {
				if ctx.Err() != nil {
					return
				}
				req := recommendRequest{Titles: pick(rng, pool, config.Selection), K: config.K}

				var playlist Playlist
				status, err := client.postJSON(ctx, url, req, &playlist)
				atomic.AddInt64(&submitted, 1)

				switch {
				case err != nil || status >= http.StatusInternalServerError:
					atomic.AddInt64(&failed, 1)
					if config.Verbose {
						log.Warn(ctx, "request failed", logger.Int("status", status), logger.Any("error", err))
					}
				case status != http.StatusOK:
					atomic.AddInt64(&rejected, 1)
				default:
					if verr := verifyPlaylist(playlist, config.K); verr != nil {
						atomic.AddInt64(&violations, 1)
						log.Error(ctx, "invalid playlist",
							logger.String("request_id", playlist.RequestID),
							logger.Strings("titles", req.Titles),
							logger.Error(verr))
						continue
					}
					atomic.AddInt64(&successful, 1)
				}
			}
		}(w)
	}

	go func() {
		defer close(jobs)
		for i := 0; i < config.Requests; i++ {
			select {
			case <-ctx.Done():
				return
			case jobs <- i:
			}
		}
	}()

	wg.Wait()

	stats.Submitted = int(atomic.LoadInt64(&submitted))
	stats.Successful = int(atomic.LoadInt64(&successful))
	stats.Rejected = int(atomic.LoadInt64(&rejected))
	stats.Failed = int(atomic.LoadInt64(&failed))
	stats.Violations = int(atomic.LoadInt64(&violations))
}

// pick draws n distinct titles from pool.
func pick(rng *rand.Rand, pool []string, n int) []string {
	idx := rng.Perm(len(pool))[:n]
	out := make([]string, n)
	for i, j := range idx {
		out[i] = pool[j]
	}
	return out
}

func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	var successRate, requestsPerSecond float64
	if stats.Submitted > 0 {
		successRate = float64(stats.Successful) / float64(stats.Submitted) * percentageMultiplier
	}
	if stats.Duration > 0 {
		requestsPerSecond = float64(stats.Submitted) / stats.Duration.Seconds()
	}

	log.Info(ctx, "final statistics",
		logger.Int("submitted", stats.Submitted),
		logger.Int("successful", stats.Successful),
		logger.Int("rejected", stats.Rejected),
		logger.Int("failed", stats.Failed),
		logger.Int("violations", stats.Violations),
		logger.Duration("duration", stats.Duration),
		logger.Float64("successRate", successRate),
		logger.Float64("requestsPerSecond", requestsPerSecond))
}
