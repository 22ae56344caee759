package main

import (
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
)

const (
	baseURL      = "http://127.0.0.1:8080"
	numWorkers   = 50
	testDuration = 10 * time.Second
	historyLimit = 20
)

var cues = []string{"disturbance1", "disturbance2", "reveal"}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

// knownIDs holds prediction ids seen in history responses, used for exports.
var knownIDs struct {
	sync.RWMutex
	ids []string
}

func main() {
	fmt.Println("=== Memento Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s\n\n", numWorkers, testDuration)

	// Wait for server
	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	// Phase 1: everyone presses the button; all but one request per sequence is rejected
	fmt.Println("\n--- Phase 1: Generate storm (POST /api/generate) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doGenerate()
	})

	fmt.Println("\nWaiting 3s for the last sequence to reveal...")
	time.Sleep(3 * time.Second)
	doHistory()

	// Phase 2: page readers
	fmt.Println("\n--- Phase 2: Read-heavy load (5% POST, 95% GET) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.05:
			return doGenerate()
		case r < 0.40:
			return doHistory()
		case r < 0.70:
			return doCurrent()
		case r < 0.85:
			return doExport(rng)
		case r < 0.95:
			return doCue(rng)
		default:
			return doHealth()
		}
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-28s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + repeat("-", 94))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		avg := avgDuration(s.latencies)
		p50 := percentile(s.latencies, 0.50)
		p95 := percentile(s.latencies, 0.95)
		p99 := percentile(s.latencies, 0.99)

		fmt.Printf("  %-28s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors, fmtDur(avg), fmtDur(p50), fmtDur(p95), fmtDur(p99))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + repeat("-", 94))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func get(endpoint, url string, ok ...int) result {
	start := time.Now()
	resp, err := httpClient.Get(url)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, !accepted(resp.StatusCode, ok)}
}

func accepted(code int, ok []int) bool {
	for _, c := range ok {
		if c == code {
			return true
		}
	}
	return false
}

func doGenerate() result {
	start := time.Now()
	resp, err := httpClient.Post(baseURL+"/api/generate", "application/json", nil)
	lat := time.Since(start)
	if err != nil {
		return result{"POST /api/generate", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"POST /api/generate", resp.StatusCode, lat, !accepted(resp.StatusCode, []int{http.StatusAccepted, http.StatusConflict})}
}

func doHistory() result {
	start := time.Now()
	resp, err := httpClient.Get(fmt.Sprintf("%s/api/history?limit=%d", baseURL, historyLimit))
	lat := time.Since(start)
	if err != nil {
		return result{"GET /api/history", 0, lat, true}
	}
	defer resp.Body.Close()

	var items []struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return result{"GET /api/history", resp.StatusCode, lat, true}
	}
	if len(items) > 0 {
		knownIDs.Lock()
		knownIDs.ids = knownIDs.ids[:0]
		for _, it := range items {
			knownIDs.ids = append(knownIDs.ids, it.ID)
		}
		knownIDs.Unlock()
	}
	return result{"GET /api/history", resp.StatusCode, lat, resp.StatusCode != http.StatusOK}
}

func doCurrent() result {
	return get("GET /api/current", baseURL+"/api/current", http.StatusOK, http.StatusNoContent)
}

func doExport(rng *rand.Rand) result {
	knownIDs.RLock()
	if len(knownIDs.ids) == 0 {
		knownIDs.RUnlock()
		return doHistory()
	}
	id := knownIDs.ids[rng.Intn(len(knownIDs.ids))]
	knownIDs.RUnlock()
	return get("GET /api/predictions/{id}/image", baseURL+"/api/predictions/"+id+"/image", http.StatusOK, http.StatusNoContent)
}

func doCue(rng *rand.Rand) result {
	cue := cues[rng.Intn(len(cues))]
	return get("GET /api/cues/{cue}", baseURL+"/api/cues/"+cue, http.StatusOK, http.StatusNoContent)
}

func doHealth() result {
	return get("GET /health", baseURL+"/health", http.StatusOK)
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
