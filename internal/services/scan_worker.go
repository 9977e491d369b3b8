package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/cardscout/card-arbitrage/internal/analysis"
	"github.com/cardscout/card-arbitrage/internal/metrics"
)

const (
	defaultScanInterval = 30 * time.Minute
	defaultMaxPages     = 2
	maxConcurrentItems  = 4
)

// ScanWorker walks the configured search terms on an interval, runs every
// result through the analysis pipeline, and persists valuable leads.
type ScanWorker struct {
	buyee    *BuyeeService
	analyzer *analysis.Analyzer
	ai       *AIAnalyzerService
	images   *ImageAnalyzerService
	leads    *LeadService

	searchTerms  []string
	scanInterval time.Duration
	maxPages     int
	mu           sync.RWMutex

	// Stats
	lastScanTime     time.Time
	listingsScanned  int
	leadsFound       int
	lastScanDuration time.Duration
	scanning         bool
}

// ScanStatus is the worker's state as reported by the API.
type ScanStatus struct {
	Scanning         bool      `json:"scanning"`
	LastScanTime     time.Time `json:"last_scan_time"`
	NextScanTime     time.Time `json:"next_scan_time"`
	LastScanDuration string    `json:"last_scan_duration"`
	ListingsScanned  int       `json:"listings_scanned"`
	LeadsFound       int       `json:"leads_found"`
	SearchTerms      []string  `json:"search_terms"`
}

func NewScanWorker(buyee *BuyeeService, analyzer *analysis.Analyzer, ai *AIAnalyzerService, images *ImageAnalyzerService, leads *LeadService, searchTerms []string) *ScanWorker {
	return &ScanWorker{
		buyee:        buyee,
		analyzer:     analyzer,
		ai:           ai,
		images:       images,
		leads:        leads,
		searchTerms:  searchTerms,
		scanInterval: defaultScanInterval,
		maxPages:     defaultMaxPages,
	}
}

// Start begins the background scan loop. One batch runs immediately.
func (w *ScanWorker) Start(ctx context.Context) {
	log.Printf("Scan worker started: %d search terms every %v", len(w.searchTerms), w.scanInterval)

	w.ScanBatch(ctx)

	ticker := time.NewTicker(w.scanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Scan worker stopping...")
			return
		case <-ticker.C:
			w.ScanBatch(ctx)
		}
	}
}

// ScanBatch runs one pass over every search term. Listings within a term's
// result pages are analyzed concurrently, bounded by a semaphore so the
// detail fetcher's rate limit stays the throttle, not goroutine count.
func (w *ScanWorker) ScanBatch(ctx context.Context) {
	w.mu.Lock()
	if w.scanning {
		w.mu.Unlock()
		log.Println("Scan worker: previous batch still running, skipping")
		return
	}
	w.scanning = true
	w.mu.Unlock()

	start := time.Now()
	scanned := 0
	found := 0

	sem := make(chan struct{}, maxConcurrentItems)
	var wg sync.WaitGroup
	var countMu sync.Mutex

	for _, term := range w.searchTerms {
		if ctx.Err() != nil {
			break
		}
		for page := 1; page <= w.maxPages; page++ {
			listings, err := w.buyee.Search(ctx, term, page)
			if err != nil {
				log.Printf("Scan worker: search failed for %q page %d: %v", term, page, err)
				metrics.ScanErrorsTotal.WithLabelValues("search").Inc()
				break
			}
			if len(listings) == 0 {
				break
			}

			for _, listing := range listings {
				listing := listing
				wg.Add(1)
				sem <- struct{}{}
				go func() {
					defer wg.Done()
					defer func() { <-sem }()

					leadSaved := w.processListing(ctx, listing, term)
					countMu.Lock()
					scanned++
					if leadSaved {
						found++
					}
					countMu.Unlock()
				}()
			}
		}
	}
	wg.Wait()

	elapsed := time.Since(start)
	w.mu.Lock()
	w.lastScanTime = time.Now()
	w.lastScanDuration = elapsed
	w.listingsScanned += scanned
	w.leadsFound += found
	w.scanning = false
	w.mu.Unlock()

	metrics.ScanBatchesTotal.Inc()
	metrics.ScanBatchDuration.Observe(elapsed.Seconds())

	log.Printf("Scan worker: batch done in %v (%d listings, %d leads)", elapsed.Round(time.Second), scanned, found)
}

// processListing runs the full tiered pipeline over one listing and
// persists it when it turns out valuable. Returns whether a lead was saved.
func (w *ScanWorker) processListing(ctx context.Context, listing analysis.ListingInput, term string) bool {
	// Cheap pre-check on the title alone. Rejected listings never cost a
	// detail-page fetch or an inference call.
	if quick := w.analyzer.Analyze(listing, nil, nil, nil); quick.Rejected() {
		metrics.ListingsAnalyzedTotal.Inc()
		metrics.ListingsRejectedTotal.Inc()
		return false
	}

	detail, err := w.buyee.FetchDetailPage(ctx, listing.URL)
	if err != nil {
		log.Printf("Scan worker: detail fetch failed for %s: %v", listing.URL, err)
		metrics.ScanErrorsTotal.WithLabelValues("detail").Inc()
		// Analysis still runs on the search-page data alone.
	}

	var verdict *analysis.ImageVerdict
	if w.images != nil && w.images.IsEnabled() && detail != nil && len(detail.Images) > 0 {
		verdict, err = w.images.AnalyzeImages(ctx, detail.Images)
		if err != nil {
			log.Printf("Scan worker: image analysis failed for %s: %v", listing.URL, err)
			metrics.ScanErrorsTotal.WithLabelValues("image").Inc()
		}
	}

	var ai *analysis.AIAnalysis
	if w.ai != nil && w.ai.IsEnabled() && detail != nil {
		ai, err = w.ai.Analyze(ctx, listing.Title, detail.Description, listing.PriceYen)
		if err != nil {
			log.Printf("Scan worker: AI analysis failed for %s: %v", listing.URL, err)
			metrics.ScanErrorsTotal.WithLabelValues("ai").Inc()
		}
	}

	assessment := w.analyzer.Analyze(listing, detail, verdict, ai)
	metrics.ListingsAnalyzedTotal.Inc()
	metrics.ConfidenceHistogram.Observe(assessment.ConfidenceScore)

	if !assessment.IsValuable {
		return false
	}
	metrics.ValuableLeadsTotal.Inc()

	if _, err := w.leads.SaveAssessment(assessment, ai, term); err != nil {
		log.Printf("Scan worker: failed to save lead for %s: %v", listing.URL, err)
		metrics.ScanErrorsTotal.WithLabelValues("persist").Inc()
		return false
	}
	return true
}

// GetStatus returns the current worker state.
func (w *ScanWorker) GetStatus() ScanStatus {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return ScanStatus{
		Scanning:         w.scanning,
		LastScanTime:     w.lastScanTime,
		NextScanTime:     w.lastScanTime.Add(w.scanInterval),
		LastScanDuration: w.lastScanDuration.String(),
		ListingsScanned:  w.listingsScanned,
		LeadsFound:       w.leadsFound,
		SearchTerms:      w.searchTerms,
	}
}
