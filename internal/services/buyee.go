package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/cardscout/card-arbitrage/internal/analysis"
)

const (
	buyeeBaseURL     = "https://buyee.jp"
	buyeeTimeout     = 15 * time.Second
	detailCacheSize  = 200
	buyeeUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	maxResponseBytes = 4 * 1024 * 1024
)

// Detail pages are served through an overseas proxy; one request every two
// seconds keeps the scraper well under their threshold.
var buyeeRate = rate.Every(2 * time.Second)

// BuyeeService fetches Buyee search result and item detail pages. Pages are
// parsed with fallback selector lists because Buyee's class names drift
// between their frontend deployments.
type BuyeeService struct {
	httpClient  *http.Client
	limiter     *rate.Limiter
	detailCache *lru.Cache[string, *analysis.DetailPage]
}

func NewBuyeeService() *BuyeeService {
	detailCache, err := lru.New[string, *analysis.DetailPage](detailCacheSize)
	if err != nil {
		log.Printf("Failed to create detail page cache: %v", err)
	}

	return &BuyeeService{
		httpClient:  &http.Client{Timeout: buyeeTimeout},
		limiter:     rate.NewLimiter(buyeeRate, 1),
		detailCache: detailCache,
	}
}

// SearchURL builds a search results URL for a query. Sorting by bid count
// surfaces the listings other buyers are already fighting over.
func (s *BuyeeService) SearchURL(query string, page int) string {
	params := url.Values{}
	params.Set("sort", "bids")
	params.Set("order", "d")
	params.Set("translationType", "98")
	params.Set("page", fmt.Sprintf("%d", page))
	return buyeeBaseURL + "/item/search/query/" + url.PathEscape(query) + "?" + params.Encode()
}

// Search fetches one page of results for a query.
func (s *BuyeeService) Search(ctx context.Context, query string, page int) ([]analysis.ListingInput, error) {
	html, err := s.fetch(ctx, s.SearchURL(query, page))
	if err != nil {
		return nil, fmt.Errorf("search %q page %d: %w", query, page, err)
	}
	return ParseSearchPage(html)
}

// FetchDetailPage downloads and parses an item's detail page. Results are
// cached by URL so re-scans of the same listing cost nothing.
func (s *BuyeeService) FetchDetailPage(ctx context.Context, itemURL string) (*analysis.DetailPage, error) {
	if s.detailCache != nil {
		if cached, ok := s.detailCache.Get(itemURL); ok {
			return cached, nil
		}
	}

	html, err := s.fetch(ctx, itemURL)
	if err != nil {
		return nil, fmt.Errorf("detail page %s: %w", itemURL, err)
	}

	detail, err := ParseDetailPage(html)
	if err != nil {
		return nil, fmt.Errorf("detail page %s: %w", itemURL, err)
	}

	if s.detailCache != nil {
		s.detailCache.Add(itemURL, detail)
	}
	return detail, nil
}

func (s *BuyeeService) fetch(ctx context.Context, pageURL string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", buyeeUserAgent)
	req.Header.Set("Accept-Language", "ja,en-US;q=0.9,en;q=0.8")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// ParseSearchPage extracts listing summaries from a search results page.
func ParseSearchPage(html string) ([]analysis.ListingInput, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var listings []analysis.ListingInput
	doc.Find("div.item-card, li.itemCard").Each(func(i int, card *goquery.Selection) {
		title := strings.TrimSpace(card.Find(".item-card__title, .itemCard__itemName").First().Text())
		priceText := strings.TrimSpace(card.Find(".item-card__price, .g-price").First().Text())
		href, _ := card.Find("a.item-card__link, a.itemCard__itemName, a").First().Attr("href")

		if title == "" || href == "" {
			return
		}
		if strings.HasPrefix(href, "/") {
			href = buyeeBaseURL + href
		}

		listing := analysis.ListingInput{
			Title:    title,
			PriceYen: analysis.ParsePrice(priceText),
			URL:      href,
		}
		if src, ok := card.Find("img").First().Attr("src"); ok && src != "" {
			listing.ImageURLs = append(listing.ImageURLs, src)
		}
		listings = append(listings, listing)
	})

	return listings, nil
}

// Fallback selector lists for detail pages, tried in order. The first list
// entries are the current Buyee markup; the rest cover older deployments.
var (
	detailDescSelectors = []string{
		"section#auction_item_description",
		"div.item-description",
		"div[class*='description']",
		"section[class*='description']",
		"div[class*='item-detail']",
	}
	detailConditionSelectors = []string{
		"div.item-condition",
		"div[class*='condition']",
		"li[class*='condition']",
		"div[class*='status']",
		"div[class*='rank']",
	}
	detailImageSelectors = []string{
		"img.item-image",
		"img[class*='item-image']",
		"img[class*='main-image']",
		"img[class*='thumbnail']",
	}
)

// ParseDetailPage extracts the description, the seller's condition blurb,
// and image URLs from an item detail page. A page with no recognizable
// description is treated as unparsable.
func ParseDetailPage(html string) (*analysis.DetailPage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	detail := &analysis.DetailPage{}

	for _, selector := range detailDescSelectors {
		if text := strings.TrimSpace(doc.Find(selector).First().Text()); text != "" {
			detail.Description = text
			break
		}
	}
	if detail.Description == "" {
		return nil, fmt.Errorf("no description element found")
	}

	for _, selector := range detailConditionSelectors {
		if text := strings.TrimSpace(doc.Find(selector).First().Text()); text != "" {
			detail.SellerCondition = text
			break
		}
	}

	seen := make(map[string]bool)
	for _, selector := range detailImageSelectors {
		doc.Find(selector).Each(func(i int, img *goquery.Selection) {
			if src, ok := img.Attr("src"); ok && src != "" && !seen[src] {
				seen[src] = true
				detail.Images = append(detail.Images, src)
			}
		})
	}

	return detail, nil
}
