// Package scraper fetches page titles for saved links. The fetch is
// best-effort with a bounded timeout; on any failure a title derived from
// the URL itself is returned, so callers never see an error.
package scraper

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Scraper fetches page titles over HTTP
type Scraper struct {
	client  *http.Client
	timeout time.Duration
	logger  *logrus.Logger
}

// New creates a scraper with the given per-fetch timeout
func New(timeout time.Duration, logger *logrus.Logger) *Scraper {
	return &Scraper{
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
		logger:  logger,
	}
}

// FetchTitle retrieves the page title of the given URL. Lookup order:
// <title>, og:title, twitter:title, first <h1>. Timeouts, non-2xx
// responses, non-HTML content and missing titles all resolve to the
// fallback title.
func (s *Scraper) FetchTitle(ctx context.Context, pageURL string) string {
	fallback := FallbackTitle(pageURL)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return fallback
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.WithError(err).WithField("url", pageURL).Debug("title fetch failed, using fallback")
		return fallback
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.logger.WithField("status", resp.StatusCode).Debug("title fetch not ok, using fallback")
		return fallback
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		return fallback
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return fallback
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find(`meta[property="og:title"]`).AttrOr("content", ""))
	}
	if title == "" {
		title = strings.TrimSpace(doc.Find(`meta[name="twitter:title"]`).AttrOr("content", ""))
	}
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	if len(title) < 2 {
		return fallback
	}
	return title
}

var numericSegment = regexp.MustCompile(`^\d+$`)

// FallbackTitle derives a deterministic title from the URL alone. The last
// meaningful path segment is humanized and suffixed with the hostname;
// without one the hostname stands on its own.
func FallbackTitle(pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Hostname() == "" {
		return "Untitled Link"
	}

	hostname := strings.TrimPrefix(parsed.Hostname(), "www.")

	var parts []string
	for _, part := range strings.Split(parsed.Path, "/") {
		if part == "" || len(part) <= 2 || numericSegment.MatchString(part) {
			continue
		}
		parts = append(parts, part)
	}

	if len(parts) > 0 {
		last := parts[len(parts)-1]
		last = strings.NewReplacer("-", " ", "_", " ").Replace(last)
		if i := strings.LastIndex(last, "."); i > 0 {
			last = last[:i]
		}
		last = titleCase(last)
		if len(last) > 3 {
			return last + " - " + hostname
		}
	}

	return capitalize(hostname)
}

func titleCase(s string) string {
	return strings.Join(mapWords(strings.Fields(s), capitalize), " ")
}

func mapWords(words []string, f func(string) string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = f(w)
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
