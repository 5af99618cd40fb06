package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"

	"github.com/fukayatti/api.fukayatti0.dev/internal/bulletin"
)

const (
	DefaultBulletinURL = "https://www.ibaraki-ct.ac.jp/info/kyuko/"
	DefaultUserAgent   = "kyuko-api/1.0 (github.com/fukayatti/api.fukayatti0.dev)"
	DefaultTimeout     = 30 * time.Second

	// DefaultMaxBodyBytes caps how much of the upstream body is read.
	// Bulletin pages are tens of kilobytes; anything near this limit is
	// not the page we expect.
	DefaultMaxBodyBytes = 2 << 20

	// DefaultRequestsPerSec keeps the scraper polite toward the school
	// server, since every API request triggers an upstream fetch.
	DefaultRequestsPerSec = 1.0
	defaultBurst          = 3
)

var (
	// ErrNotFound reports that the bulletin page does not exist upstream.
	ErrNotFound = errors.New("bulletin not found upstream")

	// ErrUpstreamStatus reports a non-success upstream response other
	// than 404.
	ErrUpstreamStatus = errors.New("unexpected upstream status")
)

// Options configure a Scraper. Zero values fall back to the package
// defaults.
type Options struct {
	URL            string
	UserAgent      string
	Timeout        time.Duration
	MaxBodyBytes   int64
	RequestsPerSec float64
}

// Scraper fetches and parses the school bulletin page.
type Scraper struct {
	client    *http.Client
	url       string
	userAgent string
	maxBytes  int64
	limiter   *rate.Limiter
}

// New creates a Scraper from the given options.
func New(opts Options) *Scraper {
	if opts.URL == "" {
		opts.URL = DefaultBulletinURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.RequestsPerSec <= 0 {
		opts.RequestsPerSec = DefaultRequestsPerSec
	}

	return &Scraper{
		client: &http.Client{
			Timeout: opts.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		url:       opts.URL,
		userAgent: opts.UserAgent,
		maxBytes:  opts.MaxBodyBytes,
		limiter:   rate.NewLimiter(rate.Limit(opts.RequestsPerSec), defaultBurst),
	}
}

// URL returns the bulletin URL the scraper is bound to.
func (s *Scraper) URL() string {
	return s.url
}

// Bulletin is one fetched copy of the upstream bulletin page.
type Bulletin struct {
	Records      []bulletin.Record
	Title        string
	SourceURL    string
	LastModified string
	FetchedAt    time.Time
}

// Fetch retrieves the bulletin page with a single bounded attempt and
// parses it into records. A 404 upstream maps to ErrNotFound and other
// non-success statuses map to ErrUpstreamStatus; both are recognizable
// with errors.Is. The context also bounds the wait imposed by the
// politeness rate limit.
func (s *Scraper) Fetch(ctx context.Context) (*Bulletin, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch bulletin: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: %d %s", ErrUpstreamStatus, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	// School pages still ship in legacy encodings now and then; decode
	// by the declared charset instead of assuming UTF-8.
	body, err := charset.NewReader(io.LimitReader(resp.Body, s.maxBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("detect charset: %w", err)
	}

	b, err := Parse(body)
	if err != nil {
		return nil, err
	}
	b.SourceURL = resp.Request.URL.String()
	b.LastModified = resp.Header.Get("Last-Modified")
	return b, nil
}

// Parse decomposes a bulletin HTML document into records without any
// network access, for tests and local files.
func Parse(r io.Reader) (*Bulletin, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	return &Bulletin{
		Records:   bulletin.Parse(paragraphs(doc)),
		Title:     strings.TrimSpace(doc.Find("title").First().Text()),
		FetchedAt: time.Now().UTC(),
	}, nil
}

// paragraphs decomposes the document into parser input. The semantic
// content container is preferred over the whole body so that navigation
// and footer paragraphs cannot pollute the date context.
func paragraphs(doc *goquery.Document) []bulletin.Paragraph {
	content := doc.Selection
	for _, tag := range []string{"main", "article", "body"} {
		if sel := doc.Find(tag); sel.Length() > 0 {
			content = sel.First()
			break
		}
	}

	var out []bulletin.Paragraph
	content.Find("p").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return
		}
		out = append(out, bulletin.Paragraph{
			Text:     text,
			Emphasis: sel.Find("strong, b, em").Length() > 0,
		})
	})
	return out
}

// IsTimeout reports whether err stems from a deadline rather than an
// upstream verdict, covering both the client timeout and a context
// deadline.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
