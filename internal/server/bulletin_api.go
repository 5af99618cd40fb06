package server

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fukayatti/api.fukayatti0.dev/internal/calendar"
	"github.com/fukayatti/api.fukayatti0.dev/internal/filter"
	"github.com/fukayatti/api.fukayatti0.dev/internal/httpresponse"
	"github.com/fukayatti/api.fukayatti0.dev/internal/logger"
	"github.com/fukayatti/api.fukayatti0.dev/internal/scraper"
)

// BulletinAPI registers the bulletin endpoints on a router.
type BulletinAPI struct {
	Router       fiber.Router
	Scraper      *scraper.Scraper
	FetchTimeout time.Duration
}

// Register mounts the bulletin routes. Both endpoints accept the same
// query parameters: class, kind, date and q.
func (api *BulletinAPI) Register() {
	api.Router.Get("/kyuko", func(c *fiber.Ctx) error {
		bl, err := api.fetch(c)
		if err != nil {
			return upstreamError(c, err)
		}

		f := filter.FromQueryParams(c.Query("class"), c.Query("kind"), c.Query("date"), c.Query("q"))
		records := f.Apply(bl.Records)

		return httpresponse.ApplySuccessToResponse(c, httpresponse.Meta{
			SourceURL:    bl.SourceURL,
			LastModified: bl.LastModified,
			Title:        bl.Title,
		}, records)
	})

	api.Router.Get("/kyuko/calendar", func(c *fiber.Ctx) error {
		bl, err := api.fetch(c)
		if err != nil {
			return upstreamError(c, err)
		}

		f := filter.FromQueryParams(c.Query("class"), c.Query("kind"), c.Query("date"), c.Query("q"))
		ics := calendar.Generate(f.Apply(bl.Records), bl.SourceURL)

		c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
		return c.SendString(ics)
	})
}

func (api *BulletinAPI) fetch(c *fiber.Ctx) (*scraper.Bulletin, error) {
	ctx, cancel := context.WithTimeout(c.UserContext(), api.FetchTimeout)
	defer cancel()

	start := time.Now()
	bl, err := api.Scraper.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	logger.RecordTiming("upstream.fetch", time.Since(start))
	logger.SetGauge("bulletin.records", float64(len(bl.Records)))

	return bl, nil
}

func upstreamError(c *fiber.Ctx, err error) error {
	status, message := mapUpstreamError(err)

	logger.IncrCounter("upstream.errors")
	logger.Error("bulletin fetch failed", logger.Fields{"status": status}, err)

	return httpresponse.ApplyErrorToResponse(c, status, message, err)
}

// mapUpstreamError translates a fetch failure into the status and
// message served to API clients.
func mapUpstreamError(err error) (int, string) {
	switch {
	case errors.Is(err, scraper.ErrNotFound):
		return fiber.StatusNotFound, "not found"
	case scraper.IsTimeout(err):
		return fiber.StatusGatewayTimeout, "gateway timeout"
	case errors.Is(err, scraper.ErrUpstreamStatus):
		return fiber.StatusBadGateway, "upstream error"
	default:
		return fiber.StatusInternalServerError, "internal error"
	}
}
