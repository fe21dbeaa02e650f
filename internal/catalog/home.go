package catalog

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/mmcdole/reel/internal/domain"
)

// LoadHome fetches the featured movie and the three home rows in parallel.
// The first failure cancels the rest and is returned.
func (c *Client) LoadHome(ctx context.Context) (*domain.Home, error) {
	var (
		home                        domain.Home
		popular, topRated, upcoming *domain.Page
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := c.Featured(ctx)
		home.Featured = m
		return err
	})
	g.Go(func() (err error) {
		popular, err = c.Popular(ctx, 1)
		return err
	})
	g.Go(func() (err error) {
		topRated, err = c.TopRated(ctx, 1)
		return err
	})
	g.Go(func() (err error) {
		upcoming, err = c.Upcoming(ctx, 1)
		return err
	})

	if err := g.Wait(); err != nil {
		c.logger.Error("failed to load home rows", "error", err)
		return nil, err
	}

	home.Popular = popular.Results
	home.TopRated = topRated.Results
	home.Upcoming = upcoming.Results
	c.logger.Debug("loaded home rows",
		"popular", len(home.Popular),
		"topRated", len(home.TopRated),
		"upcoming", len(home.Upcoming))
	return &home, nil
}
