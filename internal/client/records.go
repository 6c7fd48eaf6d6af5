package client

import (
	"context"
	"net/http"
	"net/url"

	"mindtrack/internal/api"
	"mindtrack/internal/domain/entity"
	"mindtrack/internal/domain/service"
)

var _ service.RecordsAPI = (*Client)(nil)

// FetchCatalog returns the caller's habits and active goal count
func (c *Client) FetchCatalog(ctx context.Context) (*entity.Catalog, error) {
	var resp api.CatalogResponse
	if err := c.do(ctx, http.MethodGet, api.PathCatalog, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FetchHabitRecords returns habit records inside rng
func (c *Client) FetchHabitRecords(ctx context.Context, rng entity.DateRange) ([]entity.HabitRecord, error) {
	var resp api.HabitRecordsResponse
	if err := c.do(ctx, http.MethodGet, api.PathHabitRecords, rangeQuery(rng), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Records, nil
}

// FetchMoodRecords returns mood records inside rng
func (c *Client) FetchMoodRecords(ctx context.Context, rng entity.DateRange) ([]entity.MoodRecord, error) {
	var resp api.MoodRecordsResponse
	if err := c.do(ctx, http.MethodGet, api.PathMoodRecords, rangeQuery(rng), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Records, nil
}

func rangeQuery(rng entity.DateRange) url.Values {
	if rng.IsZero() {
		return nil
	}
	q := url.Values{}
	q.Set(api.ParamStartDate, rng.Start.String())
	q.Set(api.ParamEndDate, rng.End.String())
	return q
}
