package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/taskflow/taskflow-go/internal/core/domain"
)

// JobGateway implements ports.JobGateway over the job-search endpoints.
type JobGateway struct {
	c *Client
}

func NewJobGateway(c *Client) *JobGateway {
	return &JobGateway{c: c}
}

// Search queries /api/jobs with keywords; without keywords it falls back to
// /api/jobs/list, the most recently fetched results.
func (g *JobGateway) Search(ctx context.Context, keywords string) ([]domain.Job, error) {
	path := "/api/jobs/list"
	query := url.Values{}
	if keywords != "" {
		path = "/api/jobs"
		query.Set("keywords", keywords)
	}

	var jobs []domain.Job
	err := g.c.do(ctx, requestOpts{
		method: http.MethodGet,
		path:   path,
		query:  query,
		out:    &jobs,
		authed: true,
	})
	return jobs, err
}
