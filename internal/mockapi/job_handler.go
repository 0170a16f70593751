package mockapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type JobHandler struct {
	store *Store
}

func NewJobHandler(store *Store) *JobHandler {
	return &JobHandler{store: store}
}

// Search handles GET /api/jobs?keywords=...
func (h *JobHandler) Search(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.SearchJobs(c.QueryParam("keywords")))
}

// List handles GET /api/jobs/list, the no-keywords fallback.
func (h *JobHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.SearchJobs(""))
}
