// Package http provides http transport for analysis runs
package http

import (
	stdhttp "net/http"
	"strconv"

	"spoilerguard/internal/modkit/httpkit"
	perr "spoilerguard/internal/platform/errors"
	"spoilerguard/internal/services/runs/domain"
	svc "spoilerguard/internal/services/runs/service"
)

// Register mounts runs endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// recent runs for one episode
	httpkit.Get(r, "/{episodeId}", h.byEpisode)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /runs/{episodeId} Runs runsByEpisode
// @Summary Recent analysis runs for an episode
// @Tags Runs
// @Produce json
// @Param episodeId path string true "Episode id"
// @Param limit query int false "Max rows (1..200)"
// @Success 200 {array} domain.RunSummary "ok"
// @Failure 422 {object} httpkit.Envelope "bad limit"
// @Router /runs/{episodeId} [get]
func (h *handlers) byEpisode(r *stdhttp.Request) (any, error) {
	in := domain.ByEpisodeInput{EpisodeID: httpkit.Param(r, "episodeId")}
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return nil, perr.WithField(perr.InvalidArgf("limit must be a positive integer"), "limit")
		}
		in.Limit = n
	}
	return h.svc.ByEpisode(r.Context(), in)
}
