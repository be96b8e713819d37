// Package http provides http transport for spoiler analysis
package http

import (
	stdhttp "net/http"

	"spoilerguard/internal/modkit/httpkit"
	"spoilerguard/internal/platform/net/http/bind"
	"spoilerguard/internal/services/spoiler/domain"
	svc "spoilerguard/internal/services/spoiler/service"
)

// MaxAnalyzeBody bounds an analyze request, a long episode carries tens of thousands of comments
const MaxAnalyzeBody = 8 << 20

// Register mounts spoiler endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// comment records carry fields the service ignores
	httpkit.PostJSONWith[domain.AnalyzeInput](r, "/analyze", bind.JSONOptions{MaxBytes: MaxAnalyzeBody, AllowUnknown: true}, h.analyze)

	httpkit.PutJSON[domain.APIKeyInput](r, "/api-key", h.apiKey)
	httpkit.Get(r, "/status", h.status)
	httpkit.Delete(r, "/cache/{episodeId}", h.invalidate)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /spoiler/analyze Spoiler spoilerAnalyze
// @Summary Flag spoiler comments for an episode
// @Tags Spoiler
// @Accept json
// @Produce json
// @Param payload body domain.AnalyzeInput true "Episode comments"
// @Success 200 {object} domain.AnalysisResult "ok"
// @Failure 412 {object} httpkit.Envelope "api key not configured"
// @Router /spoiler/analyze [post]
func (h *handlers) analyze(r *stdhttp.Request, in domain.AnalyzeInput) (any, error) {
	return h.svc.Analyze(r.Context(), in)
}

// swagger:route PUT /spoiler/api-key Spoiler spoilerAPIKey
// @Summary Replace the classifier api key
// @Tags Spoiler
// @Accept json
// @Produce json
// @Param payload body domain.APIKeyInput true "Key"
// @Success 200 {object} httpkit.Envelope "ok"
// @Router /spoiler/api-key [put]
func (h *handlers) apiKey(r *stdhttp.Request, in domain.APIKeyInput) (any, error) {
	return nil, h.svc.UpdateAPIKey(r.Context(), in.APIKey)
}

// swagger:route GET /spoiler/status Spoiler spoilerStatus
// @Summary Cache size and credential presence
// @Tags Spoiler
// @Produce json
// @Success 200 {object} domain.Status "ok"
// @Router /spoiler/status [get]
func (h *handlers) status(r *stdhttp.Request) (any, error) {
	return h.svc.Status(r.Context())
}

// swagger:route DELETE /spoiler/cache/{episodeId} Spoiler spoilerInvalidate
// @Summary Drop the cached result of one episode
// @Tags Spoiler
// @Produce json
// @Param episodeId path string true "Episode id"
// @Success 200 {object} domain.InvalidateResult "ok"
// @Router /spoiler/cache/{episodeId} [delete]
func (h *handlers) invalidate(r *stdhttp.Request) (any, error) {
	removed, err := h.svc.Invalidate(r.Context(), httpkit.Param(r, "episodeId"))
	if err != nil {
		return nil, err
	}
	return domain.InvalidateResult{Removed: removed}, nil
}
