package handler

import (
	"net/http"

	bloghttp "github.com/brendan.keane/notion-blog/pkg/http"
)

// ServeHTTP runs the handler behind a plain net/http server by converting
// the request to a proxy event and writing the proxy response back.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	event, err := bloghttp.RequestToEvent(r)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to convert request")
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	resp, _ := h.Handle(r.Context(), event)
	if err := bloghttp.WriteResponse(w, resp); err != nil {
		h.logger.Warn().Err(err).Msg("failed to write response")
	}
}
