package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/eunio-health/eunio-sync/internal/logger"
	"github.com/eunio-health/eunio-sync/internal/utils"
	"github.com/eunio-health/eunio-sync/models"
)

func (h *Handler) push(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.push").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	var req models.PushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.push").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	resp, err := h.services.SyncService.Push(ctx, userID, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.push").Msg("error applying push batch")
		http.Error(w, "error applying push batch", statusFromError(err))
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) pull(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.pull").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	q, err := pullQueryFromRequest(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.pull").Msg("invalid pull query")
		http.Error(w, "invalid pull query", http.StatusBadRequest)
		return
	}

	resp, err := h.services.SyncService.Pull(ctx, userID, q)
	if err != nil {
		log.Err(err).Str("func", "*Handler.pull").Msg("error listing entities")
		http.Error(w, "error listing entities", statusFromError(err))
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

// ping reports server liveness. The connectivity watcher on the client polls
// it to gate automatic sync triggers.
func (h *Handler) ping(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func pullQueryFromRequest(r *http.Request) (models.PullQuery, error) {
	q := models.PullQuery{
		Type:    models.EntityType(r.URL.Query().Get("type")),
		AfterID: r.URL.Query().Get("after_id"),
	}

	if raw := r.URL.Query().Get("since"); raw != "" {
		since, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return models.PullQuery{}, err
		}
		q.Since = since
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return models.PullQuery{}, err
		}
		q.Limit = limit
	}

	return q, nil
}
