package httpapi

import (
	"net/http"

	"github.com/riskibarqy/pl-predictor/internal/usecase"
)

func (h *Handler) SyncFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncFixtures")
	defer span.End()

	gameweek, err := gameweekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.syncService.SyncFixtures(ctx, gameweek)
	if err != nil {
		h.logFailure(ctx, "sync fixtures failed", err, "gameweek", gameweek)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fixtureSyncDTO{
		Gameweek:           out.Gameweek,
		Fetched:            out.Fetched,
		Skipped:            out.Skipped,
		Inserted:           out.Summary.Inserted,
		Updated:            out.Summary.Updated,
		Removed:            out.Summary.Removed,
		ResultsCleared:     out.Summary.ResultsCleared,
		PredictionsRemoved: out.Summary.PicksRemoved,
	})
}

func (h *Handler) SyncResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncResults")
	defer span.End()

	gameweek, err := gameweekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.syncService.SyncResults(ctx, gameweek)
	if err != nil {
		h.logFailure(ctx, "sync results failed", err, "gameweek", gameweek)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, resultSyncDTO{
		Gameweek: out.Gameweek,
		Fetched:  out.Fetched,
		Finished: out.Finished,
		Updated:  out.Updated,
	})
}

func (h *Handler) RunResync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunResync")
	defer span.End()

	var req resyncRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.syncService.Resync(ctx, usecase.ResyncInput{
		FromGameweek: req.FromGameweek,
		ToGameweek:   req.ToGameweek,
		SyncData:     req.SyncData,
		MaxWorkers:   req.MaxWorkers,
	})
	if err != nil {
		h.logFailure(ctx, "resync failed", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
