package httpapi

import (
	"net/http"

	"github.com/riskibarqy/pl-predictor/internal/usecase"
)

func (h *Handler) ListFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixtures")
	defer span.End()

	gameweek, err := gameweekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	views, err := h.fixtureService.ListFixtures(ctx, gameweek)
	if err != nil {
		h.logFailure(ctx, "list fixtures failed", err, "gameweek", gameweek)
		writeError(ctx, w, err)
		return
	}

	items := make([]fixtureDTO, 0, len(views))
	for _, view := range views {
		items = append(items, fixtureToDTO(view.Fixture, view.Result))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetEntrySheet(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEntrySheet")
	defer span.End()

	gameweek, err := gameweekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	sheet, err := h.predictionService.GetEntrySheet(ctx, gameweek, r.URL.Query().Get("person"))
	if err != nil {
		h.logFailure(ctx, "get entry sheet failed", err, "gameweek", gameweek)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, entrySheetToDTO(sheet))
}

func (h *Handler) SavePredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SavePredictions")
	defer span.End()

	gameweek, err := gameweekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req savePredictionsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	entries := make(map[int64]usecase.RawScore, len(req.Entries))
	for _, entry := range req.Entries {
		entries[entry.FixtureID] = usecase.RawScore{Home: string(entry.Home), Away: string(entry.Away)}
	}

	out, err := h.predictionService.SavePredictions(ctx, usecase.SavePredictionsInput{
		Gameweek:   gameweek,
		PersonName: req.PersonName,
		Entries:    entries,
	})
	if err != nil {
		h.logFailure(ctx, "save predictions failed", err, "gameweek", gameweek)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, savePredictionsDTO{
		Gameweek:   gameweek,
		PersonName: out.PersonName,
		Saved:      out.Saved,
		Skipped:    out.Skipped,
	})
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	gameweek, err := gameweekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.leaderboardService.Leaderboard(ctx, gameweek)
	if err != nil {
		h.logFailure(ctx, "get leaderboard failed", err, "gameweek", gameweek)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(gameweek, rows))
}
