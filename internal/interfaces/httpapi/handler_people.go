package httpapi

import (
	"net/http"
)

func (h *Handler) ListPeople(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPeople")
	defer span.End()

	people, err := h.personService.ListPeople(ctx)
	if err != nil {
		h.logFailure(ctx, "list people failed", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]personDTO, 0, len(people))
	for _, item := range people {
		items = append(items, personToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

// AddPerson is idempotent. A blank name is accepted and ignored.
func (h *Handler) AddPerson(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddPerson")
	defer span.End()

	var req addPersonRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	name, created, err := h.personService.AddPerson(ctx, req.Name)
	if err != nil {
		h.logFailure(ctx, "add person failed", err)
		writeError(ctx, w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeSuccess(ctx, w, status, addPersonDTO{Name: name, Created: created})
}
