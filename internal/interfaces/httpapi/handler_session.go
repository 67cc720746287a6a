package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/pl-predictor/internal/infrastructure/session"
	"github.com/riskibarqy/pl-predictor/internal/usecase"
)

// SessionStatus reports whether the caller holds a valid session.
func (h *Handler) SessionStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SessionStatus")
	defer span.End()

	token := sessionToken(r)
	if token == "" {
		writeSuccess(ctx, w, http.StatusOK, sessionDTO{})
		return
	}
	principal, err := h.sessions.Verify(ctx, token)
	if err != nil {
		writeSuccess(ctx, w, http.StatusOK, sessionDTO{})
		return
	}
	writeSuccess(ctx, w, http.StatusOK, sessionDTO{
		LoggedIn:  true,
		Username:  principal.Username,
		ExpiresAt: formatTime(principal.ExpiresAt),
	})
}

// Login accepts a JSON body or a classic form post.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Login")
	defer span.End()

	var req loginRequest
	if strings.HasPrefix(strings.ToLower(r.Header.Get("Content-Type")), "application/json") {
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
	} else {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
		if err := r.ParseForm(); err != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid form body: %v", usecase.ErrInvalidInput, err))
			return
		}
		req.Username = r.PostFormValue("username")
		req.Password = r.PostFormValue("password")
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	token, principal, err := h.sessions.Login(ctx, req.Username, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "login rejected", "remote_addr", r.RemoteAddr)
		writeError(ctx, w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  principal.ExpiresAt,
		MaxAge:   int(h.sessions.TTL().Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	h.logger.InfoContext(ctx, "login succeeded", "username", principal.Username)

	writeSuccess(ctx, w, http.StatusOK, sessionDTO{
		LoggedIn:  true,
		Username:  principal.Username,
		ExpiresAt: formatTime(principal.ExpiresAt),
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Logout")
	defer span.End()

	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	if !wantsJSON(r) {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, sessionDTO{})
}
