package handlers

import (
	"log"
	"net/http"
	"trip-logbook-service/internal/api/dto"
	"trip-logbook-service/internal/api/identity"
	"trip-logbook-service/internal/domain"
	"trip-logbook-service/internal/platform/obs"
	"trip-logbook-service/internal/ports"
)

// LogbookHandler exposes the caller's stored logbook.
type LogbookHandler struct {
	Store ports.LogbookStore
}

// Serve handles GET (read history) and DELETE (start a fresh logbook).
func (h *LogbookHandler) Serve(w http.ResponseWriter, r *http.Request) {
	owner, ok := identity.Owner(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "no logbook owner for request")
		return
	}

	switch r.Method {
	case http.MethodGet:
		l, err := h.Store.Read(r.Context(), owner)
		if err != nil {
			log.Printf("req_id=%s read logbook failed: %v", obs.RequestID(r.Context()), err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, r, http.StatusOK, dto.LogbookResponse{LogbookEvents: dto.FromLogbook(l)})

	case http.MethodDelete:
		if err := h.Store.Write(r.Context(), owner, domain.Logbook{}); err != nil {
			log.Printf("req_id=%s clear logbook failed: %v", obs.RequestID(r.Context()), err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		methodNotAllowed(w, r, http.MethodGet+", "+http.MethodDelete)
	}
}
