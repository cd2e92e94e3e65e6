package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophqa/internal/logging"
	"github.com/dmitrijs2005/gophqa/internal/server/services"
)

// StatusFor maps a service error kind to its HTTP status.
func StatusFor(k services.Kind) int {
	switch k {
	case services.KindUnauthenticated:
		return http.StatusUnauthorized
	case services.KindForbidden:
		return http.StatusForbidden
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindDataQuery, services.KindMissingParameters, services.KindParse, services.KindInvalidInput:
		return http.StatusUnprocessableEntity
	case services.KindModerationClientFault:
		return http.StatusInternalServerError
	case services.KindModerationServiceFault, services.KindUpstream:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// publicMessage is the text a caller sees. Dependency failures never expose
// provider or driver detail.
func publicMessage(err error) string {
	var e *services.Error
	if !errors.As(err, &e) {
		return "internal server error"
	}
	switch e.Kind {
	case services.KindMissingParameters, services.KindParse, services.KindInvalidInput:
		if e.Err != nil {
			return e.Err.Error()
		}
	case services.KindModerationClientFault, services.KindModerationServiceFault, services.KindUpstream:
		return "service temporarily unavailable"
	}
	return e.Kind.String()
}

func writeError(ctx context.Context, log logging.Logger, w http.ResponseWriter, err error) {
	kind := services.KindOf(err)
	status := StatusFor(kind)

	switch {
	case kind == services.KindModerationClientFault:
		log.Error(ctx, "request failed", "status", status, "error", err)
	case status >= http.StatusInternalServerError:
		log.Warn(ctx, "request failed", "status", status, "error", err)
	default:
		log.Debug(ctx, "request rejected", "status", status, "error", err)
	}

	writeJSON(w, status, errorResponse{Error: publicMessage(err)})
}
