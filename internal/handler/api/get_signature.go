package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/fhuszti/catalog-media-go/internal/logger"
	"github.com/fhuszti/catalog-media-go/internal/port"
	"github.com/fhuszti/catalog-media-go/internal/usecase/ticket"
	"github.com/fhuszti/catalog-media-go/internal/validation"
)

type GetSignatureRequest struct {
	Folder       string `json:"folder" validate:"required,folder"`
	ResourceType string `json:"resource_type" validate:"omitempty,oneof=image video raw auto"`
}

func GetSignatureHandler(svc port.TicketIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		q := r.URL.Query()
		req := GetSignatureRequest{
			Folder:       q.Get("folder"),
			ResourceType: q.Get("resource_type"),
		}
		if req.ResourceType == "" {
			req.ResourceType = "image"
		}

		if errs := validation.ValidateStruct(req); errs != nil {
			errsJSON, err := validation.ErrorsToJson(errs)
			if err != nil {
				WriteError(ctx, w, http.StatusInternalServerError, "Validation error (could not encode details)", fmt.Errorf("encoding validation errors: %w", err))
				return
			}

			RespondRawJSON(w, http.StatusBadRequest, []byte(errsJSON))
			logger.Warnf(ctx, "❌  Validation failed: %s", errsJSON)
			return
		}

		out, err := svc.IssueTicket(ctx, port.IssueTicketInput(req))
		if err != nil {
			switch {
			case errors.Is(err, ticket.ErrFolderNotAllowed):
				WriteError(ctx, w, http.StatusForbidden, fmt.Sprintf("Folder %q is not allowed", req.Folder), nil)
			case errors.Is(err, ticket.ErrResourceTypeNotAllowed):
				WriteError(ctx, w, http.StatusBadRequest, fmt.Sprintf("Resource type %q is not allowed", req.ResourceType), nil)
			default:
				WriteError(ctx, w, http.StatusInternalServerError, "Could not sign upload", err)
			}
			return
		}

		w.Header().Set("Cache-Control", "no-store")
		RespondJSON(w, http.StatusOK, out)
		logger.Infof(ctx, "✅  Signed upload ticket for folder %q", out.Folder)
	}
}
