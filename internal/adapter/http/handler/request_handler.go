package handler

import (
	"fmt"

	"barangay-request-api/internal/adapter/http/dto"
	"barangay-request-api/internal/adapter/http/middleware"
	"barangay-request-api/internal/core/ports"
	"barangay-request-api/pkg/apperror"
	"barangay-request-api/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequestHandler handles document request endpoints.
type RequestHandler struct {
	lifecycleSvc ports.LifecycleService
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(lifecycleSvc ports.LifecycleService) *RequestHandler {
	return &RequestHandler{lifecycleSvc: lifecycleSvc}
}

// Submit handles POST /api/requests. Public, no auth required; when an
// operator submits on behalf of a walk-in their id lands in the audit entry.
func (h *RequestHandler) Submit(c *gin.Context) {
	var body dto.SubmitRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&body)

	requester, err := body.Requester.Payload()
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	submit := ports.SubmitRequest{
		DocumentType: body.DocumentType,
		Requester:    requester,
		Origin:       c.ClientIP(),
	}
	if identity := middleware.IdentityFromContext(c); identity != nil {
		submit.ActorID = &identity.ID
	}

	rec, err := h.lifecycleSvc.SubmitRequest(c.Request.Context(), submit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Document request submitted successfully", dto.NewSubmitView(rec))
}

// Status handles GET /api/requests/:id/status. Public; the tracking id
// is the only credential.
func (h *RequestHandler) Status(c *gin.Context) {
	rec, err := h.lifecycleSvc.CheckStatus(c.Request.Context(), middleware.RequestIDFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "", dto.NewRequestView(rec))
}

// List handles GET /api/requests. Staff dashboard; optional ?status= filter.
func (h *RequestHandler) List(c *gin.Context) {
	recs, err := h.lifecycleSvc.ListRequests(c.Request.Context(), middleware.IdentityFromContext(c), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, dto.NewRequestViews(recs), len(recs))
}

// UpdateStatus handles PATCH /api/requests/:id/status.
func (h *RequestHandler) UpdateStatus(c *gin.Context) {
	var body dto.UpdateStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&body)

	rec, err := h.lifecycleSvc.UpdateStatus(c.Request.Context(), ports.UpdateStatusRequest{
		RequestID: middleware.RequestIDFromContext(c),
		NewStatus: body.Status,
		Actor:     middleware.IdentityFromContext(c),
		Origin:    c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, fmt.Sprintf("Request status updated to %s", rec.Status), dto.NewRequestView(rec))
}

// Cleanup handles DELETE /api/requests/cleanup. Admin only; the sweeper
// covers the scheduled case, this is the on-demand variant.
func (h *RequestHandler) Cleanup(c *gin.Context) {
	deleted, err := h.lifecycleSvc.Cleanup(c.Request.Context(), middleware.IdentityFromContext(c), c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c,
		fmt.Sprintf("Cleaned up %d expired/completed requests", deleted),
		dto.CleanupView{DeletedCount: deleted},
	)
}
