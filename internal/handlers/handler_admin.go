package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dannabank/dnb_backend/internal/apperrors"
	"github.com/dannabank/dnb_backend/internal/core/domain"
	portssvc "github.com/dannabank/dnb_backend/internal/core/ports/services"
	"github.com/dannabank/dnb_backend/internal/dto"
	"github.com/dannabank/dnb_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// adminHandler handles the administrative surface: the dashboard, the pending
// queues, decisions, capital management and delinquency reporting.
type adminHandler struct {
	requestService   portssvc.RequestSvcFacade
	approvalService  portssvc.ApprovalSvcFacade
	capitalService   portssvc.CapitalSvcFacade
	creditService    portssvc.CreditSvcFacade
	dashboardService portssvc.DashboardSvcFacade
}

// registerAdminRoutes registers the administrative routes.
func registerAdminRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := &adminHandler{
		requestService:   services.Request,
		approvalService:  services.Approval,
		capitalService:   services.Capital,
		creditService:    services.Credit,
		dashboardService: services.Dashboard,
	}

	admin := rg.Group("/admin")
	{
		admin.GET("/dashboard", h.getDashboard)
		admin.GET("/requests/pending", h.listPendingRequests)
		admin.POST("/requests/:id/decision", h.decideRequest)
		admin.GET("/capital", h.getCapital)
		admin.POST("/capital", h.adjustCapital)
		admin.GET("/capital/history", h.getCapitalHistory)
		admin.GET("/credits/due", h.listCreditsDue)
	}
}

func (h *adminHandler) getDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	dashboard, err := h.dashboardService.GetDashboard(c.Request.Context())
	if err != nil {
		logger.Error("Failed to build dashboard", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

func (h *adminHandler) listPendingRequests(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListPendingParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	var kind *domain.RequestKind
	if params.Kind != "" {
		k := domain.RequestKind(params.Kind)
		kind = &k
	}

	pending, err := h.requestService.ListPending(c.Request.Context(), kind)
	if err != nil {
		logger.Error("Failed to list pending requests", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list pending requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": dto.ToRequestResponses(pending)})
}

func (h *adminHandler) decideRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("id")

	var req dto.DecideRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for DecideRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorID(c)
	decided, err := h.approvalService.Decide(c.Request.Context(), requestID, req.Outcome, actor)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		case errors.Is(err, apperrors.ErrAlreadyDecided):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicateActiveCredit):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInsufficientFunds),
			errors.Is(err, apperrors.ErrCapitalUnderflow):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to decide request", slog.String("request_id", requestID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decide request"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToRequestResponse(decided))
}

func (h *adminHandler) getCapital(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	capital, err := h.capitalService.GetCapital(c.Request.Context())
	if err != nil {
		logger.Error("Failed to get capital", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get capital"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCapitalResponse(capital))
}

func (h *adminHandler) adjustCapital(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AdjustCapitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AdjustCapital", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	delta := req.Amount
	if req.Action == dto.CapitalActionReduce {
		delta = delta.Neg()
	}

	actor := middleware.GetActorID(c)
	capital, err := h.capitalService.AdjustCapital(c.Request.Context(), delta, req.Description, actor)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrCapitalUnderflow):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to adjust capital", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to adjust capital"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCapitalResponse(capital))
}

func (h *adminHandler) getCapitalHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListHistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	entries, err := h.capitalService.GetCapitalHistory(c.Request.Context(), params.Limit)
	if err != nil {
		logger.Error("Failed to get capital history", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get capital history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": dto.ToHistoryEntryResponses(entries)})
}

func (h *adminHandler) listCreditsDue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListCreditsDueParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	cutoff := time.Now().UTC()
	if params.Before != nil {
		cutoff = *params.Before
	}

	credits, err := h.creditService.ListCreditsDueBefore(c.Request.Context(), cutoff)
	if err != nil {
		logger.Error("Failed to list credits due", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list credits due"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"credits": dto.ToCreditResponses(credits)})
}
