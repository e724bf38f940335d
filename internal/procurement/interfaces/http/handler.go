package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
	"github.com/wyfcoding/procurement/internal/procurement/application"
	"github.com/wyfcoding/procurement/internal/procurement/domain"
)

// TenderHandler 负责处理与招标风控和供应商匹配相关的 HTTP 请求
type TenderHandler struct {
	ingest   *application.IngestService
	query    *application.TenderQuery
	risk     *application.RiskService
	matching *application.MatchingService
	report   *application.ReportService
}

// NewTenderHandler 创建 HTTP 处理器
func NewTenderHandler(
	ingest *application.IngestService,
	query *application.TenderQuery,
	risk *application.RiskService,
	matching *application.MatchingService,
	report *application.ReportService,
) *TenderHandler {
	return &TenderHandler{
		ingest:   ingest,
		query:    query,
		risk:     risk,
		matching: matching,
		report:   report,
	}
}

// RegisterRoutes 注册路由
func (h *TenderHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1")
	{
		api.POST("/tenders/ingest", h.IngestTenders)
		api.GET("/tenders", h.ListTenders)
		api.GET("/tenders/:id", h.GetTender)
		api.POST("/tenders/:id/risk", h.RecomputeRisk)
		api.GET("/tenders/:id/suppliers", h.MatchSuppliers)
		api.GET("/tenders/:id/report", h.TenderReport)
		api.POST("/suppliers/ingest", h.IngestSuppliers)
	}
}

// IngestTenders 导入招标 CSV
func (h *TenderHandler) IngestTenders(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "file is required", "")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	defer file.Close()

	tenders, err := h.ingest.IngestTendersCSV(c.Request.Context(), file)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to ingest tenders", "error", err)
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	response.Success(c, tenders)
}

// IngestSuppliers 导入供应商 CSV
func (h *TenderHandler) IngestSuppliers(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "file is required", "")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	defer file.Close()

	suppliers, err := h.ingest.IngestSuppliersCSV(c.Request.Context(), file)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to ingest suppliers", "error", err)
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	response.Success(c, suppliers)
}

// ListTenders 招标列表
func (h *TenderHandler) ListTenders(c *gin.Context) {
	filter := domain.TenderListFilter{
		Category:  c.Query("category"),
		Platform:  c.Query("platform"),
		RiskLevel: domain.RiskLevel(c.Query("risk_level")),
	}

	tenders, err := h.query.ListTenders(c.Request.Context(), filter)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list tenders", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, tenders)
}

// GetTender 获取单个招标
func (h *TenderHandler) GetTender(c *gin.Context) {
	tenderID, ok := h.tenderID(c)
	if !ok {
		return
	}

	tender, err := h.query.GetTender(c.Request.Context(), tenderID)
	if err != nil {
		h.renderError(c, "Failed to get tender", tenderID, err)
		return
	}

	response.Success(c, tender)
}

// RecomputeRisk 重算招标风险
func (h *TenderHandler) RecomputeRisk(c *gin.Context) {
	tenderID, ok := h.tenderID(c)
	if !ok {
		return
	}

	result, err := h.risk.RecomputeRisk(c.Request.Context(), tenderID)
	if err != nil {
		h.renderError(c, "Failed to recompute risk", tenderID, err)
		return
	}

	response.Success(c, result)
}

// MatchSuppliers 候选供应商匹配
func (h *TenderHandler) MatchSuppliers(c *gin.Context) {
	tenderID, ok := h.tenderID(c)
	if !ok {
		return
	}

	matches, err := h.matching.MatchSuppliersByID(c.Request.Context(), tenderID)
	if err != nil {
		h.renderError(c, "Failed to match suppliers", tenderID, err)
		return
	}

	response.Success(c, matches)
}

// TenderReport 招标报表
func (h *TenderHandler) TenderReport(c *gin.Context) {
	tenderID, ok := h.tenderID(c)
	if !ok {
		return
	}

	report, err := h.report.TenderReport(c.Request.Context(), tenderID)
	if err != nil {
		h.renderError(c, "Failed to build tender report", tenderID, err)
		return
	}

	response.Success(c, report)
}

func (h *TenderHandler) tenderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid tender id", "")
		return 0, false
	}
	return uint(id), true
}

func (h *TenderHandler) renderError(c *gin.Context, msg string, tenderID uint, err error) {
	if errors.Is(err, domain.ErrTenderNotFound) {
		response.ErrorWithStatus(c, http.StatusNotFound, "tender not found", "")
		return
	}
	logging.Error(c.Request.Context(), msg, "tender_id", tenderID, "error", err)
	response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
}
