package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	ledgerdomain "github.com/smallbiznis/ledgerdesk/internal/ledgerstore/domain"
	reconciliationdomain "github.com/smallbiznis/ledgerdesk/internal/reconciliation/domain"
)

type refreshRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// PostRefresh runs one synchronous refresh cycle over the requested date
// window. The window comes from the JSON body, or from the from/to query
// parameters when the body is empty.
func (s *Server) PostRefresh(c *gin.Context) {
	if s.reconciliationSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	window, err := refreshWindow(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	result, err := s.reconciliationSvc.Refresh(c.Request.Context(), window)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) GetTitles(c *gin.Context) {
	view, err := s.filteredView(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"titles": view.Titles})
}

func (s *Server) GetInvoices(c *gin.Context) {
	view, err := s.filteredView(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": view.Invoices})
}

func (s *Server) GetSummary(c *gin.Context) {
	snap, err := s.currentSnapshot()
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"cycle_id":     snap.CycleID,
		"generated_at": snap.GeneratedAt,
		"window":       snap.Window,
		"totals":       snap.Totals,
	})
}

func (s *Server) GetStatuses(c *gin.Context) {
	snap, err := s.currentSnapshot()
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"statuses": snap.Statuses})
}

func (s *Server) GetClientSummaries(c *gin.Context) {
	snap, err := s.currentSnapshot()
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": snap.ClientSummaries})
}

func (s *Server) GetDebtSummaries(c *gin.Context) {
	snap, err := s.currentSnapshot()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	limit, err := parseLimit(c, len(snap.DebtSummaries), 500)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	debtors := snap.DebtSummaries
	if limit < len(debtors) {
		debtors = debtors[:limit]
	}
	c.JSON(http.StatusOK, gin.H{"debtors": debtors})
}

func (s *Server) currentSnapshot() (reconciliationdomain.RefreshResult, error) {
	if s.reconciliationSvc == nil {
		return reconciliationdomain.RefreshResult{}, ErrServiceUnavailable
	}
	return s.reconciliationSvc.Snapshot()
}

func (s *Server) filteredView(c *gin.Context) (reconciliationdomain.FilteredView, error) {
	if s.reconciliationSvc == nil {
		return reconciliationdomain.FilteredView{}, ErrServiceUnavailable
	}

	var filter reconciliationdomain.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		return reconciliationdomain.FilteredView{}, newValidationError("request", "invalid_filter", "invalid filter parameters")
	}
	return s.reconciliationSvc.Filtered(filter)
}

func refreshWindow(c *gin.Context) (ledgerdomain.DateWindow, error) {
	var req refreshRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			return ledgerdomain.DateWindow{}, newValidationError("request", "invalid_request", "invalid request body")
		}
	}
	if strings.TrimSpace(req.From) == "" && strings.TrimSpace(req.To) == "" {
		return parseDateWindow(c)
	}

	from, err := parseWindowTime(req.From, false)
	if err != nil {
		return ledgerdomain.DateWindow{}, newValidationError("from", "invalid_date", "expected RFC 3339 or yyyy-mm-dd")
	}
	to, err := parseWindowTime(req.To, true)
	if err != nil {
		return ledgerdomain.DateWindow{}, newValidationError("to", "invalid_date", "expected RFC 3339 or yyyy-mm-dd")
	}
	if from == nil || to == nil {
		return ledgerdomain.DateWindow{}, newValidationError("request", "missing_date_window", "from and to are required")
	}
	return ledgerdomain.DateWindow{From: *from, To: *to}, nil
}
