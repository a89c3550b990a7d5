package web

import (
	"net/http"
	"strconv"
	"time"

	"dashboard/internal/adapters/http/middleware"
	"dashboard/internal/adapters/http/perf"
	"dashboard/internal/application/projections"
)

const (
	defaultPerfWindow = time.Hour
	perfTopN          = 10
)

type dashboardPage struct {
	User   string `json:"user"`
	Active string `json:"activeLink"`
	projections.DashboardOverviewResult
}

// handleDashboard handles GET /dashboard
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	res, err := projections.QueryDashboardOverview(r.Context(), projections.DashboardOverviewDeps{
		InvoiceStore: s.stores.InvoiceStore,
		Cache:        s.opts.Views,
		Navigation:   s.opts.Navigation,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	page := dashboardPage{DashboardOverviewResult: res, Active: res.Navigation.Active(r.URL.Path)}
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		page.User = sess.Email
	}
	writeJSON(w, http.StatusOK, page)
}

// handleCustomers handles GET /dashboard/customers
func (s *Server) handleCustomers(w http.ResponseWriter, r *http.Request) {
	res, err := projections.QueryCustomerList(r.Context(), r.URL.Query().Get("query"), projections.CustomerListDeps{
		CustomerStore: s.stores.CustomerStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handlePerf handles GET /dashboard/perf?minutes=N
func (s *Server) handlePerf(w http.ResponseWriter, r *http.Request) {
	if s.opts.Perf == nil {
		writeJSON(w, http.StatusOK, perf.Snapshot{})
		return
	}
	window := defaultPerfWindow
	if m, err := strconv.Atoi(r.URL.Query().Get("minutes")); err == nil && m > 0 {
		window = time.Duration(m) * time.Minute
	}
	writeJSON(w, http.StatusOK, s.opts.Perf.Snapshot(s.now().Add(-window), perfTopN))
}
