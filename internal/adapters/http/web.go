package web

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"dashboard/internal/adapters/cache"
	"dashboard/internal/adapters/http/middleware"
	"dashboard/internal/adapters/http/perf"
	accountStore "dashboard/internal/adapters/storage/account"
	customerStore "dashboard/internal/adapters/storage/customer"
	invoiceStore "dashboard/internal/adapters/storage/invoice"
	"dashboard/internal/domain/access"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore  accountStore.Store
	CustomerStore customerStore.Store
	InvoiceStore  invoiceStore.Store
}

// Options configures the HTTP surface.
type Options struct {
	Policy     access.Policy
	Exclusions access.Exclusions
	Navigation access.Navigation

	Sessions *middleware.SessionManager
	Views    cache.ViewCache
	Perf     *perf.Collector

	// CSRFKey enables CSRF protection of form posts when non-empty.
	CSRFKey        []byte
	SecureCookies  bool
	TrustedOrigins []string
	// CORSOrigins enables cross-origin API access for these origins when non-empty.
	CORSOrigins    []string

	// Limiter throttles requests per client IP when non-nil.
	Limiter       *middleware.RateLimiter
	SlowRequestMs int

	// Health reports whether backing services are reachable.
	Health func(ctx context.Context) error
}

// Server carries the dependencies shared by every handler.
type Server struct {
	stores     Stores
	opts       Options
	generateID func() string
	now        func() time.Time
}

// NewServer creates a server over the given stores.
// PRE: opts.Sessions is non-nil
func NewServer(stores Stores, opts Options) *Server {
	return &Server{
		stores:     stores,
		opts:       opts,
		generateID: func() string { return uuid.New().String() },
		now:        time.Now,
	}
}

// NewMux wires HTTP handlers for the app.
func NewMux(stores Stores, opts Options) http.Handler {
	return NewServer(stores, opts).Handler()
}

// Handler returns the routed mux wrapped in the middleware stack.
// Order, outermost first: Timing -> SecurityHeaders -> CORS -> RateLimit -> Gate -> CSRF -> Mux.
// The gate runs before CSRF so anonymous posts are redirected to login rather than rejected.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.registerRoutes(mux)

	stack := []func(http.Handler) http.Handler{
		middleware.Timing(s.opts.Perf, s.opts.SlowRequestMs),
		middleware.SecurityHeaders,
	}
	if len(s.opts.CORSOrigins) > 0 {
		stack = append(stack, middleware.CORS(s.opts.CORSOrigins))
	}
	if s.opts.Limiter != nil {
		stack = append(stack, middleware.RateLimit(s.opts.Limiter))
	}
	stack = append(stack, middleware.Gate(s.opts.Policy, s.opts.Exclusions, s.opts.Sessions))
	if len(s.opts.CSRFKey) > 0 {
		stack = append(stack, middleware.CSRF(s.opts.CSRFKey, s.opts.SecureCookies, s.opts.TrustedOrigins))
	}
	return middleware.Chain(mux, stack...)
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", s.handleHealth)

	mux.HandleFunc("GET /login", s.handleLoginPage)
	mux.HandleFunc("POST /login", s.handleLogin)

	requireAuth := middleware.RequireAuth(s.opts.Sessions, s.opts.Policy.LoginPath)
	protected := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, requireAuth(h))
	}

	protected("POST /dashboard/logout", s.handleLogout)

	protected("GET /dashboard", s.handleDashboard)
	protected("GET /dashboard/customers", s.handleCustomers)
	protected("GET /dashboard/perf", s.handlePerf)

	protected("GET /dashboard/invoices", s.handleInvoiceList)
	protected("POST /dashboard/invoices", s.handleCreateInvoice)
	protected("GET /dashboard/invoices/create", s.handleInvoiceCreateForm)
	protected("GET /dashboard/invoices/{id}/edit", s.handleInvoiceEditForm)
	protected("GET /dashboard/invoices/{id}/pdf", s.handleInvoicePDF)
	protected("POST /dashboard/invoices/{id}", s.handleUpdateInvoice)
	protected("POST /dashboard/invoices/{id}/delete", s.handleDeleteInvoice)
}
