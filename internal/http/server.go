package http

import (
	"context"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"folio/internal/core"
	"folio/internal/log"
	"folio/internal/metrics"
	"folio/internal/middleware/ratelimit"
	"folio/internal/middleware/security"
	"folio/internal/middleware/trace"
	"folio/internal/services"
	appweb "folio/web"
)

// Deps wires the server. Metrics and Ready are optional.
type Deps struct {
	Service *services.InvoiceService
	Metrics *metrics.Metrics
	Logger  *log.Logger
	// Ready reports whether the counter store is reachable.
	Ready              func(ctx context.Context) error
	RateLimitPerMinute int
}

type Server struct {
	http.Server
	templates *template.Template
	svc       *services.InvoiceService
	metrics   *metrics.Metrics
	logger    *log.Logger
	ready     func(ctx context.Context) error
	started   time.Time

	detector    *security.Detector
	rateLimiter *ratelimit.Limiter
	tracer      *trace.Middleware

	shutdownOnce sync.Once
}

var templateFuncs = template.FuncMap{
	"inr":    func(d decimal.Decimal) string { return core.FormatINR(d) },
	"amount": func(d decimal.Decimal) string { return core.FormatAmount(d) },
	"plain":  func(d decimal.Decimal) string { return d.StringFixed(2) },
	"inc":    func(i int) int { return i + 1 },
}

// ParseTemplates parses the embedded page templates.
func ParseTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(appweb.TemplatesFS, "templates/*.html")
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, deps Deps) (*Server, error) {
	if deps.Service == nil {
		return nil, errors.New("invoice service is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}

	t, err := ParseTemplates()
	if err != nil {
		return nil, err
	}

	detector := security.NewDetector()
	limiterCfg := ratelimit.DefaultConfig()
	limiterCfg.RequestsPerMinute = deps.RateLimitPerMinute

	s := &Server{
		templates:   t,
		svc:         deps.Service,
		metrics:     deps.Metrics,
		logger:      logger.WithComponent(log.ComponentHTTP),
		ready:       deps.Ready,
		started:     time.Now(),
		detector:    detector,
		rateLimiter: ratelimit.NewLimiter(limiterCfg),
		tracer:      trace.NewMiddleware(logger, detector.ExtractClientIP),
	}

	mux := http.NewServeMux()

	static, err := fs.Sub(appweb.StaticFS, "static")
	if err != nil {
		return nil, err
	}
	mux.Handle("GET /static/", security.StaticAssetMiddleware(3600)(
		http.StripPrefix("/static/", http.FileServer(http.FS(static)))))

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /{$}", s.handleFormAction)
	mux.HandleFunc("POST /invoices", s.handleCreateInvoice)
	mux.HandleFunc("GET /invoices/{number}", s.handleShowInvoice)
	mux.Handle("GET /invoices/{number}/{format}", security.NoStore(http.HandlerFunc(s.handleDownload)))

	mux.HandleFunc("POST /api/lines/edit", s.handleEditLine)
	mux.HandleFunc("POST /api/invoices/preview", s.handlePreview)
	mux.HandleFunc("GET /api/rates", s.handleListRates)
	mux.HandleFunc("PUT /api/rates/{category}", s.handleSetRate)

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	if deps.Metrics != nil {
		mux.Handle("GET /metrics", deps.Metrics.Handler())
	}

	var handler http.Handler = mux
	handler = s.rateLimiter.Middleware(detector.ExtractClientIP, s.onRateLimited)(handler)
	handler = detector.Middleware(handler)
	handler = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(handler)
	handler = s.tracer.Middleware(handler)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s, nil
}

func (s *Server) onRateLimited(w http.ResponseWriter, r *http.Request) {
	s.logger.WarnContext(r.Context(), "Rate limit exceeded",
		log.FieldClientIP, s.detector.ExtractClientIP(r),
		log.FieldPath, r.URL.Path)
	if isAPI(r) {
		JSONError(http.StatusTooManyRequests, "rate limit exceeded").Write(w)
		return
	}
	ErrorResponse(http.StatusTooManyRequests, "Too many submissions. Please try again in a minute.").Write(w)
}

// Shutdown stops background routines and the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
