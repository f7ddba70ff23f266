package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"splitter/internal/kv"
	"splitter/internal/ledger"
	"splitter/internal/log"
	"splitter/internal/metrics"
	"splitter/internal/notify"
	appweb "splitter/web"
)

// Deps are the collaborators the HTTP layer drives.
type Deps struct {
	Ledger      *ledger.Ledger
	Preferences *ledger.Preferences
	Notifier    *notify.Notifier
	Store       kv.Store
	Metrics     *metrics.Metrics
	Logger      *log.Logger

	// RateLimitPerMinute caps POSTs per client; zero picks the default.
	RateLimitPerMinute int
	// Now overrides the clock used for the form's default date.
	Now func() time.Time
}

type Server struct {
	http.Server
	templates *template.Template
	ledger    *ledger.Ledger
	prefs     *ledger.Preferences
	notifier  *notify.Notifier
	store     kv.Store
	metrics   *metrics.Metrics
	limiter   *rateLimiter
	logger    *log.Logger
	now       func() time.Time
	startedAt time.Time

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, deps Deps) *Server {
	mux := http.NewServeMux()

	logger := deps.Logger
	if logger == nil {
		logger = log.Default(log.ComponentHTTP)
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	notifier := deps.Notifier
	if notifier == nil {
		notifier = notify.New(notify.DefaultDuration, logger.WithComponent(log.ComponentNotify))
	}

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           log.Middleware(logger)(log.RequestIDMiddleware(requestIDFor)(mux)),
			ReadHeaderTimeout: 5 * time.Second,
		},
		ledger:    deps.Ledger,
		prefs:     deps.Preferences,
		notifier:  notifier,
		store:     deps.Store,
		metrics:   deps.Metrics,
		limiter:   newRateLimiter(deps.RateLimitPerMinute),
		logger:    logger,
		now:       now,
		startedAt: now(),
	}

	t, err := template.New("").Funcs(templateFuncs).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		logger.Warn("Failed parsing templates", log.FieldError, err)
	}
	s.templates = t

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600")
			static.ServeHTTP(w, r)
		}))
	} else {
		logger.Warn("Failed to mount embedded static FS", log.FieldError, err)
	}

	mux.HandleFunc("/", s.instrument("/", s.handleIndex))
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics.Handler())
	}

	mux.HandleFunc("/expenses", s.instrument("/expenses", s.handleCreateExpense))
	mux.HandleFunc("/expenses/delete", s.instrument("/expenses/delete", s.handleDeleteExpense))
	mux.HandleFunc("/expenses/clear", s.instrument("/expenses/clear", s.handleClearExpenses))
	mux.HandleFunc("/expenses/export.xlsx", s.instrument("/expenses/export.xlsx", s.handleExport))
	mux.HandleFunc("/preferences/friends", s.instrument("/preferences/friends", s.handleSaveFriend))

	// UI partials
	mux.HandleFunc("/ui/expenses", s.instrument("/ui/expenses", s.handleExpenseList))
	mux.HandleFunc("/ui/summary", s.instrument("/ui/summary", s.handleSummary))
	mux.HandleFunc("/ui/notification", s.instrument("/ui/notification", s.handleNotification))

	return s
}

// Shutdown gracefully shuts down the server and its background routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.logger.Info("HTTP server shutting down", "uptime", time.Since(s.startedAt).Round(time.Second).String())
		s.limiter.stop()
		s.notifier.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// notify shows msg in the server-side slot and forwards it to the browser.
func (s *Server) notify(b *HTMXResponseBuilder, sev notify.Severity, msg string) *HTMXResponseBuilder {
	s.notifier.Show(msg, sev)
	return b.TriggerNotification(sev, msg, s.notifier.Duration())
}

// render executes a named template into w.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	if s.templates == nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Templates not loaded", log.FieldPath, r.URL.Path)
		InternalServerError("templates not loaded").Write(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		log.FromContext(r.Context()).LogError(r.Context(), "Template execution failed", err, log.OpRender,
			log.NewFields().With("template", name))
	}
}
