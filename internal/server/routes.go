package server

import (
	"colorchanger/internal/changer"
	"colorchanger/internal/color"
	"colorchanger/internal/config"
	"colorchanger/internal/db"
	"colorchanger/internal/metrics"
	"colorchanger/internal/pages"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"
)

//go:embed templates/*.html
var templatesFS embed.FS

func parseTemplates() *template.Template {
	return template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))
}

// New builds a server without a database.
func New(cfg config.Config) (*Server, error) {
	src, err := color.SourceByName(cfg.RandomSource)
	if err != nil {
		return nil, err
	}
	m := metrics.New()
	pageStore := pages.NewStore(pages.Config{
		ControlID: cfg.ControlID,
		TTL:       cfg.PageTTL,
		Options: []changer.Option{
			changer.WithSource(src),
			changer.WithPadding(cfg.PadHex),
			changer.WithRecorder(m),
		},
	})
	return &Server{
		Pages:   pageStore,
		Tmpl:    parseTemplates(),
		Metrics: m,
	}, nil
}

// Run serves appCfg's routes until the listener fails.
func Run(appCfg config.Config) error {
	srv, err := New(appCfg)
	if err != nil {
		return err
	}

	// Optional database connection
	if appCfg.DatabaseURL != "" {
		database, err := db.Connect(appCfg.DatabaseURL)
		if err != nil {
			log.Printf("[DB] Failed to connect: %v (running without database)\n", err)
		} else {
			if err := database.Migrate(); err != nil {
				log.Printf("[DB] Migration failed: %v\n", err)
			}
			srv.DB = database
			srv.ClickBuffer = make(chan db.ClickEvent, 1000)
			go clickBatchWriter(database, srv.ClickBuffer)
			log.Println("[DB] Database connected and migrations applied")
		}
	} else {
		log.Println("[DB] DATABASE_URL not set, running without database")
	}

	addr := "0.0.0.0:" + appCfg.Port
	fmt.Printf("Server listening on http://localhost:%s\n", appCfg.Port)
	return http.ListenAndServe(addr, srv.Routes())
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("POST /pages/create", s.handleCreatePage)
	mux.HandleFunc("POST /pages/join", s.handleJoinPage)
	mux.HandleFunc("GET /page/{code}", s.handlePage)
	mux.HandleFunc("POST /page/{code}/click/{id}", s.handleClick)
	mux.HandleFunc("GET /page/{code}/events", s.handleEvents)
	mux.HandleFunc("GET /page/{code}/ws", s.handleWS)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /analytics", s.handleAnalyticsDashboard)
	mux.HandleFunc("GET /analytics/page/{code}", s.handleAnalyticsPage)
	mux.Handle("GET /metrics", s.metricsHandler())
	return mux
}

func (s *Server) metricsHandler() http.Handler {
	h := s.Metrics.Handler()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.ActivePages.Set(float64(s.Pages.Len()))
		h.ServeHTTP(w, r)
	})
}

func clickBatchWriter(database *db.DB, buffer chan db.ClickEvent) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	batch := make([]db.ClickEvent, 0, 50)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := database.BatchRecordClicks(batch); err != nil {
			log.Printf("[DB] BatchRecordClicks error: %v\n", err)
		}
		batch = batch[:0]
	}

	for {
		select {
		case ev, ok := <-buffer:
			if !ok {
				flush()
				return
			}
			batch = append(batch, ev)
			if len(batch) >= 50 {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}
