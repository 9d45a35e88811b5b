package main

import (
	"net/http"
	"time"

	"github.com/LuanaSouza24/laudo-service/internal/logger"
	"github.com/LuanaSouza24/laudo-service/pkg/laudo"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type application struct {
	config config
	// opts is copied for every request.
	opts laudo.Options
	log  *logger.Logger
}

type config struct {
	addr         string
	maxBodyBytes int64
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(120 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		r.Post("/generate", app.handleGenerateReport)
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 180,
		ReadTimeout:  time.Second * 60,
		IdleTimeout:  time.Minute,
	}

	app.log.Info("API", "Server started on %s", app.config.addr)
	return srv.ListenAndServe()
}
