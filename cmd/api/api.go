package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cprm/internal/mailer"
	"cprm/internal/mpesa"
	"cprm/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type application struct {
	config  config
	store   store.Storage
	logger  *zap.SugaredLogger
	mailer  mailer.Client
	gateway *mpesa.Client
}

type config struct {
	addr                string
	env                 string
	frontendURL         string
	siteName            string
	contactRecipient    string
	newsletterRecipient string
	mail                mailConfig
	mpesa               mpesa.Config
}

type mailConfig struct {
	host        string
	port        int
	secure      bool
	username    string
	password    string
	fromAddress string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.securityHeaders)

	// Production restricts CORS to the configured frontend; anything else
	// stays open for local development and curl.
	allowedOrigins := []string{"https://*", "http://*"}
	if app.isProduction() && app.config.frontendURL != "" {
		allowedOrigins = []string{app.config.frontendURL}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/", app.healthCheckHandler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/contact", func(r chi.Router) {
			r.Post("/submit", app.contactHandler)
		})
		r.Route("/newsletter", func(r chi.Router) {
			r.Post("/subscribe", app.subscribeHandler)
		})
		r.Route("/mpesa", func(r chi.Router) {
			r.Post("/stkpush", app.stkPushHandler)
			r.Post("/callback", app.mpesaCallbackHandler)
		})
		r.NotFound(app.notFoundHandler)
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)
	if !app.isProduction() {
		app.logger.Infow("for local M-Pesa callbacks, expose this port with a tunnel such as ngrok", "addr", app.config.addr)
	}

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}

func (app *application) isProduction() bool {
	return app.config.env == "production"
}
