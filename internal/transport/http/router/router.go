package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type AuthHandler interface {
	Signup(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Protected(w http.ResponseWriter, r *http.Request)
	RequestReset(w http.ResponseWriter, r *http.Request)
	ResetPassword(w http.ResponseWriter, r *http.Request)
}

type ChatHandler interface {
	Chat(w http.ResponseWriter, r *http.Request)
	Models(w http.ResponseWriter, r *http.Request)
}

type ContactHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health  HealthHandler
	Auth    AuthHandler
	Chat    ChatHandler
	Contact ContactHandler

	AuthMW    func(http.Handler) http.Handler
	CORSMW    func(http.Handler) http.Handler
	LoginRL   func(http.Handler) http.Handler
	SignupRL  func(http.Handler) http.Handler
	ResetRL   func(http.Handler) http.Handler
	ChatRL    func(http.Handler) http.Handler
	RequestID func(http.Handler) http.Handler
	Metrics   func(http.Handler) http.Handler
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("nil Auth handler")
	}
	if deps.Chat == nil {
		return nil, fmt.Errorf("nil Chat handler")
	}
	if deps.Contact == nil {
		return nil, fmt.Errorf("nil Contact handler")
	}
	if deps.AuthMW == nil {
		return nil, fmt.Errorf("nil Auth middleware")
	}

	passthrough := func(next http.Handler) http.Handler { return next }
	for _, mw := range []*func(http.Handler) http.Handler{
		&deps.CORSMW, &deps.LoginRL, &deps.SignupRL, &deps.ResetRL, &deps.ChatRL,
		&deps.RequestID, &deps.Metrics,
	} {
		if *mw == nil {
			*mw = passthrough
		}
	}

	r := chi.NewRouter()
	r.Use(deps.RequestID)
	r.Use(deps.Metrics)
	r.Use(deps.CORSMW)

	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.With(deps.SignupRL).Post("/signup", deps.Auth.Signup)
		r.With(deps.LoginRL).Post("/login", deps.Auth.Login)
		r.With(deps.AuthMW).Get("/protected", deps.Auth.Protected)

		r.With(deps.ResetRL).Post("/request-reset", deps.Auth.RequestReset)
		r.With(deps.ResetRL).Post("/reset-password", deps.Auth.ResetPassword)

		r.With(deps.ChatRL).Post("/chat", deps.Chat.Chat)
		r.Get("/models", deps.Chat.Models)

		r.Post("/contact", deps.Contact.Submit)
	})

	return r, nil
}
