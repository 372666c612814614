package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/markbates/goth/gothic"
	"golang.org/x/crypto/bcrypt"

	"github.com/scrimhub/scrimhub/internal/api"
	"github.com/scrimhub/scrimhub/internal/bot"
	"github.com/scrimhub/scrimhub/internal/config"
	"github.com/scrimhub/scrimhub/internal/httputil"
	"github.com/scrimhub/scrimhub/internal/model"
	"github.com/scrimhub/scrimhub/internal/service"
	"github.com/scrimhub/scrimhub/internal/token"
)

type app struct {
	cfg          *config.Config
	tokens       *token.Service
	users        *service.UserService
	api          *api.Server
	webhook      *bot.WebhookHandler
	interactions *bot.InteractionHandler
}

func newRouter(a *app) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	// Generic action dispatch; GET actions take query params, POST actions
	// take a JSON body.
	r.Handle("/api", a.api)

	r.Post("/login", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			httputil.BadRequest(w, "invalid JSON body", err)
			return
		}

		if a.cfg.AdminUsername == "" || a.cfg.AdminPasswordHash == "" ||
			payload.Username != a.cfg.AdminUsername ||
			bcrypt.CompareHashAndPassword([]byte(a.cfg.AdminPasswordHash), []byte(payload.Password)) != nil {
			httputil.Unauthorized(w, "invalid credentials")
			return
		}

		signed, err := a.tokens.Issue(&model.User{
			UserID:   "admin:" + a.cfg.AdminUsername,
			Username: a.cfg.AdminUsername,
			SiteRole: model.SiteRoleAdmin,
		})
		if err != nil {
			httputil.InternalServerError(w, "Failed to issue token", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"token": signed})
	})

	r.Get("/auth/start", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if redirect := q.Get("redirect"); redirect != "" {
			q.Set("state", redirect)
			r.URL.RawQuery = q.Encode()
		}
		r = r.WithContext(context.WithValue(r.Context(), "provider", "discord"))

		gothic.BeginAuthHandler(w, r)
	})

	r.Get("/auth/callback", func(w http.ResponseWriter, r *http.Request) {
		r = r.WithContext(context.WithValue(r.Context(), "provider", "discord"))

		gothUser, err := gothic.CompleteUserAuth(w, r)
		if err != nil {
			slog.Warn("oauth callback failed", "error", err)
			http.Redirect(w, r, a.cfg.BaseURL+"/?error=auth_failed", http.StatusFound)
			return
		}

		user, err := a.users.FindOrCreateFromOAuth(r.Context(), gothUser)
		if err != nil {
			slog.Error("failed to find or create user", "error", err)
			http.Redirect(w, r, a.cfg.BaseURL+"/?error=auth_failed", http.StatusFound)
			return
		}

		signed, err := a.tokens.Issue(user)
		if err != nil {
			slog.Error("failed to issue token", "error", err)
			http.Redirect(w, r, a.cfg.BaseURL+"/?error=auth_failed", http.StatusFound)
			return
		}

		redirect := gothic.GetState(r)
		if redirect == "" {
			redirect = "/"
		}
		dest := fmt.Sprintf("%s/?token=%s&redirect=%s",
			a.cfg.BaseURL, url.QueryEscape(signed), url.QueryEscape(redirect))
		http.Redirect(w, r, dest, http.StatusFound)
	})

	if a.webhook != nil {
		r.Post("/webhooks/tournament-created", a.webhook.ServeHTTP)
	}
	if a.interactions != nil {
		r.Post("/interactions", a.interactions.ServeHTTP)
	}

	return r
}
