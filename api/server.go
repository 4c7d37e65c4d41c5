// Package api exposes the REST endpoints over the user, bet, reflection and
// report services, plus the external integrations.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"xperiencia/integration"
	"xperiencia/models"
	"xperiencia/service"

	"github.com/go-chi/chi/v5"
)

// API holds the services the HTTP handlers delegate to
type API struct {
	Users        service.UserService
	Bets         service.BetService
	Reflections  service.ReflectionService
	Reports      service.ReportService
	Integrations *integration.Client
}

// Router returns the HTTP router with all REST endpoints
func (a *API) Router() http.Handler {
	r := chi.NewRouter()

	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", a.listUsers)
		r.Post("/", a.createUser)
		r.Get("/email/{email}", a.getUserByEmail)
		r.Get("/{id}", a.getUser)
		r.Put("/{id}", a.updateUser)
		r.Delete("/{id}", a.deleteUser)
		r.Get("/{id}/bets", a.listUserBets)
		r.Get("/{id}/reflections", a.listUserReflections)
	})

	r.Route("/api/bets", func(r chi.Router) {
		r.Get("/", a.listBets)
		r.Post("/", a.createBet)
		r.Get("/result/{result}", a.listBetsByResult)
		r.Get("/{id}", a.getBet)
		r.Put("/{id}", a.updateBet)
		r.Delete("/{id}", a.deleteBet)
	})

	r.Route("/api/reflections", func(r chi.Router) {
		r.Get("/", a.listReflections)
		r.Post("/", a.createReflection)
		r.Get("/sentiment/{sentiment}", a.listReflectionsBySentiment)
		r.Put("/{id}", a.updateReflection)
		r.Delete("/{id}", a.deleteReflection)
	})

	r.Route("/api/reports", func(r chi.Router) {
		r.Get("/users/{id}", a.userReport)
		r.Get("/system", a.systemReport)
		r.Get("/bets/period", a.periodReport)
	})

	r.Route("/api/integrations", func(r chi.Router) {
		r.Get("/quote", a.motivationalQuote)
		r.Get("/cep/{cep}", a.lookupAddress)
		r.Get("/weather", a.currentWeather)
		r.Get("/motivation/{id}", a.userMotivation)
	})

	return r
}

// writeJSON serializes the response as JSON with the given status
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to HTTP statuses
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrBetNotFound),
		errors.Is(err, models.ErrReflectionNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, models.ErrEmailTaken):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}
