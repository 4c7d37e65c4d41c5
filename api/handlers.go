package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"xperiencia/models"

	"github.com/go-chi/chi/v5"
)

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

// parseDate accepts RFC 3339 timestamps and plain dates
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type updateUserRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Points int64  `json:"points"`
}

type createBetRequest struct {
	UserID      int64     `json:"userId"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount"`
	Result      string    `json:"result"`
	PlacedAt    time.Time `json:"placedAt"`
}

type updateBetRequest createBetRequest

type updateReflectionRequest createReflectionRequest

type createReflectionRequest struct {
	UserID     int64     `json:"userId"`
	Sentiment  string    `json:"sentiment"`
	RecordedAt time.Time `json:"recordedAt"`
}

func (a *API) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := a.Users.ListUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (a *API) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	user, err := a.Users.Register(r.Context(), req.Name, req.Email)
	if err != nil {
		if req.Name == "" || req.Email == "" {
			writeBadRequest(w, err.Error())
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (a *API) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "invalid user id")
		return
	}

	user, err := a.Users.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (a *API) getUserByEmail(w http.ResponseWriter, r *http.Request) {
	user, err := a.Users.GetUserByEmail(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (a *API) updateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "invalid user id")
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	user := &models.User{
		ID:     id,
		Name:   req.Name,
		Email:  req.Email,
		Points: req.Points,
	}
	if err := a.Users.UpdateUser(r.Context(), user); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (a *API) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "invalid user id")
		return
	}

	if err := a.Users.DeleteUser(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) listUserBets(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "invalid user id")
		return
	}

	bets, err := a.Bets.ListUserBets(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bets)
}

func (a *API) listUserReflections(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "invalid user id")
		return
	}

	reflections, err := a.Reflections.ListUserReflections(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reflections)
}

func (a *API) listBets(w http.ResponseWriter, r *http.Request) {
	bets, err := a.Bets.ListBets(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bets)
}

func (a *API) createBet(w http.ResponseWriter, r *http.Request) {
	var req createBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	bet, err := a.Bets.RecordBet(r.Context(), req.UserID, req.Description, req.Amount, req.Result, req.PlacedAt)
	if err != nil {
		if req.Amount < 0 || req.Result == "" {
			writeBadRequest(w, err.Error())
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, bet)
}

func (a *API) listBetsByResult(w http.ResponseWriter, r *http.Request) {
	bets, err := a.Bets.ListBetsByResult(r.Context(), chi.URLParam(r, "result"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bets)
}

func (a *API) updateBet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "invalid bet id")
		return
	}

	var req updateBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	bet := &models.Bet{
		ID:          id,
		UserID:      req.UserID,
		Description: req.Description,
		Amount:      req.Amount,
		Result:      req.Result,
		PlacedAt:    req.PlacedAt,
	}
	if err := a.Bets.UpdateBet(r.Context(), bet); err != nil {
		if req.Amount < 0 || req.Result == "" {
			writeBadRequest(w, err.Error())
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bet)
}

func (a *API) getBet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "invalid bet id")
		return
	}

	bet, err := a.Bets.GetBet(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bet)
}

func (a *API) deleteBet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "invalid bet id")
		return
	}

	if err := a.Bets.RemoveBet(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) listReflections(w http.ResponseWriter, r *http.Request) {
	reflections, err := a.Reflections.ListReflections(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reflections)
}

func (a *API) createReflection(w http.ResponseWriter, r *http.Request) {
	var req createReflectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	reflection, err := a.Reflections.RecordReflection(r.Context(), req.UserID, req.Sentiment, req.RecordedAt)
	if err != nil {
		if req.Sentiment == "" {
			writeBadRequest(w, err.Error())
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reflection)
}

func (a *API) listReflectionsBySentiment(w http.ResponseWriter, r *http.Request) {
	reflections, err := a.Reflections.ListReflectionsBySentiment(r.Context(), chi.URLParam(r, "sentiment"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reflections)
}

func (a *API) updateReflection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "invalid reflection id")
		return
	}

	var req updateReflectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	reflection := &models.Reflection{
		ID:         id,
		UserID:     req.UserID,
		Sentiment:  req.Sentiment,
		RecordedAt: req.RecordedAt,
	}
	if err := a.Reflections.UpdateReflection(r.Context(), reflection); err != nil {
		if req.Sentiment == "" {
			writeBadRequest(w, err.Error())
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reflection)
}

func (a *API) deleteReflection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "invalid reflection id")
		return
	}

	if err := a.Reflections.RemoveReflection(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) userReport(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "invalid user id")
		return
	}

	report, err := a.Reports.UserReport(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (a *API) systemReport(w http.ResponseWriter, r *http.Request) {
	report, err := a.Reports.SystemReport(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (a *API) periodReport(w http.ResponseWriter, r *http.Request) {
	start, err := parseDate(r.URL.Query().Get("start"))
	if err != nil {
		writeBadRequest(w, "invalid start date")
		return
	}
	end, err := parseDate(r.URL.Query().Get("end"))
	if err != nil {
		writeBadRequest(w, "invalid end date")
		return
	}

	report, err := a.Reports.PeriodReport(r.Context(), start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (a *API) motivationalQuote(w http.ResponseWriter, r *http.Request) {
	quote := a.Integrations.MotivationalQuote(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"quote":     quote,
		"timestamp": time.Now(),
	})
}

func (a *API) lookupAddress(w http.ResponseWriter, r *http.Request) {
	addr, err := a.Integrations.LookupAddress(r.Context(), chi.URLParam(r, "cep"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, addr)
}

func (a *API) currentWeather(w http.ResponseWriter, r *http.Request) {
	latitude, err := strconv.ParseFloat(r.URL.Query().Get("latitude"), 64)
	if err != nil {
		writeBadRequest(w, "invalid latitude")
		return
	}
	longitude, err := strconv.ParseFloat(r.URL.Query().Get("longitude"), 64)
	if err != nil {
		writeBadRequest(w, "invalid longitude")
		return
	}

	weather, err := a.Integrations.CurrentWeather(r.Context(), latitude, longitude)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"location": map[string]float64{"latitude": latitude, "longitude": longitude},
		"weather":  weather,
	})
}

// userMotivation pairs an existing user with a motivational quote
func (a *API) userMotivation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "invalid user id")
		return
	}

	user, err := a.Users.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	quote := a.Integrations.MotivationalQuote(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"userId":    user.ID,
		"name":      user.Name,
		"quote":     quote,
		"timestamp": time.Now(),
	})
}
