// internal/httpserver/routes_daily.go
//
// Routes for the daily-word mode, mounted under /daily:
//   - POST /daily/new         → start or reopen today's game
//   - POST /daily/guess       → submit a guess for today's word
//   - GET  /daily/leaderboard → top results for today (or a given date)
//
// Everyone gets the same word on the same date: the day offset from the
// daily epoch indexes the ordered daily list. One play per owner per
// date; a finished game reopens read-only with its history replayed from
// the KV record.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"sanapeli/internal/daily"
	"sanapeli/internal/game"
	"sanapeli/internal/store"
	"sanapeli/internal/words"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	results  *daily.Store
	sessions map[string]*dailySession // keyed by game ID
	mu       sync.Mutex               // guards sessions
}

// dailySession ties a live game to its owner and date.
type dailySession struct {
	Owner     string
	Date      string
	WordIndex int
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		sessions: make(map[string]*dailySession),
	}
	if s.db != nil {
		dd.results = daily.NewStore(s.db)
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/guess", dd.handleGuess)
		r.Get("/leaderboard", dd.handleLeaderboard)
		r.Get("/history", dd.handleHistory)
	})
}

// wordOfDay resolves today's date key, list index and word.
func wordOfDay(now time.Time) (date string, idx int, word string, ok bool) {
	date = daily.DateKey(now)
	idx = daily.Index(now, words.DailyCount())
	word, ok = words.Daily(idx)
	return date, idx, word, ok
}

func dailyScope(owner string) string { return owner + "|daily" }

// dailyRes decorates the board with the play-once bookkeeping.
type dailyRes struct {
	boardRes
	Date   string `json:"date"`
	Played bool   `json:"played"` // finished for this date
}

// handleNew starts today's game, or reopens it from the stored record.
func (dd *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	owner := dd.srv.ownerID(w, r)
	date, idx, word, ok := wordOfDay(time.Now())
	if !ok {
		http.Error(w, `{"error":"no_daily_word"}`, http.StatusInternalServerError)
		return
	}

	scope := dailyScope(owner)
	entry, have, err := store.LoadDailyEntry(r.Context(), dd.srv.kv, scope, date)
	if err != nil {
		http.Error(w, `{"error":"load_failed"}`, http.StatusInternalServerError)
		return
	}

	var g *game.Game
	if have {
		g = game.New(game.ModeDailyWord, []rune(entry.Word), words.Checker{})
		if err := g.Replay(entry.Guesses); err != nil {
			log.Warn().Err(err).Str("date", date).Msg("discarding unreplayable daily record")
			have = false
		} else {
			g.Current = entry.Current
			g.Guessing = entry.Guessing
			g.Winner = entry.Winner
			if !g.Guessing {
				g.Message = game.DailyDoneMessage()
			}
		}
	}
	if !have {
		g = game.New(game.ModeDailyWord, []rune(word), words.Checker{})
		if err := dd.saveEntry(r, scope, date, g); err != nil {
			log.Warn().Err(err).Str("date", date).Msg("persist daily record")
		}
	}

	if err := dd.srv.reg.Save(r.Context(), g); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	dd.mu.Lock()
	dd.sessions[g.ID] = &dailySession{Owner: owner, Date: date, WordIndex: idx}
	dd.mu.Unlock()

	_ = json.NewEncoder(w).Encode(dailyRes{
		boardRes: dd.srv.board(g),
		Date:     date,
		Played:   !g.Guessing,
	})
}

// handleGuess applies a guess to an active daily session and persists the
// record; a finished game additionally lands in the results table.
func (dd *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}

	dd.mu.Lock()
	sess := dd.sessions[req.GameID]
	dd.mu.Unlock()
	if sess == nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	g, err := dd.srv.reg.Get(r.Context(), req.GameID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}

	_, state, err := g.SubmitGuess(req.Guess)
	res := dailyRes{Date: sess.Date}
	switch {
	case err == game.ErrTooShort || err == game.ErrUnknownWord:
		res.boardRes = dd.srv.board(g)
		_ = json.NewEncoder(w).Encode(guessRes{
			boardRes:    res.boardRes,
			TooShort:    err == game.ErrTooShort,
			UnknownWord: err == game.ErrUnknownWord,
		})
		return
	case err == game.ErrGameOver:
		http.Error(w, `{"error":"already_played"}`, http.StatusConflict)
		return
	case err != nil:
		http.Error(w, `{"error":"bad_guess"}`, http.StatusBadRequest)
		return
	}

	scope := dailyScope(sess.Owner)
	if err := dd.saveEntry(r, scope, sess.Date, g); err != nil {
		log.Warn().Err(err).Str("date", sess.Date).Msg("persist daily record")
	}

	if (state == "won" || state == "lost") && dd.results != nil {
		err := dd.results.InsertResult(r.Context(), daily.Result{
			OwnerID:   sess.Owner,
			Date:      sess.Date,
			WordIndex: sess.WordIndex,
			Won:       g.Winner,
			Guesses:   countSubmitted(g),
		})
		if err != nil {
			log.Warn().Err(err).Str("date", sess.Date).Msg("insert daily result")
		}
	}

	res.boardRes = dd.srv.board(g)
	res.Played = !g.Guessing
	_ = json.NewEncoder(w).Encode(res)
}

// handleLeaderboard lists the best results for a date (default today).
func (dd *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if dd.results == nil {
		_ = json.NewEncoder(w).Encode([]daily.LBRow{})
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(time.Now())
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	rows, err := dd.results.Leaderboard(r.Context(), date, limit)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []daily.LBRow{}
	}
	_ = json.NewEncoder(w).Encode(rows)
}

// historyRow is one past daily play of the calling owner.
type historyRow struct {
	Date    string `json:"date"`
	Won     bool   `json:"won"`
	Playing bool   `json:"playing"`
	Guesses int    `json:"guesses"`
	Word    string `json:"word,omitempty"` // revealed only once finished
}

// handleHistory lists the owner's played dates with their outcomes.
func (dd *dailyServer) handleHistory(w http.ResponseWriter, r *http.Request) {
	owner := dd.srv.ownerID(w, r)
	scope := dailyScope(owner)

	dates, err := store.DailyDates(r.Context(), dd.srv.kv, scope)
	if err != nil {
		http.Error(w, `{"error":"load_failed"}`, http.StatusInternalServerError)
		return
	}
	out := []historyRow{}
	for _, date := range dates {
		entry, ok, err := store.LoadDailyEntry(r.Context(), dd.srv.kv, scope, date)
		if err != nil || !ok {
			continue
		}
		row := historyRow{
			Date:    entry.Date,
			Won:     entry.Winner,
			Playing: entry.Guessing,
			Guesses: len(entry.Guesses),
		}
		if !entry.Guessing {
			row.Word = entry.Word
		}
		out = append(out, row)
	}
	_ = json.NewEncoder(w).Encode(out)
}

// saveEntry writes the current daily game state as its dated KV record.
func (dd *dailyServer) saveEntry(r *http.Request, scope, date string, g *game.Game) error {
	return store.SaveDailyEntry(r.Context(), dd.srv.kv, scope, store.DailyEntry{
		Word:     string(g.Answer),
		Date:     date,
		Guesses:  g.Guesses,
		Current:  g.Current,
		Guessing: g.Guessing,
		Winner:   g.Winner,
	})
}

// countSubmitted counts the non-empty guess rows.
func countSubmitted(g *game.Game) int {
	n := 0
	for _, row := range g.Guesses {
		if len(row) > 0 {
			n++
		}
	}
	return n
}
