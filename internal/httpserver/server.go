// internal/httpserver/server.go
//
// HTTP wiring for the word-game backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints (optional auth): POST /game/new, POST /game/guess,
//     GET /game/{gameID}.
//   - Daily-word endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints (require auth): /auth/*, /stats/me,
//     /games/mine (auth.go).
//
// Notes:
//   - Live games sit in the in-memory registry keyed by game ID; durable
//     per-player snapshots go through the KV store so a game survives a
//     restart and is rebuilt by replaying its guesses.
//   - CORS is origin-aware and credentials-enabled so cookies work.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"sanapeli/internal/game"
	"sanapeli/internal/store"
	"sanapeli/internal/words"
)

// Server bundles router, session registry, KV snapshots and the DB handle.
type Server struct {
	r   *chi.Mux
	reg store.Registry
	kv  store.KV
	db  *sql.DB
}

// New constructs a Server, installs middleware, and registers routes.
func New(reg store.Registry, kv store.KV, db *sql.DB) *Server {
	s := &Server{r: chi.NewRouter(), reg: reg, kv: kv, db: db}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(corsFromEnv)

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"sanapeli","endpoints":["/health","POST /game/new","POST /game/guess","GET /game/{id}","/daily/*","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		perLength, daily := words.Stats()
		_ = json.NewEncoder(w).Encode(map[string]any{"perLength": perLength, "daily": daily})
	})

	s.r.With(s.withOptionalAuth()).Post("/game/new", s.handleNewGame)
	s.r.With(s.withOptionalAuth()).Post("/game/guess", s.handleGuess)
	s.r.With(s.withOptionalAuth()).Get("/game/{gameID}", s.handleGetGame)

	s.mountDaily(s.r.With(s.withOptionalAuth()))
	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin
// (CLIENT_ORIGIN env var; defaults to the local dev client).
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ GAME ---------------------------------------

type newGameReq struct {
	Mode       string `json:"mode"`       // "classic" | "relay" | "daily_word"
	WordLength int    `json:"wordLength"` // defaults to 5
	Resume     bool   `json:"resume"`     // reattach to the stored snapshot
	Answer     string `json:"answer"`     // optional fixed answer (testing)
}

// rowRes is one revealed board row.
type rowRes struct {
	Guess string   `json:"guess"`
	Marks []string `json:"marks"`
}

// boardRes is the full client-facing view of a game.
type boardRes struct {
	GameID     string            `json:"gameId"`
	Mode       string            `json:"mode"`
	WordLength int               `json:"wordLength"`
	MaxGuesses int               `json:"maxGuesses"`
	Rows       []rowRes          `json:"rows"`
	Keyboard   map[string]string `json:"keyboard"`
	Typing     []string          `json:"typing,omitempty"` // hints for a partially typed row
	State      string            `json:"state"`
	Message    string            `json:"message"`
	Streak     int               `json:"streak"`
}

// handleNewGame starts (or resumes) a game for the caller's scope.
//
// Resume loads the stored snapshot and reattaches when it is still in
// progress. Otherwise a fresh secret is drawn; relay mode additionally
// carries the previous winning word in as a revealed first row.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	mode := game.ModeClassic
	if req.Mode != "" {
		m, err := game.ParseMode(req.Mode)
		if err != nil || m == game.ModeDailyWord {
			http.Error(w, `{"error":"bad_mode"}`, http.StatusBadRequest)
			return
		}
		mode = m
	}
	length := req.WordLength
	if length == 0 {
		length = game.DefaultWordLength
	}

	owner := s.ownerID(w, r)
	scope := gameScope(owner, mode)

	prev, havePrev, err := store.LoadGame(r.Context(), s.kv, scope, words.Checker{})
	if err != nil {
		log.Error().Err(err).Msg("load snapshot")
		http.Error(w, `{"error":"load_failed"}`, http.StatusInternalServerError)
		return
	}

	if req.Resume && havePrev && prev.Guessing {
		if err := s.reg.Save(r.Context(), prev); err != nil {
			http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(s.board(prev))
		return
	}

	answer := req.Answer
	if answer == "" {
		answer, err = words.Random(length)
		if err != nil {
			http.Error(w, `{"error":"bad_word_length"}`, http.StatusBadRequest)
			return
		}
	}

	g := game.New(mode, []rune(answer), words.Checker{})
	if havePrev {
		g.Streak = prev.Streak
		if mode == game.ModeRelay && prev.Winner && prev.WordLength == g.WordLength {
			g.SeedRow(prev.Answer)
		}
	}

	if err := s.reg.Save(r.Context(), g); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	if err := store.SaveGame(r.Context(), s.kv, scope, g); err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("persist snapshot")
	}
	s.insertGameRow(r, g, owner)

	_ = json.NewEncoder(w).Encode(s.board(g))
}

type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}

// guessRes extends the board with the flags the client renders inline.
type guessRes struct {
	boardRes
	TooShort    bool `json:"tooShort,omitempty"`
	UnknownWord bool `json:"unknownWord,omitempty"`
}

// handleGuess applies one guess. Too-short and not-on-the-list guesses are
// reported as ordinary game state (message + flag), not HTTP errors; only
// unknown game IDs and finished games fail the request.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	g, err := s.reg.Get(r.Context(), req.GameID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}

	_, state, err := g.SubmitGuess(req.Guess)
	res := guessRes{boardRes: s.board(g)}
	switch {
	case errors.Is(err, game.ErrTooShort):
		res.TooShort = true
		_ = json.NewEncoder(w).Encode(res)
		return
	case errors.Is(err, game.ErrUnknownWord):
		res.UnknownWord = true
		_ = json.NewEncoder(w).Encode(res)
		return
	case errors.Is(err, game.ErrGameOver):
		http.Error(w, `{"error":"game_finished"}`, http.StatusConflict)
		return
	case err != nil:
		http.Error(w, `{"error":"bad_guess"}`, http.StatusBadRequest)
		return
	}

	owner := s.ownerID(w, r)
	if err := store.SaveGame(r.Context(), s.kv, gameScope(owner, g.Mode), g); err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("persist snapshot")
	}
	s.recordProgress(r, g, owner, state)

	_ = json.NewEncoder(w).Encode(res)
}

// handleGetGame returns the current board for a live game. The optional
// ?typing= query holds the partially typed row; its tiles are classified
// with the coarse per-tile rule since the full row cannot be evaluated yet.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.reg.Get(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	board := s.board(g)
	if typing := r.URL.Query().Get("typing"); typing != "" && g.Guessing {
		if partial, err := words.Normalize(typing); err == nil && len([]rune(partial)) <= g.WordLength {
			for i, ch := range []rune(partial) {
				board.Typing = append(board.Typing, g.Knowledge().TileMark(g.Current, ch, i).String())
			}
		}
	}
	_ = json.NewEncoder(w).Encode(board)
}

// board renders the client view: every submitted row with its marks plus
// the keyboard hint map, both derived from the knowledge store.
func (s *Server) board(g *game.Game) boardRes {
	rows := make([]rowRes, 0, g.MaxGuesses)
	for i := 0; i < g.MaxGuesses; i++ {
		if len(g.Guesses[i]) == 0 {
			continue
		}
		marks := g.RowMarks(i)
		names := make([]string, len(marks))
		for j, m := range marks {
			names[j] = m.String()
		}
		rows = append(rows, rowRes{Guess: string(g.Guesses[i]), Marks: names})
	}

	keyboard := make(map[string]string)
	for _, ch := range words.Alphabet {
		if m := g.Knowledge().KeyMark(g.Current, ch); m != game.TileNone {
			keyboard[string(ch)] = m.String()
		}
	}

	return boardRes{
		GameID:     g.ID,
		Mode:       string(g.Mode),
		WordLength: g.WordLength,
		MaxGuesses: g.MaxGuesses,
		Rows:       rows,
		Keyboard:   keyboard,
		State:      g.State(),
		Message:    g.Message,
		Streak:     g.Streak,
	}
}

// gameScope keys KV snapshots per owner and mode.
func gameScope(owner string, mode game.Mode) string {
	return owner + "|" + string(mode)
}

// insertGameRow records game ownership for history/stats (best effort).
func (s *Server) insertGameRow(r *http.Request, g *game.Game, owner string) {
	if s.db == nil {
		return
	}
	now := time.Now().UTC().Format(time.RFC3339)
	col := "anonymous_id"
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		col = "user_id"
		owner = me.ID
	}
	_, err := s.db.Exec(`INSERT INTO games (id, `+col+`, mode, word_length, started_at, status, guesses)
	                     VALUES (?,?,?,?,?,?,0)`, g.ID, owner, string(g.Mode), g.WordLength, now, "playing")
	if err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("insert game row")
	}
}

// recordProgress bumps the games row and, when the game just ended,
// updates the owner's stats (best effort, never fails the request).
func (s *Server) recordProgress(r *http.Request, g *game.Game, owner, state string) {
	if s.db == nil {
		return
	}
	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	ownerClause := `anonymous_id=?`
	ownerArg := any(owner)
	if me != nil {
		ownerClause = `user_id=?`
		ownerArg = any(me.ID)
	}

	tx, err := s.db.Begin()
	if err != nil {
		log.Warn().Err(err).Msg("begin progress tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`UPDATE games SET guesses = guesses + 1 WHERE id=? AND `+ownerClause, g.ID, ownerArg); err != nil {
		log.Warn().Err(err).Msg("update guesses")
	}
	if state == "won" || state == "lost" {
		if _, err := tx.Exec(`UPDATE games SET status=?, finished_at=? WHERE id=? AND `+ownerClause,
			state, time.Now().UTC().Format(time.RFC3339), g.ID, ownerArg); err != nil {
			log.Warn().Err(err).Msg("finish game")
		}
		if me != nil {
			if err := s.bumpStats(tx, me.ID, state == "won"); err != nil {
				log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
			}
		}
	}
	_ = tx.Commit()
}

// ------------------------------- small util --------------------------------

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
