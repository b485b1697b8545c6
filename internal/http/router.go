package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/merev/ds-darts-engine/internal/game"
)

func NewRouter(gh *game.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(api chi.Router) {
		api.Get("/checkout/{score}", gh.GetCheckout) // GET /api/checkout/:score?mode=

		api.Route("/games", func(games chi.Router) {
			games.Post("/", gh.CreateGame) // POST /api/games
			games.Get("/", gh.ListGames)   // GET /api/games?phase=

			games.Route("/{id}", func(g chi.Router) {
				g.Get("/", gh.GetGame)         // GET /api/games/:id
				g.Delete("/", gh.DeleteGame)   // DELETE /api/games/:id
				g.Post("/start", gh.StartGame) // POST /api/games/:id/start
				g.Post("/turns", gh.PostTurn)  // POST /api/games/:id/turns
				g.Post("/undo", gh.UndoLastTurn)
				g.Post("/next-leg", gh.NextLeg)
				g.Post("/rematch", gh.Rematch)
				g.Post("/new", gh.NewGame)
				g.Get("/stats", gh.GetStats)
			})
		})
	})

	return r
}
