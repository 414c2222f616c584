package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	auth "github.com/mind-engage/mindengage-quiz/internal/auth/middleware"
	"github.com/mind-engage/mindengage-quiz/internal/grading"
	"github.com/mind-engage/mindengage-quiz/internal/quiz"
	"github.com/mind-engage/mindengage-quiz/internal/storage"
)

// Deps is everything the router needs. Optional parts are nil when disabled.
type Deps struct {
	Bank       *quiz.Provider
	Sink       quiz.Sink // where admin uploads are written
	Scorer     *grading.Scorer
	Categories []string
	Pick       quiz.Picker

	Tickets       *auth.TicketService // nil: no tickets
	RequireTicket bool

	AdminUser     string
	AdminPassHash string // empty: admin routes not mounted

	Assets      storage.BlobStore // nil: no UI
	CORSOrigins []string
}

func NewRouter(d Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/api", func(ar chi.Router) {
		ar.Get("/questions", QuestionsHandler(d.Bank, d.Categories, d.Pick, d.Tickets))
		ar.With(auth.TicketMiddleware(d.Tickets, d.RequireTicket)).
			Post("/submit", SubmitHandler(d.Bank, d.Scorer))
		ar.Post("/score", ScoreHandler(d.Scorer))

		if d.AdminPassHash != "" {
			ar.Route("/admin", func(adm chi.Router) {
				adm.Use(auth.AdminGuard(d.AdminUser, d.AdminPassHash))
				adm.Post("/reload", ReloadHandler(d.Bank))
				if d.Sink != nil {
					adm.Put("/bank", UploadBankHandler(d.Sink, d.Bank))
				}
			})
		}
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if !d.Bank.Ready() {
			http.Error(w, "bank not loaded", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(200)
	})

	if d.Assets != nil {
		MountAssets(r, d.Assets)
	}
	return r
}
