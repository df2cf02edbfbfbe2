package routes

import (
	"net/http"

	"github.com/PDPSchoolTeam/Metsenat-API/internal/handlers"
	appmw "github.com/PDPSchoolTeam/Metsenat-API/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

func NewRoutes(h *handlers.Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", h.Login)
	r.With(appmw.Authenticated).Get("/auth/me", h.Me)

	// The sponsor application form is public; everything else requires a
	// token.
	r.Post("/sponsors", h.CreateSponsor)

	r.Group(func(r chi.Router) {
		r.Use(appmw.Authenticated)

		r.Get("/sponsors", h.GetSponsors)
		r.Get("/sponsors/{id}", h.GetSponsor)
		r.Put("/sponsors/{id}", h.UpdateSponsor)
		r.Delete("/sponsors/{id}", h.DeleteSponsor)

		r.Get("/students", h.GetStudents)
		r.Post("/students", h.CreateStudent)
		r.Get("/students/{id}", h.GetStudent)
		r.Put("/students/{id}", h.UpdateStudent)
		r.Delete("/students/{id}", h.DeleteStudent)

		r.Post("/allocations", h.CreateAllocation)
		r.Get("/allocations", h.GetAllocations)

		r.Get("/universities", h.GetUniversities)
		r.Post("/universities", h.CreateUniversity)
		r.Get("/universities/{id}", h.GetUniversity)

		r.Get("/payments/total", h.GetTotalPayments)
	})

	return r
}
