package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/splitledger/splitledger/internal/auth"
	"github.com/splitledger/splitledger/internal/middleware"
	"github.com/splitledger/splitledger/internal/service"
)

// NewRouter creates the Chi router with all API routes mounted. Everything
// under /api/v1 except /auth requires a valid session token.
func NewRouter(
	authSvc *service.AuthService,
	groupSvc *service.GroupService,
	expenseSvc *service.ExpenseService,
	balanceSvc *service.BalanceService,
	jwtManager *auth.JWTManager,
) http.Handler {
	h := &Handlers{
		authSvc:    authSvc,
		groupSvc:   groupSvc,
		expenseSvc: expenseSvc,
		balanceSvc: balanceSvc,
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.Metrics)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chimiddleware.SetHeader("Content-Type", "application/json"))

		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(jwtManager))

			r.Get("/auth/me", h.Me)
			r.Get("/auth/search", h.SearchUser)

			r.Post("/groups", h.CreateGroup)
			r.Get("/groups", h.ListGroups)
			r.Get("/groups/{groupID}", h.GetGroup)
			r.Post("/groups/{groupID}/members", h.AddMember)
			r.Delete("/groups/{groupID}/members/{memberID}", h.RemoveMember)
			r.Put("/groups/{groupID}/close", h.CloseGroup)

			r.Post("/groups/{groupID}/expenses", h.CreateExpense)
			r.Get("/groups/{groupID}/expenses", h.ListExpenses)
			r.Put("/expenses/{expenseID}", h.UpdateExpense)
			r.Delete("/expenses/{expenseID}", h.DeleteExpense)

			r.Get("/groups/{groupID}/balances", h.GetBalances)
			r.Get("/groups/{groupID}/settlement-plan", h.GetSettlementPlan)
			r.Post("/groups/{groupID}/settlements", h.RecordSettlement)
			r.Get("/groups/{groupID}/settlements", h.ListSettlements)
			r.Delete("/groups/{groupID}/settlements/{settlementID}", h.DeleteSettlement)
		})
	})

	return r
}
