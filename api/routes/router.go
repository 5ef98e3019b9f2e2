package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fitdesk-hq/fitdesk-backend/api/controllers"
	"github.com/fitdesk-hq/fitdesk-backend/api/middleware"
	internalAuth "github.com/fitdesk-hq/fitdesk-backend/internal/auth"
	"github.com/fitdesk-hq/fitdesk-backend/internal/documents"
	"github.com/fitdesk-hq/fitdesk-backend/internal/finance"
	"github.com/fitdesk-hq/fitdesk-backend/internal/invites"
	"github.com/fitdesk-hq/fitdesk-backend/internal/leads"
	"github.com/fitdesk-hq/fitdesk-backend/internal/materials"
	"github.com/fitdesk-hq/fitdesk-backend/internal/procurement"
	"github.com/fitdesk-hq/fitdesk-backend/internal/quotations"
	"github.com/fitdesk-hq/fitdesk-backend/internal/studios"
	"github.com/fitdesk-hq/fitdesk-backend/internal/vendors"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/auth/session"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/config"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/db"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/logger"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/metrics"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/redis"
)

// Dependencies carries everything the router needs wired.
type Dependencies struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       *db.Client
	Redis    *redis.Client
	Sessions *session.Manager

	Auth        *internalAuth.Service
	Studios     *studios.Service
	Invites     *invites.Service
	Leads       *leads.Service
	Quotations  *quotations.Service
	Vendors     *vendors.Service
	Materials   *materials.Service
	Procurement *procurement.Service
	Documents   *documents.Service
	Finance     *finance.Service
}

// New assembles the HTTP surface.
func New(deps Dependencies) http.Handler {
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(middleware.Recoverer(logg))
	r.Use(middleware.RequestID(logg))
	r.Use(middleware.Logging(logg))
	r.Use(metrics.Instrument)

	r.Get("/health/live", controllers.Liveness())
	r.Get("/health/ready", controllers.Readiness(deps.DB, deps.Redis, logg))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", controllers.Register(deps.Auth, logg))
			r.Post("/login", controllers.Login(deps.Auth, logg))
			r.Post("/refresh", controllers.Refresh(deps.Auth, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(deps.Config.JWT, deps.Sessions, logg))
				r.Post("/logout", controllers.Logout(deps.Auth, logg))
				r.Post("/switch-studio", controllers.SwitchStudio(deps.Auth, logg))
			})
		})

		// Authenticated but not studio-scoped: the caller may not belong to
		// a studio yet.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(deps.Config.JWT, deps.Sessions, logg))
			r.Use(middleware.Idempotency(deps.Redis, logg))

			r.Post("/studios", controllers.CreateStudio(deps.Studios, logg))
			r.Post("/invites/accept", controllers.AcceptInvite(deps.Invites, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(deps.Config.JWT, deps.Sessions, logg))
			r.Use(middleware.Idempotency(deps.Redis, logg))
			r.Use(middleware.StudioContext(logg))

			r.Route("/studio", func(r chi.Router) {
				r.Get("/", controllers.GetStudio(deps.Studios, logg))
				r.Put("/", controllers.UpdateStudio(deps.Studios, logg))
				r.Get("/members", controllers.ListMembers(deps.Studios, logg))
			})

			r.Route("/invites", func(r chi.Router) {
				r.Use(middleware.RequireManager(logg))
				r.Get("/", controllers.ListInvites(deps.Invites, logg))
				r.Post("/", controllers.CreateInvite(deps.Invites, logg))
				r.Delete("/{inviteID}", controllers.RevokeInvite(deps.Invites, logg))
			})

			r.Route("/leads", func(r chi.Router) {
				r.Get("/", controllers.ListLeads(deps.Leads, logg))
				r.Post("/", controllers.CreateLead(deps.Leads, logg))
				r.Get("/{leadID}", controllers.GetLead(deps.Leads, logg))
				r.Patch("/{leadID}", controllers.UpdateLead(deps.Leads, logg))
				r.Delete("/{leadID}", controllers.DeleteLead(deps.Leads, logg))
				r.Post("/{leadID}/transition", controllers.TransitionLead(deps.Leads, logg))
			})

			r.Route("/quotations", func(r chi.Router) {
				r.Get("/", controllers.ListQuotations(deps.Quotations, logg))
				r.Post("/", controllers.CreateQuotation(deps.Quotations, logg))
				r.Get("/{quotationID}", controllers.GetQuotation(deps.Quotations, logg))
				r.Patch("/{quotationID}", controllers.UpdateQuotation(deps.Quotations, logg))
				r.Post("/{quotationID}/revision", controllers.ReviseQuotation(deps.Quotations, logg))
				r.Post("/{quotationID}/duplicate", controllers.DuplicateQuotation(deps.Quotations, logg))
			})

			r.Route("/vendors", func(r chi.Router) {
				r.Get("/", controllers.ListVendors(deps.Vendors, logg))
				r.Post("/", controllers.CreateVendor(deps.Vendors, logg))
				r.Get("/{vendorID}", controllers.GetVendor(deps.Vendors, logg))
				r.Patch("/{vendorID}", controllers.UpdateVendor(deps.Vendors, logg))
			})

			r.Route("/materials", func(r chi.Router) {
				r.Get("/", controllers.ListMaterials(deps.Materials, logg))
				r.Post("/", controllers.CreateMaterial(deps.Materials, logg))
				r.Get("/{materialID}", controllers.GetMaterial(deps.Materials, logg))
				r.Patch("/{materialID}", controllers.UpdateMaterial(deps.Materials, logg))
			})

			r.Route("/purchase-orders", func(r chi.Router) {
				r.Use(middleware.RequireManager(logg))
				r.Get("/", controllers.ListPurchaseOrders(deps.Procurement, logg))
				r.Post("/", controllers.CreatePurchaseOrder(deps.Procurement, logg))
				r.Get("/{orderID}", controllers.GetPurchaseOrder(deps.Procurement, logg))
				r.Post("/{orderID}/issue", controllers.IssuePurchaseOrder(deps.Procurement, logg))
				r.Post("/{orderID}/cancel", controllers.CancelPurchaseOrder(deps.Procurement, logg))
				r.Post("/{orderID}/receipts", controllers.PostGoodsReceipt(deps.Procurement, logg))
			})

			r.Route("/requisitions", func(r chi.Router) {
				r.Get("/", controllers.ListRequisitions(deps.Procurement, logg))
				r.Post("/", controllers.CreateRequisition(deps.Procurement, logg))
				r.With(middleware.RequireManager(logg)).
					Post("/{requisitionID}/decision", controllers.DecideRequisition(deps.Procurement, logg))
			})

			r.Route("/documents", func(r chi.Router) {
				r.Get("/", controllers.ListDocuments(deps.Documents, logg))
				r.Post("/", controllers.CreateDocument(deps.Documents, logg))
				r.Delete("/{documentID}", controllers.DeleteDocument(deps.Documents, logg))
			})

			r.Get("/finance/summary", controllers.FinanceSummary(deps.Finance, logg))
		})
	})

	return r
}
