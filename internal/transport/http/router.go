package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/studlink-api/internal/application/auth"
	"github.com/studlink-api/internal/application/chat"
	"github.com/studlink-api/internal/application/community"
	"github.com/studlink-api/internal/application/user"
	"github.com/studlink-api/internal/config"
	"github.com/studlink-api/internal/domain"
	"github.com/studlink-api/internal/transport/http/handler"
	appmiddleware "github.com/studlink-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.JWTProvider)

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	authSvc := auth.NewService(auth.ServiceDeps{
		ChallengeStore: deps.ChallengeStore,
		UserRepo:       deps.UserRepo,
		Mailer:         deps.Mailer,
		JWTProvider:    deps.JWTProvider,
		AdminAuthKey:   cfg.AdminAuthKey,
	})
	userSvc := user.NewService(deps.UserRepo, deps.ObjectStore)
	chatSvc := chat.NewService(deps.MessageRepo, deps.UserRepo)
	communitySvc := community.NewService(deps.CommunityRepo)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	userH := handler.NewUserHandler(userSvc)
	chatH := handler.NewChatHandler(chatSvc)
	communityH := handler.NewCommunityHandler(communitySvc)

	r.Route("/api", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/auth/send-otp", authH.SendOTP)
		r.With(sensitiveRL.Limit).Post("/auth/verify-register", authH.VerifyRegister)
		r.With(sensitiveRL.Limit).Post("/auth/login", authH.Login)
		r.Get("/auth/verify", authH.Verify)
		r.Get("/chats/messages/{roomId}", chatH.ListMessages)
		r.Get("/communities", communityH.List)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/users/profile", userH.Profile)
			r.Post("/users/avatar", userH.UpdateAvatar)
			r.Post("/chats/messages", chatH.SendMessage)
			r.Post("/communities", communityH.Create)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin, domain.RoleSuperAdmin))

				r.Delete("/communities/{id}", communityH.Delete)
			})
		})
	})

	return r
}
