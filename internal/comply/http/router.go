package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/clausehq/comply/internal/comply/domain"
	"github.com/clausehq/comply/internal/comply/service"
	"github.com/clausehq/comply/internal/comply/store"
	"github.com/clausehq/comply/pkg/complysdk"
	"github.com/clausehq/comply/pkg/httpx"
	"github.com/clausehq/comply/pkg/slogx"
	"github.com/clausehq/comply/pkg/tokenx"

	_ "github.com/clausehq/comply/api/comply" // Swagger docs
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	signer       *tokenx.Signer
	appOrigin    string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	AuthService         *service.AuthService
	BootstrapService    *service.BootstrapService
	InvitationService   *service.InvitationService
	MemberService       *service.MemberService
	OrganisationService *service.OrganisationService
	StandardService     *service.StandardService
	RecordService       *service.RecordService
	NotificationService *service.NotificationService
}

func NewRouter(
	signer *tokenx.Signer,
	appOrigin string,
	buildVersion string,
	allowedOrigins []string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		signer:       signer,
		appOrigin:    appOrigin,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	corsMiddleware := cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		corsMiddleware,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerBootstrap()
	r.registerInvitations()
	r.registerOrganisation()
	r.registerMembers()
	r.registerStandards()
	r.registerRecords()
	r.registerNotifications()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Compliance Tracking Service API
//	@version		0.1.0
//	@description	Multi-tenant compliance record tracking with invitation-based membership.
//	@description
//	@description				Sessions are HMAC-signed JWTs minted at login or invitation acceptance.
//
//	@contact.name				ClauseHQ Team
//	@contact.url				https://github.com/clausehq/comply
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &LoginHandler{AuthService: r.AuthService}

	// Strict limit keyed by IP; this is the brute-force surface.
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(h,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerBootstrap() {
	h := &BootstrapHandler{BootstrapService: r.BootstrapService}

	r.Mux.Handle("POST /v1/bootstrap",
		httpx.Chain(h,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerInvitations() {
	send := &InvitationSendHandler{
		InvitationService: r.InvitationService,
		AppOrigin:         r.appOrigin,
	}
	list := &InvitationListHandler{InvitationService: r.InvitationService}
	validate := &InvitationValidateHandler{
		InvitationService:   r.InvitationService,
		OrganisationService: r.OrganisationService,
	}
	accept := &InvitationAcceptHandler{
		InvitationService: r.InvitationService,
		Signer:            r.signer,
	}

	// Issuance and listing are admin-only.
	r.Mux.Handle("POST /v1/invitations",
		httpx.Chain(send,
			httpx.AuthnMiddleware(r.signer),
			httpx.RequireRole(string(domain.RoleAdmin)),
			httpx.RateLimitByMember(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/invitations",
		httpx.Chain(list,
			httpx.AuthnMiddleware(r.signer),
			httpx.RequireRole(string(domain.RoleAdmin)),
			httpx.RateLimitByMember(httpx.LenientLimit),
		),
	)

	// Validation and acceptance are unauthenticated; the token is the
	// credential. Strict IP limits blunt token guessing.
	r.Mux.Handle("GET /v1/invitations/validate",
		httpx.Chain(validate,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/invitations/accept",
		httpx.Chain(accept,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerOrganisation() {
	h := &OrganisationHandler{OrganisationService: r.OrganisationService}

	r.Mux.Handle("GET /v1/organisation",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.AuthnMiddleware(r.signer),
			httpx.RateLimitByMember(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("PUT /v1/organisation",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			httpx.AuthnMiddleware(r.signer),
			httpx.RequireRole(string(domain.RoleAdmin)),
			httpx.RateLimitByMember(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerMembers() {
	h := &MembersHandler{MemberService: r.MemberService}

	authed := func(handler http.Handler, admin bool, limit httpx.RateLimitConfig) http.Handler {
		middlewares := []httpx.Middleware{httpx.AuthnMiddleware(r.signer)}
		if admin {
			middlewares = append(middlewares, httpx.RequireRole(string(domain.RoleAdmin)))
		}
		middlewares = append(middlewares, httpx.RateLimitByMember(limit))
		return httpx.Chain(handler, middlewares...)
	}

	r.Mux.Handle("GET /v1/members", authed(http.HandlerFunc(h.HandleList), false, httpx.LenientLimit))
	r.Mux.Handle("GET /v1/members/me", authed(http.HandlerFunc(h.HandleMe), false, httpx.LenientLimit))
	r.Mux.Handle("PUT /v1/members/me", authed(http.HandlerFunc(h.HandleUpdateProfile), false, httpx.ModerateLimit))
	r.Mux.Handle("PUT /v1/members/{id}/role", authed(http.HandlerFunc(h.HandleChangeRole), true, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /v1/members/{id}", authed(http.HandlerFunc(h.HandleRemove), true, httpx.ModerateLimit))
}

func (r *Router) registerStandards() {
	h := &StandardsHandler{StandardService: r.StandardService}

	member := httpx.Chain(http.HandlerFunc(h.HandleList),
		httpx.AuthnMiddleware(r.signer),
		httpx.RateLimitByMember(httpx.LenientLimit),
	)
	r.Mux.Handle("GET /v1/standards", member)

	admin := func(handler http.HandlerFunc) http.Handler {
		return httpx.Chain(handler,
			httpx.AuthnMiddleware(r.signer),
			httpx.RequireRole(string(domain.RoleAdmin)),
			httpx.RateLimitByMember(httpx.ModerateLimit),
		)
	}
	r.Mux.Handle("POST /v1/standards", admin(h.HandleCreate))
	r.Mux.Handle("PUT /v1/standards/{id}", admin(h.HandleUpdate))
	r.Mux.Handle("DELETE /v1/standards/{id}", admin(h.HandleDelete))
}

func (r *Router) registerRecords() {
	h := &RecordsHandler{RecordService: r.RecordService}
	ev := &EvidenceHandler{RecordService: r.RecordService}

	authed := func(handler http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
		return httpx.Chain(handler,
			httpx.AuthnMiddleware(r.signer),
			httpx.RateLimitByMember(limit),
		)
	}

	r.Mux.Handle("GET /v1/records", authed(h.HandleList, httpx.LenientLimit))
	r.Mux.Handle("POST /v1/records", authed(h.HandleCreate, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/records/{id}", authed(h.HandleGet, httpx.LenientLimit))
	r.Mux.Handle("PUT /v1/records/{id}", authed(h.HandleUpdate, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /v1/records/{id}", authed(h.HandleDelete, httpx.ModerateLimit))

	r.Mux.Handle("POST /v1/records/{id}/evidence", authed(ev.HandleUpload, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/records/{id}/evidence", authed(ev.HandleDownload, httpx.LenientLimit))
}

func (r *Router) registerNotifications() {
	h := &NotificationsHandler{NotificationService: r.NotificationService}

	r.Mux.Handle("GET /v1/notifications",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.signer),
			httpx.RateLimitByMember(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("PUT /v1/notifications/{id}/read",
		httpx.Chain(http.HandlerFunc(h.HandleMarkRead),
			httpx.AuthnMiddleware(r.signer),
			httpx.RateLimitByMember(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}

// writeError sends the uniform error payload.
func writeError(w http.ResponseWriter, code int, msg string) {
	httpx.WriteJSON(w, code, complysdk.ErrorResponse{Error: msg})
}

// roleLabel maps the stable role enum to its display form. Labels can be
// reskinned freely; the enum values never change.
func roleLabel(role domain.Role) string {
	switch role {
	case domain.RoleAdmin:
		return "Administrator"
	case domain.RoleMember:
		return "Member"
	}
	return string(role)
}

func toSDKMember(m domain.Member) complysdk.Member {
	return complysdk.Member{
		ID:             m.ID,
		OrganisationID: m.OrganisationID,
		Email:          m.Email,
		FullName:       m.FullName,
		PhoneNumber:    m.PhoneNumber,
		Role:           string(m.Role),
		RoleLabel:      roleLabel(m.Role),
		CreatedAt:      m.CreatedAt.UTC().Format(time.RFC3339),
	}
}
