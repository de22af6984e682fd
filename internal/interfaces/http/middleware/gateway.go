package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stockdash/backend/internal/domain/identity"
	"github.com/stockdash/backend/internal/infrastructure/logger"
	"github.com/stockdash/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Gin context keys set for authenticated requests
const (
	PrincipalIDKey   = "principal_id"
	PrincipalRoleKey = "principal_role"
	PrincipalNameKey = "principal_name"
	AuthHeaderKey    = "Authorization"
	BearerPrefix     = "Bearer "
)

// Gateway deny reasons
const (
	ReasonAuthRequired = "Authentication required"
	ReasonInvalidToken = "Invalid or expired token"
)

// identityHeaderPrefix covers X-User-Id, X-User-Role and X-User-Name
const identityHeaderPrefix = "X-User-"

// TokenDecoder turns a session token back into a principal id
type TokenDecoder interface {
	Decode(token string) (string, error)
}

// Outcome is the terminal result of a gateway decision
type Outcome int

const (
	OutcomeAllow Outcome = iota
	OutcomeRedirect
	OutcomeDeny
)

// String returns the outcome name used in logs
func (o Outcome) String() string {
	switch o {
	case OutcomeAllow:
		return "allow"
	case OutcomeRedirect:
		return "redirect"
	case OutcomeDeny:
		return "deny"
	default:
		return "unknown"
	}
}

// Request is what the gateway needs to know about an inbound request
type Request struct {
	Path  string
	Token string
}

// Verdict is the gateway's decision for one request.
// Principal is set only for allowed requests that presented a valid session.
type Verdict struct {
	Outcome   Outcome
	Class     RouteClass
	Principal *identity.Principal
	Target    string
	Status    int
	Reason    string
}

// Gateway decides whether a request is public, needs a session or needs the
// admin role. It keeps no state between requests.
type Gateway struct {
	routes    RouteTable
	tokens    TokenDecoder
	directory identity.PrincipalDirectory
}

// NewGateway creates a new Gateway
func NewGateway(routes RouteTable, tokens TokenDecoder, directory identity.PrincipalDirectory) *Gateway {
	return &Gateway{
		routes:    routes,
		tokens:    tokens,
		directory: directory,
	}
}

// Routes returns the gateway's route table
func (g *Gateway) Routes() RouteTable {
	return g.routes
}

// Decide evaluates one request. Decode and lookup failures degrade to the
// same outcome as a missing token; Decide never reports an internal error.
func (g *Gateway) Decide(ctx context.Context, req Request) Verdict {
	class := g.routes.Classify(req.Path)

	switch class {
	case RoutePublic:
		if req.Token != "" && req.Path == g.routes.LoginPath {
			if _, err := g.authenticate(ctx, req.Token); err == nil {
				return Verdict{Outcome: OutcomeRedirect, Class: class, Target: g.routes.HomePath}
			}
		}
		return Verdict{Outcome: OutcomeAllow, Class: class}
	case RoutePublicAPI:
		return Verdict{Outcome: OutcomeAllow, Class: class}
	}

	if req.Token == "" {
		return g.unauthenticated(class, req.Path, ReasonAuthRequired)
	}

	principal, err := g.authenticate(ctx, req.Token)
	if err != nil {
		return g.unauthenticated(class, req.Path, ReasonInvalidToken)
	}

	if class == RouteAdminUI && !principal.IsAdmin() {
		return Verdict{Outcome: OutcomeRedirect, Class: class, Target: g.routes.HomePath}
	}
	return Verdict{Outcome: OutcomeAllow, Class: class, Principal: &principal}
}

func (g *Gateway) authenticate(ctx context.Context, token string) (identity.Principal, error) {
	principalID, err := g.tokens.Decode(token)
	if err != nil {
		return identity.Principal{}, err
	}
	return g.directory.Resolve(ctx, principalID)
}

func (g *Gateway) unauthenticated(class RouteClass, path, reason string) Verdict {
	if class.IsAPI() {
		return Verdict{Outcome: OutcomeDeny, Class: class, Status: http.StatusUnauthorized, Reason: reason}
	}
	return Verdict{
		Outcome: OutcomeRedirect,
		Class:   class,
		Target:  g.routes.LoginPath + "?" + url.Values{"redirect": {path}}.Encode(),
		Reason:  reason,
	}
}

// GatewayMiddlewareConfig holds configuration for the gateway middleware
type GatewayMiddlewareConfig struct {
	Gateway *Gateway
	// CookieName is the session cookie read when no bearer token is sent
	CookieName string
	// SkipPaths bypass the gateway entirely (health probes)
	SkipPaths []string
	Logger    *zap.Logger
}

// GatewayMiddleware runs every request through the gateway and applies its verdict
func GatewayMiddleware(cfg GatewayMiddlewareConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if path == skip {
				c.Next()
				return
			}
		}

		// Identity only ever comes from the verdict
		stripIdentityHeaders(c.Request.Header)

		verdict := cfg.Gateway.Decide(c.Request.Context(), Request{
			Path:  path,
			Token: ExtractToken(c, cfg.CookieName),
		})

		fields := []zap.Field{
			zap.String("path", path),
			zap.String("route_class", verdict.Class.String()),
			zap.String("outcome", verdict.Outcome.String()),
		}
		if verdict.Reason != "" {
			fields = append(fields, zap.String("reason", verdict.Reason))
		}
		log.Debug("Gateway decision", fields...)

		switch verdict.Outcome {
		case OutcomeDeny:
			c.AbortWithStatusJSON(verdict.Status, dto.NewErrorResponse(
				dto.ErrCodeUnauthorized, verdict.Reason, c.GetString("request_id"),
			))
		case OutcomeRedirect:
			c.Redirect(http.StatusTemporaryRedirect, verdict.Target)
			c.Abort()
		default:
			if verdict.Principal != nil {
				attachPrincipal(c, *verdict.Principal)
			}
			c.Next()
		}
	}
}

// ExtractToken returns the bearer token, falling back to the session cookie
func ExtractToken(c *gin.Context, cookieName string) string {
	if header := c.GetHeader(AuthHeaderKey); strings.HasPrefix(header, BearerPrefix) {
		if token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix)); token != "" {
			return token
		}
	}
	if cookieName == "" {
		return ""
	}
	token, err := c.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return token
}

// CurrentPrincipal returns the principal the gateway attached to the request
func CurrentPrincipal(c *gin.Context) (identity.Principal, bool) {
	return identity.PrincipalFromContext(c.Request.Context())
}

func attachPrincipal(c *gin.Context, p identity.Principal) {
	c.Set(PrincipalIDKey, p.ID)
	c.Set(PrincipalRoleKey, p.Role.String())
	c.Set(PrincipalNameKey, p.Name)

	ctx := identity.WithPrincipal(c.Request.Context(), p)
	ctx, _ = logger.WithUserID(ctx, logger.FromContext(ctx), p.ID)
	c.Request = c.Request.WithContext(ctx)
}

func stripIdentityHeaders(h http.Header) {
	for key := range h {
		if strings.HasPrefix(http.CanonicalHeaderKey(key), identityHeaderPrefix) {
			h.Del(key)
		}
	}
}
