package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/serroba/link-shortener/internal/alias"
	"github.com/serroba/link-shortener/internal/middleware"
	"go.uber.org/zap"
)

// AliasHandler serves both shortening products over one alias service.
// The products differ only in prefix, lifespan policy, and whether the
// caller owns the alias.
type AliasHandler struct {
	svc          *alias.Service
	baseURL      string
	publicPolicy alias.Policy
	memberPolicy alias.Policy
	logger       *zap.Logger
}

// NewAliasHandler creates an alias handler.
func NewAliasHandler(
	svc *alias.Service,
	baseURL string,
	publicPolicy, memberPolicy alias.Policy,
	logger *zap.Logger,
) *AliasHandler {
	return &AliasHandler{
		svc:          svc,
		baseURL:      baseURL,
		publicPolicy: publicPolicy,
		memberPolicy: memberPolicy,
		logger:       logger,
	}
}

// PublicShorten creates an anonymous alias under the public lifespan.
func (h *AliasHandler) PublicShorten(ctx context.Context, req *ShortenRequest) (*ShortenResponse, error) {
	return h.shorten(ctx, req, PublicPrefix, h.publicPolicy, nil)
}

// MemberShorten creates an owned alias under the member lifespan. The
// principal is established by the authentication middleware.
func (h *AliasHandler) MemberShorten(ctx context.Context, req *ShortenRequest) (*ShortenResponse, error) {
	principal, ok := middleware.PrincipalFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Authentication required")
	}

	return h.shorten(ctx, req, MemberPrefix, h.memberPolicy, &principal)
}

func (h *AliasHandler) shorten(
	ctx context.Context,
	req *ShortenRequest,
	prefix string,
	policy alias.Policy,
	owner *uuid.UUID,
) (*ShortenResponse, error) {
	link := strings.TrimSpace(req.Body.Link)
	if link == "" {
		return nil, huma.Error400BadRequest("Link is required")
	}

	a, err := h.svc.Shorten(ctx, link, owner, policy)
	if err != nil {
		if errors.Is(err, alias.ErrInvalidURL) {
			return nil, huma.Error400BadRequest("Invalid URL format")
		}

		h.logger.Error("shorten failed",
			zap.String("product", policy.Name),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("Internal Server Error")
	}

	resp := &ShortenResponse{}
	resp.Body.Code = http.StatusOK
	resp.Body.ShortenedLink = h.aliasURL(prefix, a.Code)
	resp.Body.Lifespan = policy.Minutes()

	return resp, nil
}

// Redirect follows an active alias. Expired and unknown codes both answer
// 404; only the message distinguishes them.
func (h *AliasHandler) Redirect(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	res, err := h.svc.Resolve(ctx, alias.Code(req.Code))
	if err != nil {
		h.logger.Error("resolve failed",
			zap.String("code", req.Code),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("Internal Server Error")
	}

	switch res.State {
	case alias.StateActive:
		resp := &RedirectResponse{Status: http.StatusFound}
		resp.Headers.Location = res.TargetURL

		return resp, nil
	case alias.StateExpired:
		return nil, huma.Error404NotFound("URL has expired")
	default:
		return nil, huma.Error404NotFound("URL not found")
	}
}

// Expires reports the stored expiry instant for a code, whether or not the
// alias is still active.
func (h *AliasHandler) Expires(ctx context.Context, req *RedirectRequest) (*ExpiresResponse, error) {
	expiresAt, err := h.svc.Expiry(ctx, alias.Code(req.Code))
	if err != nil {
		if errors.Is(err, alias.ErrNotFound) {
			return nil, huma.Error404NotFound("URL not found")
		}

		h.logger.Error("expiry lookup failed",
			zap.String("code", req.Code),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("Internal Server Error")
	}

	resp := &ExpiresResponse{}
	resp.Body.Code = http.StatusOK
	resp.Body.ShortURL = req.Code
	resp.Body.ExpiresAt = expiresAt

	return resp, nil
}

// Links lists the caller's aliases as an original URL to alias URL map.
func (h *AliasHandler) Links(ctx context.Context, _ *struct{}) (*LinksResponse, error) {
	principal, ok := middleware.PrincipalFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Authentication required")
	}

	aliases, err := h.svc.ListByOwner(ctx, principal)
	if err != nil {
		h.logger.Error("listing links failed",
			zap.String("principal", principal.String()),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("Internal Server Error")
	}

	links := make(map[string]string, len(aliases))
	for _, a := range aliases {
		links[a.TargetURL] = h.aliasURL(MemberPrefix, a.Code)
	}

	resp := &LinksResponse{}
	resp.Body.Code = http.StatusOK
	resp.Body.ListOfConvertedLinks = links

	return resp, nil
}

func (h *AliasHandler) aliasURL(prefix string, code alias.Code) string {
	return h.baseURL + prefix + "/" + string(code)
}
