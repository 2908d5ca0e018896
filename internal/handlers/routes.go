package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/link-shortener/internal/middleware"
)

// Route prefixes for the two products sharing the alias primitive. They
// stay separate because their lifespan and ownership policies differ, even
// though one store and one service back both.
const (
	PublicPrefix = "/public"
	MemberPrefix = "/member"
)

var authRequired = map[string]any{
	middleware.MetadataKey: middleware.Config{Required: true},
}

// RegisterRoutes registers the alias and auth operations. Protected
// operations carry the authn metadata consumed by the authentication
// middleware.
func RegisterRoutes(api huma.API, aliases *AliasHandler, auth *AuthHandler) {
	// Public product: anonymous aliases with the long lifespan.
	huma.Register(api, huma.Operation{
		OperationID: "public-shorten",
		Method:      http.MethodPost,
		Path:        PublicPrefix,
		Summary:     "Shorten a URL anonymously",
		Tags:        []string{"Public"},
	}, aliases.PublicShorten)

	huma.Register(api, huma.Operation{
		OperationID: "public-redirect",
		Method:      http.MethodGet,
		Path:        PublicPrefix + "/{code}",
		Summary:     "Redirect to the original URL",
		Tags:        []string{"Public"},
	}, aliases.Redirect)

	huma.Register(api, huma.Operation{
		OperationID: "public-expires",
		Method:      http.MethodGet,
		Path:        PublicPrefix + "/{code}/expires",
		Summary:     "Look up when an alias expires",
		Tags:        []string{"Public"},
	}, aliases.Expires)

	// Member product: owned aliases with the short lifespan. Following a
	// link and checking its expiry need no authentication.
	huma.Register(api, huma.Operation{
		OperationID: "member-shorten",
		Method:      http.MethodPost,
		Path:        MemberPrefix,
		Summary:     "Shorten a URL as an authenticated user",
		Tags:        []string{"Member"},
		Metadata:    authRequired,
	}, aliases.MemberShorten)

	huma.Register(api, huma.Operation{
		OperationID: "member-redirect",
		Method:      http.MethodGet,
		Path:        MemberPrefix + "/{code}",
		Summary:     "Redirect to the original URL",
		Tags:        []string{"Member"},
	}, aliases.Redirect)

	huma.Register(api, huma.Operation{
		OperationID: "member-expires",
		Method:      http.MethodGet,
		Path:        MemberPrefix + "/{code}/expires",
		Summary:     "Look up when an alias expires",
		Tags:        []string{"Member"},
	}, aliases.Expires)

	huma.Register(api, huma.Operation{
		OperationID: "member-links",
		Method:      http.MethodGet,
		Path:        MemberPrefix + "/links",
		Summary:     "List the caller's shortened links",
		Tags:        []string{"Member"},
		Metadata:    authRequired,
	}, aliases.Links)

	// Accounts.
	huma.Register(api, huma.Operation{
		OperationID:   "signup",
		Method:        http.MethodPost,
		Path:          "/signup",
		Summary:       "Create an account",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusCreated,
	}, auth.SignUp)

	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/login",
		Summary:     "Log in and receive a bearer token",
		Tags:        []string{"Auth"},
	}, auth.LogIn)
}
