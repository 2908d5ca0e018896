package handlers_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/serroba/link-shortener/internal/alias"
	"github.com/serroba/link-shortener/internal/handlers"
	"github.com/serroba/link-shortener/internal/middleware"
	"github.com/serroba/link-shortener/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testBaseURL = "http://localhost:8888"

var testStart = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// testClock lets handler tests move time.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func newAliasHandler(t *testing.T) (*handlers.AliasHandler, *testClock) {
	t.Helper()

	generate, err := alias.NewHexGenerator(8)
	require.NoError(t, err)

	clock := &testClock{now: testStart}
	svc := alias.NewService(store.NewMemoryStore(), generate, 5, clock.Now)

	handler := handlers.NewAliasHandler(
		svc,
		testBaseURL,
		alias.Policy{Name: "public", Lifespan: 120 * time.Minute},
		alias.Policy{Name: "member", Lifespan: 60 * time.Minute},
		zap.NewNop(),
	)

	return handler, clock
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()

	require.Error(t, err)

	se, ok := err.(huma.StatusError)
	require.True(t, ok, "expected a status error, got %T", err)
	assert.Equal(t, status, se.GetStatus())
}

// codeFromLink extracts the alias code from a shortened link.
func codeFromLink(t *testing.T, link string) string {
	t.Helper()

	idx := strings.LastIndex(link, "/")
	require.NotEqual(t, -1, idx)

	return link[idx+1:]
}

func shortenPublic(t *testing.T, handler *handlers.AliasHandler, target string) string {
	t.Helper()

	req := &handlers.ShortenRequest{}
	req.Body.Link = target

	resp, err := handler.PublicShorten(context.Background(), req)
	require.NoError(t, err)

	return codeFromLink(t, resp.Body.ShortenedLink)
}

func TestPublicShorten(t *testing.T) {
	t.Run("creates an alias with the public lifespan", func(t *testing.T) {
		handler, _ := newAliasHandler(t)

		req := &handlers.ShortenRequest{}
		req.Body.Link = "https://example.com/very/long/path"

		resp, err := handler.PublicShorten(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.Body.Code)
		assert.Equal(t, 120, resp.Body.Lifespan)
		assert.True(t, strings.HasPrefix(resp.Body.ShortenedLink, testBaseURL+"/public/"))
		assert.Len(t, codeFromLink(t, resp.Body.ShortenedLink), 8)
	})

	t.Run("missing link is a 400", func(t *testing.T) {
		handler, _ := newAliasHandler(t)

		req := &handlers.ShortenRequest{}

		_, err := handler.PublicShorten(context.Background(), req)

		requireStatus(t, err, http.StatusBadRequest)
	})

	t.Run("invalid link is a 400", func(t *testing.T) {
		handler, _ := newAliasHandler(t)

		req := &handlers.ShortenRequest{}
		req.Body.Link = "not a url"

		_, err := handler.PublicShorten(context.Background(), req)

		requireStatus(t, err, http.StatusBadRequest)
	})
}

func TestMemberShorten(t *testing.T) {
	t.Run("creates an owned alias with the member lifespan", func(t *testing.T) {
		handler, _ := newAliasHandler(t)
		principal := uuid.New()
		ctx := middleware.ContextWithPrincipal(context.Background(), principal)

		req := &handlers.ShortenRequest{}
		req.Body.Link = "https://example.com"

		resp, err := handler.MemberShorten(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, 60, resp.Body.Lifespan)
		assert.True(t, strings.HasPrefix(resp.Body.ShortenedLink, testBaseURL+"/member/"))

		links, err := handler.Links(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, resp.Body.ShortenedLink, links.Body.ListOfConvertedLinks["https://example.com"])
	})

	t.Run("without a principal is a 401", func(t *testing.T) {
		handler, _ := newAliasHandler(t)

		req := &handlers.ShortenRequest{}
		req.Body.Link = "https://example.com"

		_, err := handler.MemberShorten(context.Background(), req)

		requireStatus(t, err, http.StatusUnauthorized)
	})
}

func TestRedirect(t *testing.T) {
	t.Run("active alias redirects with 302", func(t *testing.T) {
		handler, _ := newAliasHandler(t)
		code := shortenPublic(t, handler, "https://example.com/target")

		resp, err := handler.Redirect(context.Background(), &handlers.RedirectRequest{Code: code})

		require.NoError(t, err)
		assert.Equal(t, http.StatusFound, resp.Status)
		assert.Equal(t, "https://example.com/target", resp.Headers.Location)
	})

	t.Run("alias honors the public lifespan window", func(t *testing.T) {
		handler, clock := newAliasHandler(t)
		code := shortenPublic(t, handler, "https://example.com")

		clock.now = testStart.Add(119 * time.Minute)
		_, err := handler.Redirect(context.Background(), &handlers.RedirectRequest{Code: code})
		require.NoError(t, err)

		clock.now = testStart.Add(121 * time.Minute)
		_, err = handler.Redirect(context.Background(), &handlers.RedirectRequest{Code: code})

		requireStatus(t, err, http.StatusNotFound)
		assert.Contains(t, err.Error(), "expired")
	})

	t.Run("unknown code is a 404", func(t *testing.T) {
		handler, _ := newAliasHandler(t)

		_, err := handler.Redirect(context.Background(), &handlers.RedirectRequest{Code: "deadbeef"})

		requireStatus(t, err, http.StatusNotFound)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestExpires(t *testing.T) {
	t.Run("reports the expiry instant", func(t *testing.T) {
		handler, _ := newAliasHandler(t)
		code := shortenPublic(t, handler, "https://example.com")

		resp, err := handler.Expires(context.Background(), &handlers.RedirectRequest{Code: code})

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.Body.Code)
		assert.Equal(t, code, resp.Body.ShortURL)
		assert.Equal(t, testStart.Add(120*time.Minute), resp.Body.ExpiresAt)
	})

	t.Run("keeps answering after expiry", func(t *testing.T) {
		handler, clock := newAliasHandler(t)
		code := shortenPublic(t, handler, "https://example.com")

		clock.now = testStart.Add(48 * time.Hour)

		resp, err := handler.Expires(context.Background(), &handlers.RedirectRequest{Code: code})

		require.NoError(t, err)
		assert.Equal(t, testStart.Add(120*time.Minute), resp.Body.ExpiresAt)
	})

	t.Run("unknown code is a 404", func(t *testing.T) {
		handler, _ := newAliasHandler(t)

		_, err := handler.Expires(context.Background(), &handlers.RedirectRequest{Code: "deadbeef"})

		requireStatus(t, err, http.StatusNotFound)
	})
}

func TestLinks(t *testing.T) {
	t.Run("lists only the caller's aliases", func(t *testing.T) {
		handler, _ := newAliasHandler(t)
		mine := middleware.ContextWithPrincipal(context.Background(), uuid.New())
		other := middleware.ContextWithPrincipal(context.Background(), uuid.New())

		for _, target := range []string{"https://example.com/1", "https://example.com/2"} {
			req := &handlers.ShortenRequest{}
			req.Body.Link = target
			_, err := handler.MemberShorten(mine, req)
			require.NoError(t, err)
		}

		req := &handlers.ShortenRequest{}
		req.Body.Link = "https://example.com/3"
		_, err := handler.MemberShorten(other, req)
		require.NoError(t, err)

		shortenPublic(t, handler, "https://example.com/4")

		resp, err := handler.Links(mine, nil)

		require.NoError(t, err)
		assert.Len(t, resp.Body.ListOfConvertedLinks, 2)
		assert.Contains(t, resp.Body.ListOfConvertedLinks, "https://example.com/1")
		assert.Contains(t, resp.Body.ListOfConvertedLinks, "https://example.com/2")
	})

	t.Run("empty account lists an empty map", func(t *testing.T) {
		handler, _ := newAliasHandler(t)
		ctx := middleware.ContextWithPrincipal(context.Background(), uuid.New())

		resp, err := handler.Links(ctx, nil)

		require.NoError(t, err)
		assert.Empty(t, resp.Body.ListOfConvertedLinks)
	})

	t.Run("without a principal is a 401", func(t *testing.T) {
		handler, _ := newAliasHandler(t)

		_, err := handler.Links(context.Background(), nil)

		requireStatus(t, err, http.StatusUnauthorized)
	})
}
