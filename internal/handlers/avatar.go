package handlers

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mwhitaker/blenny/internal/avatar"
	"github.com/mwhitaker/blenny/internal/domain"
	"github.com/mwhitaker/blenny/internal/middleware"
	"github.com/mwhitaker/blenny/internal/storage"
)

const svgContentType = "image/svg+xml"

// AvatarHandler serves identity badges (GET /app/avatar.svg?name=&size=).
// Badges are pure functions of name and size, so rendered SVGs are cached
// through the storage layer and served from there on repeat requests.
type AvatarHandler struct {
	cache storage.Store
}

// NewAvatarHandler creates a new AvatarHandler backed by the given cache.
func NewAvatarHandler(cache storage.Store) *AvatarHandler {
	return &AvatarHandler{cache: cache}
}

// AvatarSVG renders the badge for the named user. Without a name parameter
// it falls back to the authenticated user's display name. The size is
// clamped to the badge bounds; a non-numeric size is rejected.
func (h *AvatarHandler) AvatarSVG(c echo.Context) error {
	name := c.QueryParam("name")
	if name == "" {
		if user, ok := c.Get(middleware.UserContextKey).(*domain.User); ok {
			name = user.DisplayName()
		}
	}

	size := avatar.DefaultSize
	if raw := c.QueryParam("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "size must be an integer")
		}
		size = parsed
	}
	size = avatar.ClampSize(size)

	key := badgeCacheKey(name, size)
	if cached, err := h.cache.Open(c.Request().Context(), key); err == nil {
		defer cached.Close()
		return c.Stream(http.StatusOK, svgContentType, cached)
	}

	var buf bytes.Buffer
	if err := avatar.Badge(avatar.Derive(name), name, size).Render(&buf); err != nil {
		return fmt.Errorf("rendering avatar badge: %w", err)
	}

	if _, err := h.cache.Save(c.Request().Context(), key, bytes.NewReader(buf.Bytes())); err != nil {
		// A cache miss next time is the only consequence.
		slog.Warn("Failed to cache avatar badge", "key", key, "error", err)
	}

	return c.Blob(http.StatusOK, svgContentType, buf.Bytes())
}

// badgeCacheKey names the cached SVG after a digest of the name plus the
// size. The digest has to cover the whole name: the badge shows initials,
// not just the 24-bit color.
func badgeCacheKey(name string, size int) string {
	digest := fnv.New64a()
	_, _ = digest.Write([]byte(name))
	return fmt.Sprintf("%x-%d.svg", digest.Sum64(), size)
}
