package analytics

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CollectPath is the endpoint the page beacon posts to.
const CollectPath = "/api/analytics/collect"

// Handler handles analytics HTTP requests.
type Handler struct {
	store  *Store
	logger *zap.Logger
	now    func() time.Time
}

// NewHandler creates a new analytics handler.
func NewHandler(store *Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: store, logger: logger, now: time.Now}
}

// RegisterRoutes mounts the collect endpoint.
func (h *Handler) RegisterRoutes(e *echo.Echo, mw ...echo.MiddlewareFunc) {
	e.POST(CollectPath, h.Collect, mw...)
}

// CollectRequest is the expected request body for the collect endpoint.
type CollectRequest struct {
	Path       string `json:"path"`
	Referrer   string `json:"referrer"`
	ScreenSize string `json:"screen_size"`
	UserAgent  string `json:"user_agent"`
}

// Input validation limits for the collect endpoint.
const (
	maxPathLen       = 2048
	maxReferrerLen   = 2048
	maxScreenSizeLen = 32
	maxUserAgentLen  = 512
)

func validateCollectRequest(req *CollectRequest) error {
	if req.Path == "" || !strings.HasPrefix(req.Path, "/") {
		return fmt.Errorf("path must be absolute")
	}
	if len(req.Path) > maxPathLen {
		return fmt.Errorf("path exceeds maximum length of %d", maxPathLen)
	}
	if len(req.Referrer) > maxReferrerLen {
		return fmt.Errorf("referrer exceeds maximum length of %d", maxReferrerLen)
	}
	if len(req.ScreenSize) > maxScreenSizeLen {
		return fmt.Errorf("screen_size exceeds maximum length of %d", maxScreenSizeLen)
	}
	if len(req.UserAgent) > maxUserAgentLen {
		return fmt.Errorf("user_agent exceeds maximum length of %d", maxUserAgentLen)
	}
	return nil
}

// Collect records a page view sent by the page beacon.
func (h *Handler) Collect(c echo.Context) error {
	if c.Request().Header.Get("DNT") == "1" {
		return c.NoContent(http.StatusNoContent)
	}

	var req CollectRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "Invalid request")
	}
	if err := validateCollectRequest(&req); err != nil {
		return c.String(http.StatusBadRequest, "Invalid request")
	}

	userAgent := req.UserAgent
	if userAgent == "" {
		userAgent = c.Request().UserAgent()
	}
	if IsBot(userAgent) {
		return c.NoContent(http.StatusNoContent)
	}

	ip := c.RealIP()
	salt := h.store.Salt()
	browser, os, device := ParseUserAgent(userAgent)
	visit := &Visit{
		VisitorID:  GenerateVisitorID(salt, ip, userAgent),
		IPHash:     HashIP(salt, ip),
		Browser:    browser,
		OS:         os,
		Device:     device,
		Path:       req.Path,
		Referrer:   CleanReferrer(req.Referrer),
		ScreenSize: req.ScreenSize,
		Timestamp:  h.now().UTC(),
	}
	if err := h.store.SaveVisit(c.Request().Context(), visit); err != nil {
		h.logger.Error("save visit", zap.Error(err), zap.String("path", req.Path))
	}
	return c.NoContent(http.StatusNoContent)
}
