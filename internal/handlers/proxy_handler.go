package handlers

import (
	"log"
	"time"

	"quorumhub/internal/api"

	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2"
)

// Fallback version strings. The proxy never surfaces an upstream
// failure: a reachable-but-unhappy upstream gets the last known version
// format, a transport failure gets the placeholder the UI renders while
// polling.
const (
	fallbackVersion    = "v0.640.0.6400650"
	placeholderVersion = "Checking..."
)

// ProxyHandler passes through the external client-version API.
type ProxyHandler struct {
	client      *resty.Client
	upstreamURL string
}

// NewProxyHandler creates a ProxyHandler querying upstreamURL with the
// given per-request timeout.
func NewProxyHandler(upstreamURL string, timeout time.Duration) *ProxyHandler {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	return &ProxyHandler{
		client:      client,
		upstreamURL: upstreamURL,
	}
}

// RegisterRoutes registers the version proxy route from the contract.
func (h *ProxyHandler) RegisterRoutes(router fiber.Router) {
	router.Add(api.Contract.Proxy.RobloxVersion.Method, api.Contract.Proxy.RobloxVersion.Path, h.HandleRobloxVersion)
}

// versionResponse is the slice of the upstream payload we care about.
type versionResponse struct {
	ClientVersionUpload string `json:"clientVersionUpload"`
}

// HandleRobloxVersion returns the current client version, masking every
// upstream failure with a fallback value. This route must answer 200
// whatever happens.
func (h *ProxyHandler) HandleRobloxVersion(c *fiber.Ctx) error {
	var upstream versionResponse
	resp, err := h.client.R().
		SetResult(&upstream).
		Get(h.upstreamURL)
	if err != nil {
		log.Printf("Version proxy error: %v", err)
		return c.Status(api.Contract.Proxy.RobloxVersion.Success).JSON(fiber.Map{
			"version": placeholderVersion,
		})
	}
	if !resp.IsSuccess() {
		return c.Status(api.Contract.Proxy.RobloxVersion.Success).JSON(fiber.Map{
			"version": fallbackVersion,
		})
	}

	version := upstream.ClientVersionUpload
	if version == "" {
		version = "Latest"
	}
	return c.Status(api.Contract.Proxy.RobloxVersion.Success).JSON(fiber.Map{
		"version": version,
	})
}
