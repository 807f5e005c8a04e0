package http

import (
	"strings"
	"time"

	"github.com/MKhiriev/warehouse-keeper/internal/config"
	"github.com/MKhiriev/warehouse-keeper/internal/logger"
	"github.com/MKhiriev/warehouse-keeper/internal/service"
)

// defaultMaxUploadSize bounds multipart bodies when no image size limit is
// configured.
const defaultMaxUploadSize int64 = 10 << 20

type Handler struct {
	services *service.Services

	// secureCookies sets the Secure attribute on the session cookie.
	secureCookies bool

	allowedOrigins map[string]struct{}
	requestTimeout time.Duration
	maxUploadSize  int64

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	origins := make(map[string]struct{}, len(cfg.App.AllowedOrigins)+1)
	for _, origin := range append([]string{cfg.App.FrontendURL}, cfg.App.AllowedOrigins...) {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin != "" {
			origins[origin] = struct{}{}
		}
	}

	maxUploadSize := cfg.Storage.Images.MaxSize
	if maxUploadSize <= 0 {
		maxUploadSize = defaultMaxUploadSize
	}

	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		secureCookies:  !cfg.App.IsDevelopment(),
		allowedOrigins: origins,
		requestTimeout: cfg.Server.RequestTimeout,
		maxUploadSize:  maxUploadSize,
		logger:         logger,
	}
}
