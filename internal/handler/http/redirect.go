package http

import (
	"Relink-Backend/internal/campaign"
	"Relink-Backend/internal/repository"
	"Relink-Backend/internal/service"
	"Relink-Backend/internal/visitor"
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// healthcheckCode redirects like any other code but must leave no trace in
// analytics: no click increment, no engagement row.
const healthcheckCode = "healthcheck"

// RedirectHandler drives the whole resolution pipeline: validate, resolve,
// inject campaign parameters, redirect, then detach the analytics writes.
type RedirectHandler struct {
	resolver *service.Resolver
	injector *campaign.Injector
	recorder *visitor.Recorder
	clicks   repository.LinkStore
	homepage string
	log      *zap.Logger
}

// NewRedirectHandler creates a new redirect handler.
func NewRedirectHandler(
	resolver *service.Resolver,
	injector *campaign.Injector,
	recorder *visitor.Recorder,
	clicks repository.LinkStore,
	homepage string,
	log *zap.Logger,
) *RedirectHandler {
	return &RedirectHandler{
		resolver: resolver,
		injector: injector,
		recorder: recorder,
		clicks:   clicks,
		homepage: homepage,
		log:      log,
	}
}

// HandleRedirect serves GET /{code} and the bare root route.
func (h *RedirectHandler) HandleRedirect(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimPrefix(r.URL.Path, "/")
	if code == "" {
		h.handleRoot(w, r)
		return
	}

	// A code is a single path segment.
	if strings.Contains(code, "/") {
		http.Error(w, "URL not found", http.StatusNotFound)
		return
	}

	link, err := h.resolver.Resolve(r.Context(), code)
	if errors.Is(err, repository.ErrCodeNotFound) {
		h.log.Debug("code not found", zap.String("code", code))
		http.Error(w, "URL not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error("failed to process redirect", zap.String("code", code), zap.Error(err))
		http.Error(w, "Error", http.StatusInternalServerError)
		return
	}

	target := h.injector.Inject(code, link.LongURL)

	// Capture header metadata before the response is written; the request
	// object must not be touched from detached goroutines.
	visit := visitor.FromRequest(code, r)

	// Redirect first, record after, in every environment. The client never
	// waits on analytics.
	http.Redirect(w, r, target, http.StatusFound)

	if code == healthcheckCode {
		return
	}

	h.log.Info("redirect",
		zap.String("code", code),
		zap.String("target", target),
		zap.String("ip", visit.IP))

	h.countAndForget(link.ID, code)
	h.recorder.RecordAndForget(visit)
}

// countAndForget starts the click increment and returns immediately.
// Failures are logged and dropped, never retried.
func (h *RedirectHandler) countAndForget(linkID int64, code string) {
	go func() {
		defer func() {
			if p := recover(); p != nil {
				h.log.Error("panic while counting click",
					zap.String("code", code), zap.Any("panic", p))
			}
		}()

		if err := h.clicks.IncrementClicks(context.Background(), linkID); err != nil {
			h.log.Error("failed to increment click count",
				zap.String("code", code), zap.Error(err))
		}
	}()
}

// handleRoot serves GET /: redirect to the configured homepage, else a blank
// 200 response.
func (h *RedirectHandler) handleRoot(w http.ResponseWriter, r *http.Request) {
	if h.homepage != "" {
		http.Redirect(w, r, h.homepage, http.StatusFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}
