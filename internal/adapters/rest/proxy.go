package rest

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/port"
)

// CreateProxy создает обратный прокси на внешний сервис.
// Из пути запроса отрезается stripPrefix и добавляется pathPrefix целевого сервиса:
// /api/auth/login -> {target}{pathPrefix}/auth/login при stripPrefix "/api".
func CreateProxy(targetURL, stripPrefix, pathPrefix string) (http.Handler, error) {
	target, err := url.Parse(targetURL)
	if err != nil {
		return nil, fmt.Errorf("invalid target URL %q: %w", targetURL, err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("target URL %q must be absolute", targetURL)
	}
	basePath := strings.TrimRight(target.Path, "/") + pathPrefix

	proxy := httputil.NewSingleHostReverseProxy(target)

	proxy.Director = func(req *http.Request) {
		req.URL.Scheme = target.Scheme
		req.URL.Host = target.Host
		req.Host = target.Host

		// req.URL.Path не содержит query-параметров, они в req.URL.RawQuery
		req.URL.Path = basePath + strings.TrimPrefix(req.URL.Path, stripPrefix)
		req.URL.RawPath = ""

		if traceID := contextkeys.TraceIDFromContext(req.Context()); traceID != "" {
			req.Header.Set(contextkeys.TraceIDHeader, traceID)
		}
	}

	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		contextkeys.LoggerFromContext(r.Context()).Error("Upstream request failed", err, port.Fields{
			"upstream": target.Host,
		})
		WriteJSONError(w, http.StatusBadGateway, "Upstream service unavailable")
	}

	return proxy, nil
}
