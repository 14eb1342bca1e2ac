// Package middleware provides the HTTP observability middleware for vrouter
// servers.
//
// # Prometheus Metrics
//
// NewMetrics registers the router's metrics with a registry and returns a
// recorder. Its Handler method wraps an http.Handler:
//
//	m := middleware.NewMetrics(middleware.WithRegistry(reg))
//	r := chi.NewRouter()
//	r.Use(m.Handler)
//	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
//
// Metrics collected:
//   - vrouter_requests_total: requests by method and status code
//   - vrouter_request_duration_seconds: request latency by method
//   - vrouter_redirects_total: redirects captured during renders, by action
//   - vrouter_render_errors_total: failed renders by error category
//   - vrouter_live_sessions: open live sessions
//   - vrouter_live_frames_total: live frames by direction and type
//   - vrouter_export_pages_total: exported paths by result
//
// A nil *Metrics records nothing, so components take one optionally.
//
// # OpenTelemetry
//
// Tracing starts a server span per request using the global tracer
// provider unless WithTracerProvider is given. AnnotateRedirect and
// AnnotateRender add render results to the span in the request context:
//
//	r.Use(middleware.Tracing(middleware.WithTracerName("my-site")))
package middleware
