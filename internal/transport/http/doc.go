// Package http exposes the ranked reports over a JSON API.
//
// Routes:
//
//	GET /api/reports/gdp              top-k countries by GDP per capita per year
//	GET /api/reports/emissions        top-k countries by emissions per capita per year
//	GET /api/reports/emission-change  largest per-capita emission changes over the last decade
//	GET /healthz                      liveness probe
//	GET /metrics                      Prometheus scrape endpoint
//
// The per-year reports accept k, from and to query parameters; the change
// report accepts k. Errors are reported as RFC 7807 problem documents.
package http
