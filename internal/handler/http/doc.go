// Package http is the HTTP/JSON transport of the cloud save backend.
//
// It wires the chi router, the auth and save endpoints the sync client
// talks to, and the middleware in front of them: trace ids, access logs,
// gzip, bearer auth, the double-submit CSRF check on refresh, request body
// limits, per-account write rate limits and Prometheus metrics.
package http
