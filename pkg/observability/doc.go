/*
Package observability provides tools for monitoring counters.

It exposes Prometheus metrics fed by lifecycle hooks and a helper to combine several
hook sets (metrics, debug logging, event streaming) into one.
*/
package observability
