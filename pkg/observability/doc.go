// Package observability turns runner lifecycle events into Prometheus metrics.
//
// The metrics live in a private registry so several games in one process do not
// collide. Bots run as engine subprocesses without a listener, so the usual way
// out is WriteTextfile, which produces a file for the node_exporter textfile
// collector.
package observability
