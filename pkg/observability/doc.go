/*
Package observability records what happens in a terminal session as
prometheus metrics.

The registry is private to the session. There is no HTTP endpoint; when a
metrics file is configured the registry is written once on exit in the
node_exporter textfile format.
*/
package observability
