// Package prometheus renders navguard pipeline metrics in Prometheus text
// exposition format without depending on a Prometheus client library. The
// exporter reads a snapshot per scrape; it adds no per-navigation overhead.
package prometheus
