// Package otel exports navguard pipeline metrics through OpenTelemetry
// observable instruments. The exporter registers one callback that reads a
// metrics snapshot on each collection; it adds no per-navigation overhead.
package otel
