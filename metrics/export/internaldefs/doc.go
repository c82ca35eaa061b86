// Package internaldefs holds the shared metric name/help definitions used
// by the exporter packages. It exists so the OTel and Prometheus exporters
// render identical series names from one source of truth; applications
// should not import it directly.
package internaldefs
