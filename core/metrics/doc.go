// Package metrics defines the interfaces used to observe schedule
// computations. Sinks like the Prometheus one in infra/metrics record
// computed schedules and failures and can be combined with a MultiSink.
package metrics
