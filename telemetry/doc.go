// Package telemetry defines the canonical race-weekend model and the
// normalizers that build it from raw OpenF1 records.
package telemetry
