package config

import "fmt"

// Validator checks a Config's invariants (spec.md §7.4): Threshold must
// be a proper score fraction and Reference (the maximum number of
// conforming-site references printed per report) can't be negative.
type Validator struct{}

// Validate returns an error describing the first invariant violated, or
// nil if cfg is usable as-is.
func (v Validator) Validate(cfg Config) error {
	if cfg.Threshold <= 0 || cfg.Threshold >= 1 {
		return fmt.Errorf("threshold must satisfy 0 < threshold < 1, got %v", cfg.Threshold)
	}
	if cfg.Reference < 0 {
		return fmt.Errorf("reference must not be negative, got %d", cfg.Reference)
	}
	return nil
}
