// Package sampler generates synthetic samples for measurement-error
// experiments.
//
// A sample is drawn in three stages:
//
//   - the unobserved true value X* from a [Design] (normal or uniform)
//   - the outcome Y from an [Outcome] form applied to X* plus a disturbance
//   - the observed proxy X and the auxiliary measurement Z from a [Model]
//
// Each observation carries a corruption indicator D ~ Bernoulli(p) that
// decides whether measurement error enters X at all.
//
// # Example
//
//	cfg := sampler.DefaultConfig()
//	cfg.Model = sampler.Heteroskedastic
//	s, err := sampler.Generate(cfg, 42)
//
// # Reproducibility
//
// Generate owns its random source. The same [Config] and seed always yield
// bit-identical sequences; [Sample.Fingerprint] summarises them in 64 bits.
package sampler
