// Package estimate computes the regression quantities shown next to a
// generated sample: the OLS slope of outcome on observed value, the
// attenuation factor λ, the signal-to-noise curve and a descriptive
// summary of the measurement error.
package estimate
