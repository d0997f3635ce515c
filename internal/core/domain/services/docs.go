// Package services provides domain services that do not belong to a single aggregate.
//
// The package includes:
//   - ExpiryEvaluator: computes how long a job offer stays open from the job's creation and
//     due timestamps
package services
