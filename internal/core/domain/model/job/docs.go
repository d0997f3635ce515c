// Package job contains the translation job aggregate and its lifecycle.
//
// A job is created Open by a customer, offered to a set of translators with a deadline
// computed by the expiry evaluator, accepted by exactly one translator, and ended once the
// work is done. Offered and Accepted jobs may be cancelled; Offered, Accepted and Cancelled
// jobs may be reopened.
//
//	Open|Reopened ──offer──> Offered ──accept──> Accepted ──end──> Completed
//	                            │                   │
//	                            ├──expire/cancel──> Cancelled <──cancel──┘
//	                            │                   │
//	Open <──────────reopen──────┴───────────────────┘ (also from Accepted)
//
// The aggregate only validates and mutates in-memory state. Persisting a transition is a
// compare-and-swap on the status the job was read with, which the application layer performs
// through ports.JobRepository.UpdateIfStatus.
package job
