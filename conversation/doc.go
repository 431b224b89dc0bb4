// Package conversation implements the multi-party conversation registry.
//
// Conversations are created Active with at least two directory-validated
// participants and move through a small lifecycle: Active may transition to
// Paused, Completed or Archived; Archived is terminal. Membership changes
// enforce the core invariant that an Active conversation never has fewer than
// two participants: a Leave that would drop membership below two archives the
// conversation instead.
package conversation
