// Package junction creates, reads and deletes NTFS junctions (directory
// reparse points), the closest Windows analogue to a directory symlink that
// does not require elevated privileges.
//
// Other processes may create, delete or replace the same paths between any
// two system calls made here, so every operation is an "attempt, observe,
// reconcile" sequence rather than a check-then-act one. Fallible operations
// return a closed set of outcomes so that callers can tell benign races
// (AccessDenied, Disappeared, the already-exists variants) apart from
// genuine failures and retry or ignore them at their own level.
package junction
