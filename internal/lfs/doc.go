// Package lfs integrates Git LFS into grit workflows.
//
// It wraps git-lfs invocations for fetching full payload history and verifying
// checkouts, and provides PayloadReconciler for moving payload objects between
// bare and working repository object stores.
package lfs
