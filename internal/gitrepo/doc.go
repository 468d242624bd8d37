// Package gitrepo contains helpers for interrogating and manipulating Git repositories.
//
// It exposes RepositoryManager for cloning, branch and remote management,
// history compaction, and object store measurement, along with remote URL
// parsing utilities consumed by the sanitize and consolidate services.
package gitrepo
