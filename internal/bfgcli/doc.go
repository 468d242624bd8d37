// Package bfgcli wraps the BFG Repo-Cleaner for grit workflows.
//
// It exposes a Client for the two history rewrites sanitization relies on,
// deleting directories by name and converting blobs to Git LFS pointers, and
// integrates with execshell so rewrites can be mocked during testing.
package bfgcli
