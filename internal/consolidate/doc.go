// Package consolidate folds another repository's full history into the
// current repository as a relocated subdirectory. The imported branch is
// fetched through a transient remote, rewritten into a single-subdirectory
// tree, and merged into the target branch with an explicit merge commit so
// the imported ancestry remains reachable. A surviving submodule manifest in
// the imported tree halts automatic submodule initialization and is reported
// as a manual follow-up instead of an error.
package consolidate
