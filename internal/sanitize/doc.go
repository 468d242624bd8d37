// Package sanitize implements the history grooming workflow that mirrors a
// repository into a scratch bare clone, strips unwanted directory subtrees,
// migrates binary blobs to Git LFS pointers across the full commit history,
// and materializes a verified destination clone for inspection.
package sanitize
