// Package parallel runs compositing work on a fixed set of goroutines and
// tracks which tiles of an image changed.
//
// Work is split into horizontal bands of scanlines. Bands write disjoint rows,
// so they need no locking beyond the completion barrier of ExecuteAll.
//
// Thread safety: WorkerPool and DirtyRegion are safe for concurrent use.
package parallel
