// Package ldbstore implements lookahead storage components that keep data
// on disk in a LevelDB database, rather than in memory.
//
// Building a lookahead for a deep tree is slow relative to loading one,
// so snapshots of built layouts can be cached across runs.
package ldbstore
