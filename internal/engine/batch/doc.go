// Package batch runs a callback over a slice in fixed-size chunks.
//
// Process handles one chunk at a time, in order, and stops at the first error;
// fixture generation uses it so that each document is fully written before
// the next one starts. ProcessConcurrent bounds parallelism with an errgroup
// and is used to read and verify existing fixture documents.
//
// Both report a Progress after every finished chunk.
package batch
