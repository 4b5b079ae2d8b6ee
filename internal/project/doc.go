// Package project defines the data that flows through the generation
// pipeline: project metadata, the in-memory file set, and the stage inputs
// that bundle them.
package project
