// Package faults classifies downstream tool failures into a structured,
// operation-aware taxonomy with recovery guidance and escalation signaling.
// Classification is a total, pure function: it never performs I/O and never
// panics, because it runs on every failure path.
package faults
