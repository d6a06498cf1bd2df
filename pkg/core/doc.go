// Package core defines the shared language of samplechart.
//
// This package contains:
//   - Domain entities (Point, Column, Dataset, Bounds)
//   - Sample size labels and their defaults
//   - The error taxonomy shared by data sources, the widget and its front ends
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
