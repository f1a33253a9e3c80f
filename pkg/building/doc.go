// Package building defines the dimensional model for bayframe: building
// dimensions, wall openings, skylights and the code-requirement constants
// every validator consumes. Values in this package are plain data; they are
// never mutated by the validators that read them.
package building
