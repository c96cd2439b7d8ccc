// Package utils holds the numeric type shared by the engine.
package utils

// Fl is the float type used for dimensions, in pixels
// once computed.
type Fl = float32
