// Package inspect holds tools for looking at rasters rather than compressing
// them: pixel-by-pixel comparison of two images and a false-color rendering of
// offset tables.
package inspect
