// Package storage reads and writes the three rasters of a compressed image,
// plus the source and reconstructed images.
//
//   - Color rasters use binary PPM (P6). Plain PPM (P3) is also accepted on
//     input, and PNG, GIF, JPEG, BMP, TIFF, and WebP files are bridged through
//     the image package, chosen by file extension.
//   - Occupancy masks use binary PBM (P4), with black (1) marking an occupied
//     pixel. Plain PBM (P1) is accepted on input.
//   - Offset tables use a custom layout: the magic bytes "HPOF", a version
//     byte, the width and height as big-endian uint32 values, then one byte per
//     offset (dx in the high nibble, dy in the low one) in row-major order,
//     compressed with RLE8.
package storage
