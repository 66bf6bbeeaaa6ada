// Package compression splits a sparse color raster into three smaller rasters
// and puts it back together.
//
// A sparse raster is one where most pixels are the background color (white).
// Only the foreground pixels carry information, so we store:
//
//   - an occupancy mask, one bit per source pixel, marking the foreground;
//   - a color table, a square raster just big enough to hold one cell per
//     foreground pixel;
//   - an offset table, a small square raster of (dx, dy) displacements that is
//     tiled across the source image.
//
// A foreground pixel (x, y) finds its color by reading the offset at
// (x mod S_offset, y mod S_offset) and then the color table at
// ((x+dx) mod S_hash, (y+dy) mod S_hash). Decoding is therefore constant time
// per pixel with no searching.
//
// The hard part is picking offsets so that no two foreground pixels land in the
// same color table cell, i.e. building a perfect hash. Compress does this with
// a heuristic search: it tries uniform offsets (i, j) for every candidate pair,
// except that the offset cell routing the most pixels is pinned to (0, 0). If
// every candidate collides, the offset table grows by one and the search starts
// again. The color table never grows. Once the offset table is larger than the
// color table, or either table would hold more cells than the source image, the
// representation can't beat storing the image directly and the search gives up.
//
// The size of the color table is ceil(sqrt(p + floor(p/100))) for p foreground
// pixels, which leaves about 1% of slack for large images, and the first offset
// table is ceil(sqrt(p)/2) on a side. When p is a perfect square below 10000 the
// color table has exactly p cells and no slack at all (p = 4 gives a 2x2 table),
// so every cell must be used and the search is more likely to end infeasible.
package compression
