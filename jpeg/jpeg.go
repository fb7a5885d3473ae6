// Package jpeg implements a baseline sequential JPEG (ITU T.81 / ISO
// 10918-1) decoder and 4:2:0 encoder: marker-stream parsing, canonical
// Huffman decode, restart-interval re-sync, and a direct float64 IDCT/FDCT.
// Progressive, arithmetic-coded, and hierarchical JPEG are out of scope.
package jpeg
