package jpeg

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/alpmestan/juicypixels/pixel"
)

// Encode writes img as a baseline sequential 4:2:0 JPEG at the given
// quality (0..100). img must already be in YCbCr8.
func Encode(w io.Writer, img pixel.Image[uint8, pixel.YCbCr8], quality int) error {
	lumaQuant := quantTable(forwardZigzag(scaleQuantTable(baseLumaQuant, quality)))
	chromaQuant := quantTable(forwardZigzag(scaleQuantTable(baseChromaQuant, quality)))

	var buf bytes.Buffer
	writeMarker(&buf, markerSOI)
	writeDQT(&buf, 0, lumaQuant)
	writeDQT(&buf, 1, chromaQuant)
	writeSOF0(&buf, img.Width, img.Height)
	writeDefaultDHT(&buf)
	writeSOS(&buf)

	bw := newEntropyWriter(&buf)
	dcLuma := defaultHuffTable(defaultDCLumaCounts, defaultDCLumaSyms)
	acLuma := defaultHuffTable(defaultACLumaCounts, defaultACLumaSyms)
	dcChroma := defaultHuffTable(defaultDCChromaCounts, defaultDCChromaSyms)
	acChroma := defaultHuffTable(defaultACChromaCounts, defaultACChromaSyms)

	if err := encodeScan(bw, img, lumaQuant, chromaQuant, dcLuma, acLuma, dcChroma, acChroma); err != nil {
		return err
	}
	bw.flush()

	writeMarker(&buf, markerEOI)
	_, err := w.Write(buf.Bytes())
	return err
}

func writeMarker(buf *bytes.Buffer, m marker) {
	buf.WriteByte(0xFF)
	buf.WriteByte(byte(m))
}

func writeSegment(buf *bytes.Buffer, m marker, payload []byte) {
	writeMarker(buf, m)
	var lenBuf [2]byte
	binary.BigEndian.PutUint16(lenBuf[:], uint16(len(payload)+2))
	buf.Write(lenBuf[:])
	buf.Write(payload)
}

func writeDQT(buf *bytes.Buffer, dest int, t quantTable) {
	payload := make([]byte, 1+64)
	payload[0] = byte(dest)
	for i, v := range t {
		payload[1+i] = byte(v)
	}
	writeSegment(buf, markerDQT, payload)
}

func writeSOF0(buf *bytes.Buffer, width, height int) {
	payload := make([]byte, 6+3*3)
	payload[0] = 8 // precision
	binary.BigEndian.PutUint16(payload[1:3], uint16(height))
	binary.BigEndian.PutUint16(payload[3:5], uint16(width))
	payload[5] = 3

	comps := []component{
		{id: 1, hSamp: 2, vSamp: 2, quantIdx: 0},
		{id: 2, hSamp: 1, vSamp: 1, quantIdx: 1},
		{id: 3, hSamp: 1, vSamp: 1, quantIdx: 1},
	}
	for i, c := range comps {
		off := 6 + 3*i
		payload[off] = c.id
		payload[off+1] = byte(c.hSamp<<4 | c.vSamp)
		payload[off+2] = byte(c.quantIdx)
	}
	writeSegment(buf, markerSOF0, payload)
}

func writeHuffTableSegment(buf *bytes.Buffer, class, dest int, counts [16]int, symbols []byte) {
	payload := make([]byte, 1+16+len(symbols))
	payload[0] = byte(class<<4 | dest)
	for i, c := range counts {
		payload[1+i] = byte(c)
	}
	copy(payload[17:], symbols)
	writeSegment(buf, markerDHT, payload)
}

func writeDefaultDHT(buf *bytes.Buffer) {
	writeHuffTableSegment(buf, 0, 0, defaultDCLumaCounts, defaultDCLumaSyms)
	writeHuffTableSegment(buf, 1, 0, defaultACLumaCounts, defaultACLumaSyms)
	writeHuffTableSegment(buf, 0, 1, defaultDCChromaCounts, defaultDCChromaSyms)
	writeHuffTableSegment(buf, 1, 1, defaultACChromaCounts, defaultACChromaSyms)
}

func writeSOS(buf *bytes.Buffer) {
	payload := []byte{
		3,
		1, 0x00, // component 1 (Y): DC table 0, AC table 0
		2, 0x11, // component 2 (Cb): DC table 1, AC table 1
		3, 0x11, // component 3 (Cr): DC table 1, AC table 1
		0, 63, 0,
	}
	writeSegment(buf, markerSOS, payload)
}

// entropyWriter buffers output bits MSB-first and byte-stuffs 0xFF as
// it flushes whole bytes, an accumulator-and-bit-count shape adapted to
// JPEG's stuffing rule instead of a plain byte stream.
type entropyWriter struct {
	out  *bytes.Buffer
	acc  uint32
	bits int
}

func newEntropyWriter(out *bytes.Buffer) *entropyWriter {
	return &entropyWriter{out: out}
}

func (w *entropyWriter) writeBits(value int, n int) {
	if n == 0 {
		return
	}
	w.acc = w.acc<<uint(n) | uint32(value)&((1<<uint(n))-1)
	w.bits += n
	for w.bits >= 8 {
		b := byte(w.acc >> uint(w.bits-8))
		w.out.WriteByte(b)
		if b == 0xFF {
			w.out.WriteByte(0x00)
		}
		w.bits -= 8
	}
}

// flush pads the remaining bits with 1s to a byte boundary.
func (w *entropyWriter) flush() {
	if w.bits > 0 {
		pad := 8 - w.bits
		w.writeBits((1<<uint(pad))-1, pad)
	}
}

// encodeScan walks every MCU in raster order (4:2:0: one 2x2 luma MCU
// pairs with one Cb and one Cr data unit), encoding each data unit.
func encodeScan(w *entropyWriter, img pixel.Image[uint8, pixel.YCbCr8], lumaQuant, chromaQuant quantTable, dcLuma, acLuma, dcChroma, acChroma *huffTable) error {
	mcusX := (img.Width + 15) / 16
	mcusY := (img.Height + 15) / 16

	dcPred := [3]int{0, 0, 0}

	for mcuY := 0; mcuY < mcusY; mcuY++ {
		for mcuX := 0; mcuX < mcusX; mcuX++ {
			for duY := 0; duY < 2; duY++ {
				for duX := 0; duX < 2; duX++ {
					block := extractLumaBlock(img, mcuX*16+duX*8, mcuY*16+duY*8)
					encodeDataUnit(w, block, lumaQuant, dcLuma, acLuma, &dcPred[0])
				}
			}
			cb, cr := extractChromaBlocks(img, mcuX*16, mcuY*16)
			encodeDataUnit(w, cb, chromaQuant, dcChroma, acChroma, &dcPred[1])
			encodeDataUnit(w, cr, chromaQuant, dcChroma, acChroma, &dcPred[2])
		}
	}
	return nil
}

// clampedSample returns pixel (x, y)'s given YCbCr8 component, replicating
// edge pixels for coordinates outside the image.
func clampedSample(img pixel.Image[uint8, pixel.YCbCr8], x, y, component int) byte {
	if x < 0 {
		x = 0
	}
	if x >= img.Width {
		x = img.Width - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= img.Height {
		y = img.Height - 1
	}
	p := pixel.PixelAt(img, x, y)
	switch component {
	case 0:
		return p.Y
	case 1:
		return p.Cb
	default:
		return p.Cr
	}
}

func extractLumaBlock(img pixel.Image[uint8, pixel.YCbCr8], originX, originY int) [64]byte {
	var block [64]byte
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			block[y*8+x] = clampedSample(img, originX+x, originY+y, 0)
		}
	}
	return block
}

// extractChromaBlocks produces the Cb and Cr 8x8 blocks for one MCU at
// 4:2:0: each output sample averages the underlying 2x2 source block.
func extractChromaBlocks(img pixel.Image[uint8, pixel.YCbCr8], originX, originY int) (cb, cr [64]byte) {
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			sx, sy := originX+2*x, originY+2*y
			var sumCb, sumCr int
			for dy := 0; dy < 2; dy++ {
				for dx := 0; dx < 2; dx++ {
					sumCb += int(clampedSample(img, sx+dx, sy+dy, 1))
					sumCr += int(clampedSample(img, sx+dx, sy+dy, 2))
				}
			}
			cb[y*8+x] = byte(sumCb / 4)
			cr[y*8+x] = byte(sumCr / 4)
		}
	}
	return cb, cr
}

// encodeDataUnit runs the forward path for one 8x8 block: FDCT, zig-zag,
// quantize, differential DC, run-length AC.
func encodeDataUnit(w *entropyWriter, block [64]byte, quant quantTable, dcTable, acTable *huffTable, dcPred *int) {
	coeffs := forwardDCT8x8(block)
	scan := forwardZigzag(coeffs)
	for i := range scan {
		scan[i] = roundHalfUpDiv(scan[i], quant[i])
	}

	diff := scan[0] - *dcPred
	*dcPred = scan[0]
	writeMagnitudeCoded(w, dcTable, diff)

	run := 0
	for k := 1; k < 64; k++ {
		v := scan[k]
		if v == 0 {
			run++
			continue
		}
		for run >= 16 {
			emitHuffSymbol(w, acTable, 0xF0)
			run -= 16
		}
		ssss := magnitudeBits(v)
		emitHuffSymbol(w, acTable, byte(run<<4|ssss))
		writeSignedValue(w, v, ssss)
		run = 0
	}
	if run > 0 {
		emitHuffSymbol(w, acTable, 0x00)
	}
}

// roundHalfUpDiv implements round-half-up integer division for
// quantization, preserving the dividend's sign.
func roundHalfUpDiv(v, q int) int {
	if v >= 0 {
		return (v + q/2) / q
	}
	return -((-v + q/2) / q)
}

func magnitudeBits(v int) int {
	if v < 0 {
		v = -v
	}
	n := 0
	for v > 0 {
		n++
		v >>= 1
	}
	return n
}

func writeMagnitudeCoded(w *entropyWriter, table *huffTable, v int) {
	ssss := magnitudeBits(v)
	emitHuffSymbol(w, table, byte(ssss))
	writeSignedValue(w, v, ssss)
}

func writeSignedValue(w *entropyWriter, v, ssss int) {
	if ssss == 0 {
		return
	}
	if v < 0 {
		v += 1<<uint(ssss) - 1
	}
	w.writeBits(v, ssss)
}

func emitHuffSymbol(w *entropyWriter, table *huffTable, sym byte) {
	w.writeBits(int(table.code[sym]), table.length[sym])
}
