package jpeg

import (
	"encoding/binary"
	"io"

	"github.com/alpmestan/juicypixels/pixel"
)

const (
	stageInit = iota
	stageAfterSOI
	stageAfterSOF
	stageAfterSOS
	stageDone
)

// Decode parses a baseline sequential JPEG stream, returning Image<Y8>
// for a single-component stream or Image<YCbCr8> for a three-component
// one. Any other component count fails with UnsupportedComponents;
// anything beyond SOF0 fails with UnsupportedFeature.
func Decode(r io.Reader) (pixel.DynamicImage, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	d := &decoderState{data: data}
	return d.run()
}

type decoderState struct {
	data []byte
	pos  int

	quant    [4]quantTable
	quantSet [4]bool
	dcTables [4]*huffTable
	acTables [4]*huffTable
	restartN int
	frame    frameHeader
}

func (d *decoderState) run() (pixel.DynamicImage, error) {
	if len(d.data) < 2 || d.data[0] != 0xFF || marker(d.data[1]) != markerSOI {
		return nil, pixel.ErrorfAt(pixel.InvalidSignature, 0, "bad JPEG signature")
	}
	d.pos = 2
	stage := stageAfterSOI

	for {
		m, err := d.nextMarker()
		if err != nil {
			return nil, err
		}

		switch {
		case m == markerEOI:
			return nil, pixel.Errorf(pixel.MalformedStream, "EOI before any scan data")
		case isAPPn(m):
			if err := d.skipSegment(); err != nil {
				return nil, err
			}
		case m == markerDQT:
			if stage != stageAfterSOI && stage != stageAfterSOF {
				return nil, pixel.Errorf(pixel.MalformedStream, "DQT outside tables state")
			}
			if err := d.readDQT(); err != nil {
				return nil, err
			}
		case m == markerDHT:
			if stage != stageAfterSOI && stage != stageAfterSOF {
				return nil, pixel.Errorf(pixel.MalformedStream, "DHT outside tables state")
			}
			if err := d.readDHT(); err != nil {
				return nil, err
			}
		case m == markerDRI:
			if err := d.readDRI(); err != nil {
				return nil, err
			}
		case m == markerSOF0:
			if stage != stageAfterSOI {
				return nil, pixel.Errorf(pixel.MalformedStream, "unexpected SOF0")
			}
			if err := d.readSOF0(); err != nil {
				return nil, err
			}
			stage = stageAfterSOF
		case isSOFn(m):
			return nil, pixel.Errorf(pixel.UnsupportedFeature, "SOF marker %v is not baseline sequential (SOF0)", m)
		case m == markerSOS:
			if stage != stageAfterSOF {
				return nil, pixel.Errorf(pixel.MalformedStream, "SOS before SOF0")
			}
			img, err := d.readScanAndDecode()
			if err != nil {
				return nil, err
			}
			return img, nil
		default:
			if err := d.skipSegment(); err != nil {
				return nil, err
			}
		}
	}
}

// nextMarker consumes 0xFF and the following marker byte.
func (d *decoderState) nextMarker() (marker, error) {
	for d.pos < len(d.data) && d.data[d.pos] != 0xFF {
		d.pos++
	}
	if d.pos+1 >= len(d.data) {
		return 0, pixel.ErrorfAt(pixel.Truncated, int64(d.pos), "stream ended while scanning for a marker")
	}
	m := marker(d.data[d.pos+1])
	d.pos += 2
	return m, nil
}

// segmentPayload reads the big-endian u16 length (inclusive of itself)
// that follows every variable-length marker, returning the payload-only
// slice and advancing pos past it.
func (d *decoderState) segmentPayload() ([]byte, error) {
	if d.pos+2 > len(d.data) {
		return nil, pixel.ErrorfAt(pixel.Truncated, int64(d.pos), "truncated segment length")
	}
	length := int(binary.BigEndian.Uint16(d.data[d.pos : d.pos+2]))
	if length < 2 || d.pos+length > len(d.data) {
		return nil, pixel.ErrorfAt(pixel.MalformedStream, int64(d.pos), "invalid segment length %d", length)
	}
	payload := d.data[d.pos+2 : d.pos+length]
	d.pos += length
	return payload, nil
}

func (d *decoderState) skipSegment() error {
	_, err := d.segmentPayload()
	return err
}

func (d *decoderState) readDQT() error {
	payload, err := d.segmentPayload()
	if err != nil {
		return err
	}
	for len(payload) > 0 {
		precision := payload[0] >> 4
		dest := payload[0] & 0x0F
		if dest > 3 {
			return pixel.Errorf(pixel.MalformedStream, "DQT destination %d out of range", dest)
		}
		payload = payload[1:]
		n := 64
		if precision != 0 {
			n = 128
		}
		if len(payload) < n {
			return pixel.Errorf(pixel.Truncated, "DQT table shorter than declared precision")
		}
		var t quantTable
		for i := 0; i < 64; i++ {
			if precision == 0 {
				t[i] = int(payload[i])
			} else {
				t[i] = int(binary.BigEndian.Uint16(payload[2*i : 2*i+2]))
			}
		}
		d.quant[dest] = t
		d.quantSet[dest] = true
		payload = payload[n:]
	}
	return nil
}

func (d *decoderState) readDHT() error {
	payload, err := d.segmentPayload()
	if err != nil {
		return err
	}
	for len(payload) > 0 {
		if len(payload) < 17 {
			return pixel.Errorf(pixel.Truncated, "DHT entry shorter than 17 header bytes")
		}
		class := payload[0] >> 4
		dest := payload[0] & 0x0F
		if dest > 3 {
			return pixel.Errorf(pixel.MalformedStream, "DHT destination %d out of range", dest)
		}
		var counts [16]int
		total := 0
		for i := 0; i < 16; i++ {
			counts[i] = int(payload[1+i])
			total += counts[i]
		}
		payload = payload[17:]
		if len(payload) < total {
			return pixel.Errorf(pixel.Truncated, "DHT symbol list shorter than declared counts")
		}
		symbols := append([]byte(nil), payload[:total]...)
		payload = payload[total:]

		table, err := buildHuffTable(counts, symbols)
		if err != nil {
			return err
		}
		if class == 0 {
			d.dcTables[dest] = table
		} else {
			d.acTables[dest] = table
		}
	}
	return nil
}

func (d *decoderState) readDRI() error {
	payload, err := d.segmentPayload()
	if err != nil {
		return err
	}
	if len(payload) != 2 {
		return pixel.Errorf(pixel.MalformedStream, "DRI payload must be 2 bytes")
	}
	d.restartN = int(binary.BigEndian.Uint16(payload))
	return nil
}

func (d *decoderState) readSOF0() error {
	payload, err := d.segmentPayload()
	if err != nil {
		return err
	}
	if len(payload) < 6 {
		return pixel.Errorf(pixel.Truncated, "SOF0 shorter than fixed header")
	}
	f := frameHeader{
		precision: int(payload[0]),
		height:    int(binary.BigEndian.Uint16(payload[1:3])),
		width:     int(binary.BigEndian.Uint16(payload[3:5])),
	}
	nComp := int(payload[5])
	if len(payload) != 6+3*nComp {
		return pixel.Errorf(pixel.MalformedStream, "SOF0 component count %d disagrees with segment length", nComp)
	}
	if nComp != 1 && nComp != 3 {
		return pixel.Errorf(pixel.UnsupportedComponents, "SOF0 declares %d components, want 1 or 3", nComp)
	}
	for i := 0; i < nComp; i++ {
		b := payload[6+3*i:]
		c := component{
			id:       b[0],
			hSamp:    int(b[1] >> 4),
			vSamp:    int(b[1] & 0x0F),
			quantIdx: int(b[2]),
		}
		if nComp == 1 {
			c.hSamp, c.vSamp = 1, 1
		}
		f.components = append(f.components, c)
	}
	d.frame = f
	return nil
}

// readScanAndDecode parses the SOS header, then decodes the entropy
// body (honoring restart intervals) and assembles the output image.
func (d *decoderState) readScanAndDecode() (pixel.DynamicImage, error) {
	payload, err := d.segmentPayload()
	if err != nil {
		return nil, err
	}
	if len(payload) < 1 {
		return nil, pixel.Errorf(pixel.Truncated, "SOS shorter than fixed header")
	}
	nComp := int(payload[0])
	if len(payload) != 1+2*nComp+3 {
		return nil, pixel.Errorf(pixel.MalformedStream, "SOS component count %d disagrees with segment length", nComp)
	}
	order := make([]int, nComp)
	for i := 0; i < nComp; i++ {
		selector := payload[1+2*i]
		dcAc := payload[2+2*i]
		idx := d.componentIndex(selector)
		if idx < 0 {
			return nil, pixel.Errorf(pixel.MalformedStream, "SOS selector %d matches no SOF0 component", selector)
		}
		d.frame.components[idx].dcTable = int(dcAc >> 4)
		d.frame.components[idx].acTable = int(dcAc & 0x0F)
		order[i] = idx
	}

	entropyStart := d.pos
	scanEnd := len(d.data)
	er := newEntropyReader(d.data[entropyStart:])

	img, err := d.decodeMCUs(er, order)
	if err != nil {
		return nil, err
	}
	d.pos = scanEnd
	return img, nil
}

func (d *decoderState) componentIndex(id byte) int {
	for i, c := range d.frame.components {
		if c.id == id {
			return i
		}
	}
	return -1
}

// decodeMCUs drives the entropy decoder over every MCU in raster order,
// honoring restart intervals, and assembles the resulting planes into
// a DynamicImage (Y8 for one component, YCbCr8 for three).
func (d *decoderState) decodeMCUs(er *entropyReader, order []int) (pixel.DynamicImage, error) {
	f := d.frame
	hMax, vMax := f.hMax(), f.vMax()
	mcuWidth := 8 * hMax
	mcuHeight := 8 * vMax
	mcusX := (f.width + mcuWidth - 1) / mcuWidth
	mcusY := (f.height + mcuHeight - 1) / mcuHeight

	planes := make([][]byte, len(f.components))
	for i := range planes {
		planes[i] = make([]byte, f.width*f.height)
	}

	for i := range f.components {
		f.components[i].dcPred = 0
	}

	mcuCount := 0
	for mcuY := 0; mcuY < mcusY; mcuY++ {
		for mcuX := 0; mcuX < mcusX; mcuX++ {
			for _, ci := range order {
				comp := &f.components[ci]
				dcTable := d.dcTables[comp.dcTable]
				acTable := d.acTables[comp.acTable]
				quant := d.quant[comp.quantIdx]
				if dcTable == nil || acTable == nil || !d.quantSet[comp.quantIdx] {
					return nil, pixel.Errorf(pixel.MalformedStream, "component references an undefined Huffman or quantization table")
				}
				for duY := 0; duY < comp.vSamp; duY++ {
					for duX := 0; duX < comp.hSamp; duX++ {
						block, err := decodeDataUnit(er, dcTable, acTable, quant, &comp.dcPred)
						if err != nil {
							return nil, err
						}
						upsampleInto(planes[ci], f.width, f.height, block, mcuX, mcuY, duX, duY, comp.hSamp, comp.vSamp, hMax, vMax)
					}
				}
			}

			mcuCount++
			if d.restartN > 0 && mcuCount%d.restartN == 0 && mcuCount != mcusX*mcusY {
				if err := er.alignToByteAndExpectRestart(); err != nil {
					return nil, err
				}
				for i := range f.components {
					f.components[i].dcPred = 0
				}
			}
		}
	}

	switch len(f.components) {
	case 1:
		img := pixel.NewMutableImage[uint8, pixel.Y8](f.width, f.height)
		for i, v := range planes[0] {
			img.Data[i] = v
		}
		return pixel.DynY8{Image: img.Freeze()}, nil
	case 3:
		img := pixel.NewMutableImage[uint8, pixel.YCbCr8](f.width, f.height)
		for i := 0; i < f.width*f.height; i++ {
			img.Data[3*i] = planes[0][i]
			img.Data[3*i+1] = planes[1][i]
			img.Data[3*i+2] = planes[2][i]
		}
		return pixel.DynYCbCr8{Image: img.Freeze()}, nil
	default:
		return nil, pixel.Errorf(pixel.UnsupportedComponents, "decoded %d components, want 1 or 3", len(f.components))
	}
}

// decodeDataUnit decodes one 8x8 block: DC+AC Huffman symbols,
// de-quantization, inverse zig-zag, and inverse DCT.
func decodeDataUnit(er *entropyReader, dcTable, acTable *huffTable, quant quantTable, dcPred *int) ([64]byte, error) {
	var scan [64]int

	ssss := dcTable.decodeSymbol(er)
	if ssss > 0 {
		bits := er.readBits(int(ssss))
		diff := receiveExtend(bits, int(ssss))
		*dcPred += diff
	}
	scan[0] = *dcPred

	k := 1
	for k < 64 {
		rs := acTable.decodeSymbol(er)
		r := int(rs >> 4)
		s := int(rs & 0x0F)
		if s == 0 {
			if r == 15 {
				k += 16
				if k >= 64 {
					return [64]byte{}, pixel.Errorf(pixel.InvalidAc, "AC run overruns position 63")
				}
				continue
			}
			break // end-of-block: remainder stays zero
		}
		k += r
		if k >= 64 {
			return [64]byte{}, pixel.Errorf(pixel.InvalidAc, "AC run overruns position 63")
		}
		bits := er.readBits(s)
		scan[k] = receiveExtend(bits, s)
		k++
	}

	for i := range scan {
		scan[i] *= quant[i]
	}
	natural := inverseZigzag(scan)
	return inverseDCT8x8(natural), nil
}

// upsampleInto writes one decoded data unit into plane at its MCU/data-
// unit offset, replicating samples when this component is subsampled
// relative to hMax/vMax, and clipping writes that fall outside the image.
func upsampleInto(plane []byte, width, height int, block [64]byte, mcuX, mcuY, duX, duY, hSamp, vSamp, hMax, vMax int) {
	repX := hMax / hSamp
	repY := vMax / vSamp
	baseX := (mcuX*hSamp+duX)*8*repX
	baseY := (mcuY*vSamp+duY)*8*repY

	for by := 0; by < 8; by++ {
		for bx := 0; bx < 8; bx++ {
			v := block[by*8+bx]
			for ry := 0; ry < repY; ry++ {
				y := baseY + by*repY + ry
				if y < 0 || y >= height {
					continue
				}
				for rx := 0; rx < repX; rx++ {
					x := baseX + bx*repX + rx
					if x < 0 || x >= width {
						continue
					}
					plane[y*width+x] = v
				}
			}
		}
	}
}
