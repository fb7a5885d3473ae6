package jpeg

import "github.com/alpmestan/juicypixels/pixel"

// huffNode is one node of the canonical decode tree, stored as a packed
// array: a leaf carries a symbol, an internal node carries its two
// children's indices into the same tree slice.
type huffNode struct {
	leaf     bool
	symbol   byte
	children [2]int
}

// huffTable is a decode tree plus, for encoding, a code/length pair per
// symbol built from the same (counts, symbols) input.
type huffTable struct {
	nodes []huffNode // nodes[0] is the root

	code   map[byte]uint16
	length map[byte]int
}

// buildHuffTable constructs the canonical Huffman assignment from DHT's
// per-length symbol counts and the flattened symbol list, per ITU T.81
// Annex C: codes are assigned in symbol-list order, incrementing within
// a bit length and shifting left by one whenever the length increases.
func buildHuffTable(counts [16]int, symbols []byte) (*huffTable, error) {
	total := 0
	for _, c := range counts {
		total += c
	}
	if total != len(symbols) {
		return nil, pixel.Errorf(pixel.MalformedStream, "DHT symbol count %d disagrees with declared length sum %d", len(symbols), total)
	}

	t := &huffTable{
		nodes:  []huffNode{{}}, // root placeholder at index 0
		code:   make(map[byte]uint16, len(symbols)),
		length: make(map[byte]int, len(symbols)),
	}

	code := uint16(0)
	si := 0
	for length := 1; length <= 16; length++ {
		for i := 0; i < counts[length-1]; i++ {
			sym := symbols[si]
			si++
			t.code[sym] = code
			t.length[sym] = length
			t.insert(sym, code, length)
			code++
		}
		code <<= 1
	}
	return t, nil
}

// insert walks (or grows) the decode tree from the root, placing sym as
// a leaf reached by the given length-bit code, MSB first.
func (t *huffTable) insert(sym byte, code uint16, length int) {
	cur := 0
	for i := length - 1; i >= 0; i-- {
		bit := int((code >> i) & 1)
		child := t.nodes[cur].children[bit]
		if child == 0 {
			t.nodes = append(t.nodes, huffNode{})
			child = len(t.nodes) - 1
			t.nodes[cur].children[bit] = child
		}
		cur = child
	}
	t.nodes[cur].leaf = true
	t.nodes[cur].symbol = sym
}

// decodeSymbol descends the tree: left on 0, right on 1, until a leaf
// is reached.
func (t *huffTable) decodeSymbol(r *entropyReader) byte {
	cur := 0
	for !t.nodes[cur].leaf {
		bit := r.readBit()
		cur = t.nodes[cur].children[bit]
	}
	return t.nodes[cur].symbol
}

// defaultDCLumaCounts/Symbols etc. are the fixed Huffman tables T.81
// Annex K.3 designates as the JPEG baseline defaults, used by the
// encoder for all four decode-table slots (DC luma, AC luma, DC chroma,
// AC chroma).
var (
	defaultDCLumaCounts = [16]int{0, 1, 5, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0}
	defaultDCLumaSyms   = []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}

	defaultDCChromaCounts = [16]int{0, 3, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0}
	defaultDCChromaSyms   = []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}

	defaultACLumaCounts = [16]int{0, 2, 1, 3, 3, 2, 4, 3, 5, 5, 4, 4, 0, 0, 1, 125}
	defaultACLumaSyms   = []byte{
		0x01, 0x02, 0x03, 0x00, 0x04, 0x11, 0x05, 0x12,
		0x21, 0x31, 0x41, 0x06, 0x13, 0x51, 0x61, 0x07,
		0x22, 0x71, 0x14, 0x32, 0x81, 0x91, 0xa1, 0x08,
		0x23, 0x42, 0xb1, 0xc1, 0x15, 0x52, 0xd1, 0xf0,
		0x24, 0x33, 0x62, 0x72, 0x82, 0x09, 0x0a, 0x16,
		0x17, 0x18, 0x19, 0x1a, 0x25, 0x26, 0x27, 0x28,
		0x29, 0x2a, 0x34, 0x35, 0x36, 0x37, 0x38, 0x39,
		0x3a, 0x43, 0x44, 0x45, 0x46, 0x47, 0x48, 0x49,
		0x4a, 0x53, 0x54, 0x55, 0x56, 0x57, 0x58, 0x59,
		0x5a, 0x63, 0x64, 0x65, 0x66, 0x67, 0x68, 0x69,
		0x6a, 0x73, 0x74, 0x75, 0x76, 0x77, 0x78, 0x79,
		0x7a, 0x83, 0x84, 0x85, 0x86, 0x87, 0x88, 0x89,
		0x8a, 0x92, 0x93, 0x94, 0x95, 0x96, 0x97, 0x98,
		0x99, 0x9a, 0xa2, 0xa3, 0xa4, 0xa5, 0xa6, 0xa7,
		0xa8, 0xa9, 0xaa, 0xb2, 0xb3, 0xb4, 0xb5, 0xb6,
		0xb7, 0xb8, 0xb9, 0xba, 0xc2, 0xc3, 0xc4, 0xc5,
		0xc6, 0xc7, 0xc8, 0xc9, 0xca, 0xd2, 0xd3, 0xd4,
		0xd5, 0xd6, 0xd7, 0xd8, 0xd9, 0xda, 0xe1, 0xe2,
		0xe3, 0xe4, 0xe5, 0xe6, 0xe7, 0xe8, 0xe9, 0xea,
		0xf1, 0xf2, 0xf3, 0xf4, 0xf5, 0xf6, 0xf7, 0xf8,
		0xf9, 0xfa,
	}

	defaultACChromaCounts = [16]int{0, 2, 1, 2, 4, 4, 3, 4, 7, 5, 4, 4, 0, 1, 2, 119}
	defaultACChromaSyms   = []byte{
		0x00, 0x01, 0x02, 0x03, 0x11, 0x04, 0x05, 0x21,
		0x31, 0x06, 0x12, 0x41, 0x51, 0x07, 0x61, 0x71,
		0x13, 0x22, 0x32, 0x81, 0x08, 0x14, 0x42, 0x91,
		0xa1, 0xb1, 0xc1, 0x09, 0x23, 0x33, 0x52, 0xf0,
		0x15, 0x62, 0x72, 0xd1, 0x0a, 0x16, 0x24, 0x34,
		0xe1, 0x25, 0xf1, 0x17, 0x18, 0x19, 0x1a, 0x26,
		0x27, 0x28, 0x29, 0x2a, 0x35, 0x36, 0x37, 0x38,
		0x39, 0x3a, 0x43, 0x44, 0x45, 0x46, 0x47, 0x48,
		0x49, 0x4a, 0x53, 0x54, 0x55, 0x56, 0x57, 0x58,
		0x59, 0x5a, 0x63, 0x64, 0x65, 0x66, 0x67, 0x68,
		0x69, 0x6a, 0x73, 0x74, 0x75, 0x76, 0x77, 0x78,
		0x79, 0x7a, 0x82, 0x83, 0x84, 0x85, 0x86, 0x87,
		0x88, 0x89, 0x8a, 0x92, 0x93, 0x94, 0x95, 0x96,
		0x97, 0x98, 0x99, 0x9a, 0xa2, 0xa3, 0xa4, 0xa5,
		0xa6, 0xa7, 0xa8, 0xa9, 0xaa, 0xb2, 0xb3, 0xb4,
		0xb5, 0xb6, 0xb7, 0xb8, 0xb9, 0xba, 0xc2, 0xc3,
		0xc4, 0xc5, 0xc6, 0xc7, 0xc8, 0xc9, 0xca, 0xd2,
		0xd3, 0xd4, 0xd5, 0xd6, 0xd7, 0xd8, 0xd9, 0xda,
		0xe2, 0xe3, 0xe4, 0xe5, 0xe6, 0xe7, 0xe8, 0xe9,
		0xea, 0xf2, 0xf3, 0xf4, 0xf5, 0xf6, 0xf7, 0xf8,
		0xf9, 0xfa,
	}
)

// defaultHuffTable builds (for the encoder) the huffTable for one of
// the four fixed default slots; it panics on an internal inconsistency
// since the tables above are compile-time constants, never attacker data.
func defaultHuffTable(counts [16]int, symbols []byte) *huffTable {
	t, err := buildHuffTable(counts, symbols)
	if err != nil {
		panic("jpeg: malformed default Huffman table: " + err.Error())
	}
	return t
}
