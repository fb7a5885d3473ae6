package png

import (
	"encoding/binary"
	"hash/crc32"
	"io"

	"github.com/alpmestan/juicypixels/pixel"
)

var signature = [8]byte{137, 80, 78, 71, 13, 10, 26, 10}

// chunk is a parse-time entity: it lives only during parse/emit, never
// retained past the enclosing decode or encode call.
type chunk struct {
	typ     string
	payload []byte
}

// checkSignature consumes the first 8 bytes of r and fails with
// InvalidSignature if they don't match the PNG magic.
func checkSignature(r io.Reader) error {
	var got [8]byte
	if _, err := io.ReadFull(r, got[:]); err != nil {
		return pixel.ErrorfAt(pixel.InvalidSignature, 0, "truncated PNG signature: %v", err)
	}
	if got != signature {
		return pixel.ErrorfAt(pixel.InvalidSignature, 0, "bad PNG signature")
	}
	return nil
}

// readChunk reads one {length, type, payload, crc} chunk and validates
// its CRC-32 (polynomial 0xEDB88320, the same table hash/crc32.IEEE
// uses, seeded 0xFFFFFFFF and finalized by XOR with 0xFFFFFFFF).
func readChunk(r io.Reader, offset int64) (chunk, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return chunk{}, pixel.ErrorfAt(pixel.Truncated, offset, "reading chunk length: %v", err)
	}
	length := binary.BigEndian.Uint32(lenBuf[:])

	var typBuf [4]byte
	if _, err := io.ReadFull(r, typBuf[:]); err != nil {
		return chunk{}, pixel.ErrorfAt(pixel.Truncated, offset+4, "reading chunk type: %v", err)
	}

	payload := make([]byte, length)
	if length > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return chunk{}, pixel.ErrorfAt(pixel.Truncated, offset+8, "reading chunk payload: %v", err)
		}
	}

	var crcBuf [4]byte
	if _, err := io.ReadFull(r, crcBuf[:]); err != nil {
		return chunk{}, pixel.ErrorfAt(pixel.Truncated, offset+8+int64(length), "reading chunk CRC: %v", err)
	}
	wantCRC := binary.BigEndian.Uint32(crcBuf[:])

	h := crc32.NewIEEE()
	h.Write(typBuf[:])
	h.Write(payload)
	if gotCRC := h.Sum32(); gotCRC != wantCRC {
		return chunk{}, pixel.ErrorfAt(pixel.CrcMismatch, offset+8+int64(length), "chunk %q: got %#08x, want %#08x", typBuf, gotCRC, wantCRC)
	}

	return chunk{typ: string(typBuf[:]), payload: payload}, nil
}

// writeChunk emits one {length, type, payload, crc} chunk.
func writeChunk(w io.Writer, typ string, payload []byte) error {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}

	h := crc32.NewIEEE()
	h.Write([]byte(typ))
	h.Write(payload)

	if _, err := io.WriteString(w, typ); err != nil {
		return err
	}
	if _, err := w.Write(payload); err != nil {
		return err
	}

	var crcBuf [4]byte
	binary.BigEndian.PutUint32(crcBuf[:], h.Sum32())
	_, err := w.Write(crcBuf[:])
	return err
}
