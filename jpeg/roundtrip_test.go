package jpeg

import (
	"bytes"
	"testing"
)

func TestDataUnitRoundTripThroughEntropyCoding(t *testing.T) {
	var block [64]byte
	for i := range block {
		block[i] = byte(100 + i%40)
	}
	quant := scaleQuantTable(baseLumaQuant, 80)
	dcTable := defaultHuffTable(defaultDCLumaCounts, defaultDCLumaSyms)
	acTable := defaultHuffTable(defaultACLumaCounts, defaultACLumaSyms)

	var buf bytes.Buffer
	w := newEntropyWriter(&buf)
	dcPredEnc := 0
	encodeDataUnit(w, block, quant, dcTable, acTable, &dcPredEnc)
	w.flush()

	r := newEntropyReader(buf.Bytes())
	dcPredDec := 0
	got, err := decodeDataUnit(r, dcTable, acTable, quant, &dcPredDec)
	if err != nil {
		t.Fatalf("decodeDataUnit: %v", err)
	}
	for i := range block {
		diff := int(block[i]) - int(got[i])
		if diff < -20 || diff > 20 {
			t.Fatalf("sample %d: encoded %d, decoded %d (diff %d) exceeds lossy tolerance", i, block[i], got[i], diff)
		}
	}
}

func TestDataUnitRoundTripFlatBlockIsExact(t *testing.T) {
	var block [64]byte
	for i := range block {
		block[i] = 128
	}
	quant := scaleQuantTable(baseLumaQuant, 90)
	dcTable := defaultHuffTable(defaultDCLumaCounts, defaultDCLumaSyms)
	acTable := defaultHuffTable(defaultACLumaCounts, defaultACLumaSyms)

	var buf bytes.Buffer
	w := newEntropyWriter(&buf)
	dcPredEnc := 0
	encodeDataUnit(w, block, quant, dcTable, acTable, &dcPredEnc)
	w.flush()

	r := newEntropyReader(buf.Bytes())
	dcPredDec := 0
	got, err := decodeDataUnit(r, dcTable, acTable, quant, &dcPredDec)
	if err != nil {
		t.Fatalf("decodeDataUnit: %v", err)
	}
	for i, v := range got {
		if v != 128 {
			t.Fatalf("sample %d = %d, want exactly 128 for a flat block", i, v)
		}
	}
}

func TestDCPredictorAccumulatesAcrossDataUnits(t *testing.T) {
	quant := scaleQuantTable(baseLumaQuant, 90)
	dcTable := defaultHuffTable(defaultDCLumaCounts, defaultDCLumaSyms)
	acTable := defaultHuffTable(defaultACLumaCounts, defaultACLumaSyms)

	var flatA, flatB [64]byte
	for i := range flatA {
		flatA[i] = 100
		flatB[i] = 150
	}

	var buf bytes.Buffer
	w := newEntropyWriter(&buf)
	dcPredEnc := 0
	encodeDataUnit(w, flatA, quant, dcTable, acTable, &dcPredEnc)
	encodeDataUnit(w, flatB, quant, dcTable, acTable, &dcPredEnc)
	w.flush()

	r := newEntropyReader(buf.Bytes())
	dcPredDec := 0
	gotA, err := decodeDataUnit(r, dcTable, acTable, quant, &dcPredDec)
	if err != nil {
		t.Fatalf("decodeDataUnit A: %v", err)
	}
	gotB, err := decodeDataUnit(r, dcTable, acTable, quant, &dcPredDec)
	if err != nil {
		t.Fatalf("decodeDataUnit B: %v", err)
	}
	if gotA[0] != 100 || gotB[0] != 150 {
		t.Fatalf("got flat levels %d, %d, want 100, 150", gotA[0], gotB[0])
	}
}
