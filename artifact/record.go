package artifact

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/cocosip/go-huffman-codec/huffman"
)

// encMode uses Core Deterministic Encoding so the same artifact always
// serializes to the same bytes
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("artifact: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("artifact: CBOR decoder initialization failed: " + err.Error())
	}
}

// record is the persisted form of a huffman.Artifact
type record struct {
	Rows     uint32       `cbor:"1,keyasint"`
	Cols     uint32       `cbor:"2,keyasint"`
	Codes    []codeRecord `cbor:"3,keyasint"`
	Payload  []byte       `cbor:"4,keyasint"`
	Trailing uint8        `cbor:"5,keyasint"`
}

// codeRecord is one codebook entry, encoded as [value, length, bits]
type codeRecord struct {
	_     struct{} `cbor:",toarray"`
	Value uint8
	Len   uint8
	Bits  uint64
}

func toRecord(a *huffman.Artifact) (*record, error) {
	if a == nil || a.CodeBook == nil || a.Bits == nil {
		return nil, fmt.Errorf("%w: incomplete artifact", ErrCorruptRecord)
	}
	if a.Rows <= 0 || a.Cols <= 0 || int64(a.Rows) > int64(^uint32(0)) || int64(a.Cols) > int64(^uint32(0)) {
		return nil, fmt.Errorf("%w: %dx%d", huffman.ErrInvalidDimensions, a.Rows, a.Cols)
	}

	entries := a.CodeBook.Entries()
	rec := &record{
		Rows:     uint32(a.Rows),
		Cols:     uint32(a.Cols),
		Codes:    make([]codeRecord, len(entries)),
		Payload:  a.Bits.Bytes(),
		Trailing: a.Bits.TrailingBits(),
	}
	for i, e := range entries {
		rec.Codes[i] = codeRecord{Value: e.Value, Len: uint8(e.Code.Len), Bits: e.Code.Bits}
	}
	return rec, nil
}

func (rec *record) toArtifact() (*huffman.Artifact, error) {
	codes := make(map[byte]huffman.Code, len(rec.Codes))
	for _, c := range rec.Codes {
		if _, dup := codes[c.Value]; dup {
			return nil, fmt.Errorf("%w: value %d listed twice in codebook", huffman.ErrMalformedTree, c.Value)
		}
		codes[c.Value] = huffman.Code{Bits: c.Bits, Len: int(c.Len)}
	}

	cb, err := huffman.NewCodeBook(codes)
	if err != nil {
		return nil, err
	}
	bits, err := huffman.NewBitSequence(rec.Payload, rec.Trailing)
	if err != nil {
		return nil, err
	}
	return huffman.NewArtifact(int(rec.Rows), int(rec.Cols), cb, bits)
}

func encodeRecord(rec *record) ([]byte, error) {
	return encMode.Marshal(rec)
}

func decodeRecord(data []byte) (*record, error) {
	var rec record
	if err := decMode.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	return &rec, nil
}
