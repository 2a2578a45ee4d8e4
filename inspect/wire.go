package inspect

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Snapshots are encoded with canonical CBOR so the same registry
// always produces byte-identical class data, which makes diffing two
// builds' metadata trivial.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("inspect: failed to create CBOR encoder: %v", err))
	}
	cborEncMode = em
}

// Encode serializes the snapshot to canonical CBOR.
func (s *Snapshot) Encode() ([]byte, error) {
	return cborEncMode.Marshal(s)
}

// DecodeSnapshot deserializes a snapshot from CBOR bytes.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := cbor.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &s, nil
}
