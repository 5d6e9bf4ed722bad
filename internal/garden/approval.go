package garden

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
)

// SignatureSize is the width in bytes of an encoded signature.
const SignatureSize = 8

var signatureEncoding = base64.StdEncoding.Strict()

// Approval is the nature_approved field: either absent or a present, still
// undecoded transport string. The zero value is absent.
type Approval struct {
	raw     string
	present bool
}

func Absent() Approval {
	return Approval{}
}

func Present(raw string) Approval {
	return Approval{raw: raw, present: true}
}

// ApprovalFor encodes sig for transport.
func ApprovalFor(sig uint64) Approval {
	return Present(EncodeSignature(sig))
}

func (a Approval) IsPresent() bool {
	return a.present
}

// IsZero lets encoding/json omit an absent approval.
func (a Approval) IsZero() bool {
	return !a.present
}

func (a Approval) Raw() (string, bool) {
	return a.raw, a.present
}

// Signature decodes the approval. An absent approval reports FaultNotFound and
// an undecodable one FaultMalformed.
func (a Approval) Signature() (uint64, error) {
	if !a.present {
		return 0, &SignatureError{Fault: FaultNotFound}
	}
	return DecodeSignature(a.raw)
}

func (a Approval) MarshalJSON() ([]byte, error) {
	if !a.present {
		return []byte("null"), nil
	}
	return json.Marshal(a.raw)
}

func (a *Approval) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = Absent()
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("nature_approved: %w", err)
	}
	*a = Present(raw)
	return nil
}

// EncodeSignature returns the base64 form of sig's 8-byte big-endian representation.
func EncodeSignature(sig uint64) string {
	var buf [SignatureSize]byte
	binary.BigEndian.PutUint64(buf[:], sig)
	return signatureEncoding.EncodeToString(buf[:])
}

func DecodeSignature(s string) (uint64, error) {
	buf, err := signatureEncoding.DecodeString(s)
	if err != nil {
		return 0, &SignatureError{Fault: FaultMalformed, Err: err}
	}
	if len(buf) != SignatureSize {
		return 0, &SignatureError{
			Fault: FaultMalformed,
			Err:   fmt.Errorf("want %d bytes, got %d", SignatureSize, len(buf)),
		}
	}
	return binary.BigEndian.Uint64(buf), nil
}
