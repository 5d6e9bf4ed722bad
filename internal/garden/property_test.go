package garden

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func genPlot() gopter.Gen {
	return gen.SliceOf(
		gen.Struct(reflectPlant, map[string]gopter.Gen{
			"PlantType": gen.OneConstOf("carrot", "potato", "onion"),
			"Planted":   gen.UInt64(),
		}),
	).Map(func(plants []Plant) Plot {
		return Plot{Plants: plants}
	})
}

var reflectPlant = reflect.TypeOf(Plant{})

// TestSignatureEncodingProperty: DecodeSignature(EncodeSignature(x)) == x for any x.
func TestSignatureEncodingProperty(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("encode/decode round-trips every uint64", prop.ForAll(
		func(sig uint64) bool {
			got, err := DecodeSignature(EncodeSignature(sig))
			return err == nil && got == sig
		},
		gen.UInt64(),
	))

	properties.TestingRun(t)
}

// TestSignVerifyProperty: a sealed plot verifies with its secret and fails
// with any other, and any edit to a plant invalidates it.
func TestSignVerifyProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("signed plots verify", prop.ForAll(
		func(plot Plot, secret string) bool {
			s, err := NewSigner([]byte("k" + secret))
			if err != nil {
				return false
			}
			signed, err := s.Sign(plot)
			if err != nil {
				return false
			}
			_, err = s.Verify(signed)
			return err == nil
		},
		genPlot(),
		gen.AlphaString(),
	))

	properties.Property("a different secret mismatches", prop.ForAll(
		func(plot Plot, secret string) bool {
			if plot.IsEmpty() {
				return true
			}
			a, _ := NewSigner([]byte("a" + secret))
			b, _ := NewSigner([]byte("b" + secret))
			signed, err := a.Sign(plot)
			if err != nil {
				return false
			}
			_, err = b.Verify(signed)
			fault, ok := FaultOf(err)
			return ok && fault == FaultMismatch
		},
		genPlot(),
		gen.AlphaString(),
	))

	properties.Property("editing planted mismatches", prop.ForAll(
		func(plot Plot, idx int) bool {
			if plot.IsEmpty() {
				return true
			}
			s, _ := NewSigner([]byte("s1"))
			signed, err := s.Sign(plot)
			if err != nil {
				return false
			}
			tampered := signed.Plot.Clone()
			i := idx % tampered.Len()
			tampered.Plants[i].Planted ^= 1
			_, err = s.Verify(SignedState{NatureApproved: signed.NatureApproved, Plot: tampered})
			fault, ok := FaultOf(err)
			return ok && fault == FaultMismatch
		},
		genPlot(),
		gen.IntRange(0, 1<<16),
	))

	properties.TestingRun(t)
}
