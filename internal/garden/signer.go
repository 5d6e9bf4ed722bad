package garden

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"errors"
)

var ErrEmptySecret = errors.New("garden: empty signing secret")

// Signer computes and checks plot signatures with the server secret.
//
// A signature is the first 8 bytes, read big-endian, of HMAC-SHA256 over
// CanonicalBytes(plot). Any process holding the same secret verifies the
// signatures of any other.
type Signer struct {
	key             []byte
	strictEmptyPlot bool
}

type SignerOption func(*Signer)

// WithStrictEmptyPlot makes Verify check a present approval even when the plot
// is empty. By default an empty plot is never checked.
func WithStrictEmptyPlot(strict bool) SignerOption {
	return func(s *Signer) {
		s.strictEmptyPlot = strict
	}
}

func NewSigner(secret []byte, opts ...SignerOption) (*Signer, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	key := make([]byte, len(secret))
	copy(key, secret)
	s := &Signer{key: key}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Sum returns the signature of plot.
func (s *Signer) Sum(plot Plot) (uint64, error) {
	msg, err := CanonicalBytes(plot)
	if err != nil {
		return 0, internalf(err, "canonicalize plot")
	}
	mac := hmac.New(sha256.New, s.key)
	mac.Write(msg)
	return binary.BigEndian.Uint64(mac.Sum(nil)[:SignatureSize]), nil
}

// Verified is a plot whose signature has been checked, or whose check was
// skipped because it was empty. The only way to obtain one is Signer.Verify.
type Verified struct {
	plot Plot
}

func (v Verified) Plot() Plot {
	return v.plot.Clone()
}

// Append returns a new Verified with p planted last. v is unchanged.
func (v Verified) Append(p Plant) Verified {
	next := v.plot.Clone()
	next.Plants = append(next.Plants, p)
	return Verified{plot: next}
}

// Verify checks state's approval against its plot.
func (s *Signer) Verify(state SignedState) (Verified, error) {
	if state.Plot.IsEmpty() && !(s.strictEmptyPlot && state.NatureApproved.IsPresent()) {
		return Verified{plot: state.Plot.Clone()}, nil
	}

	got, err := state.NatureApproved.Signature()
	if err != nil {
		return Verified{}, err
	}
	want, err := s.Sum(state.Plot)
	if err != nil {
		return Verified{}, err
	}
	if !equalSignatures(got, want) {
		return Verified{}, &SignatureError{Fault: FaultMismatch}
	}
	return Verified{plot: state.Plot.Clone()}, nil
}

// Seal signs a verified plot and returns the state to hand back to the client.
func (s *Signer) Seal(v Verified) (SignedState, error) {
	sig, err := s.Sum(v.plot)
	if err != nil {
		return SignedState{}, err
	}
	return SignedState{
		NatureApproved: ApprovalFor(sig),
		Plot:           v.plot.Clone(),
	}, nil
}

// Sign seals plot without verifying it first. It is meant for operator tooling
// that mints gardens; request paths go through Verify and Seal.
func (s *Signer) Sign(plot Plot) (SignedState, error) {
	return s.Seal(Verified{plot: plot.Clone()})
}

func equalSignatures(a, b uint64) bool {
	var x, y [SignatureSize]byte
	binary.BigEndian.PutUint64(x[:], a)
	binary.BigEndian.PutUint64(y[:], b)
	return hmac.Equal(x[:], y[:])
}
