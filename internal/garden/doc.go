// Package garden owns the signed garden state.
//
// A client keeps its garden between requests as a SignedState: the plot in
// plain text plus nature_approved, a MAC over the plot keyed by the server
// secret. Every sow runs the same three steps:
//
//	Signer.Verify  (unverified -> Verified, or rejected)
//	Verified.Append
//	Signer.Seal    (-> freshly signed SignedState)
//
// Contents are not confidential; only tampering is detected.
package garden
