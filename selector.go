package jwtdecoder

import (
	"errors"
	"fmt"

	"github.com/lestrrat-go/jwx/v2/jwa"

	"github.com/authedge/go-jwt-decoder/jwks"
)

// SignatureAlgorithm is a JWS signature algorithm.
type SignatureAlgorithm string

// Signature algorithms
const (
	EdDSA = SignatureAlgorithm("EdDSA")
	RS256 = SignatureAlgorithm("RS256") // RSASSA-PKCS-v1.5 using SHA-256
	RS384 = SignatureAlgorithm("RS384") // RSASSA-PKCS-v1.5 using SHA-384
	RS512 = SignatureAlgorithm("RS512") // RSASSA-PKCS-v1.5 using SHA-512
	ES256 = SignatureAlgorithm("ES256") // ECDSA using P-256 and SHA-256
	ES384 = SignatureAlgorithm("ES384") // ECDSA using P-384 and SHA-384
	ES512 = SignatureAlgorithm("ES512") // ECDSA using P-521 and SHA-512
	PS256 = SignatureAlgorithm("PS256") // RSASSA-PSS using SHA256 and MGF1-SHA256
	PS384 = SignatureAlgorithm("PS384") // RSASSA-PSS using SHA384 and MGF1-SHA384
	PS512 = SignatureAlgorithm("PS512") // RSASSA-PSS using SHA512 and MGF1-SHA512
)

// allowedSigningAlgorithms is the closed set of algorithms the
// decoder can be configured with. Verification keys are public keys,
// so symmetric algorithms are not part of the set.
var allowedSigningAlgorithms = map[SignatureAlgorithm]bool{
	EdDSA: true,
	RS256: true,
	RS384: true,
	RS512: true,
	ES256: true,
	ES384: true,
	ES512: true,
	PS256: true,
	PS384: true,
	PS512: true,
}

// selectCriterion derives the key selection criterion from the parsed
// token header. The header's declared algorithm must be a member of
// the decoder's configured set; the header is never trusted to widen
// it. Tokens that fail here are rejected before the key source is
// consulted.
func (d *Decoder) selectCriterion(header map[string]any) (jwks.Criterion, error) {
	algName, _ := header["alg"].(string)
	if algName == "" {
		return jwks.Criterion{}, &decodeError{
			kind:    ErrMalformed,
			details: errors.New("the header does not declare a signing algorithm"),
		}
	}

	if !d.algorithms[SignatureAlgorithm(algName)] {
		return jwks.Criterion{}, &decodeError{
			kind:    ErrUnsupportedAlgorithm,
			details: fmt.Errorf("unsupported algorithm of %s", algName),
		}
	}

	criterion := jwks.Criterion{
		Algorithm: jwa.SignatureAlgorithm(algName),
		Use:       "sig",
	}
	if kid, ok := header["kid"].(string); ok {
		criterion.KeyID = kid
	}

	return criterion, nil
}
