package jwks

import (
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
)

// Criterion describes the key a token needs for signature
// verification. It is derived from the token header on every decode
// and exists only for the duration of that call; sources use it to
// narrow the candidate list, never to widen it.
type Criterion struct {
	// Algorithm is the signature algorithm the token declared, after
	// it passed the decoder's configured set.
	Algorithm jwa.SignatureAlgorithm

	// KeyID is the kid the token named, or empty when the header
	// carries none.
	KeyID string

	// Use is the required key use, normally "sig".
	Use string
}

// Match reports whether key is structurally able to satisfy the
// criterion. A key matches when every constraint it declares is
// compatible: a named kid must equal the criterion's, a declared use
// must equal the required one, key_ops (when present) must include
// verify, and a declared alg must equal the criterion's algorithm.
// Keys that declare no alg match on key type instead, so an RS256
// criterion accepts any RSA key without an alg of its own.
func (c Criterion) Match(key jwk.Key) bool {
	if c.KeyID != "" && key.KeyID() != c.KeyID {
		return false
	}

	if c.Use != "" && key.KeyUsage() != "" && key.KeyUsage() != c.Use {
		return false
	}

	if ops := key.KeyOps(); len(ops) > 0 && !hasKeyOp(ops, jwk.KeyOpVerify) {
		return false
	}

	if alg := key.Algorithm(); alg.String() != "" {
		return alg.String() == c.Algorithm.String()
	}

	return key.KeyType() == keyTypeForAlgorithm(c.Algorithm)
}

func hasKeyOp(ops jwk.KeyOperationList, want jwk.KeyOperation) bool {
	for _, op := range ops {
		if op == want {
			return true
		}
	}
	return false
}

// keyTypeForAlgorithm returns the JWK key type the algorithm family
// operates on.
func keyTypeForAlgorithm(alg jwa.SignatureAlgorithm) jwa.KeyType {
	switch alg {
	case jwa.RS256, jwa.RS384, jwa.RS512, jwa.PS256, jwa.PS384, jwa.PS512:
		return jwa.RSA
	case jwa.ES256, jwa.ES384, jwa.ES512:
		return jwa.EC
	case jwa.EdDSA:
		return jwa.OKP
	}
	return jwa.InvalidKeyType
}

// filterKeys returns the keys in set that match the criterion, in
// set order. A nil result means no key matched; it is not an error.
func filterKeys(set jwk.Set, criterion Criterion) []jwk.Key {
	var keys []jwk.Key
	for i := 0; i < set.Len(); i++ {
		key, ok := set.Key(i)
		if !ok {
			continue
		}
		if criterion.Match(key) {
			keys = append(keys, key)
		}
	}
	return keys
}
