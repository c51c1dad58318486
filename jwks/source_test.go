package jwks

import (
	"context"
	"testing"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticSource(t *testing.T) {
	key1 := rsaPublicJWK(t)
	require.NoError(t, key1.Set(jwk.KeyIDKey, "key-1"))

	key2 := rsaPublicJWK(t)
	require.NoError(t, key2.Set(jwk.KeyIDKey, "key-2"))

	set := jwk.NewSet()
	require.NoError(t, set.AddKey(key1))
	require.NoError(t, set.AddKey(key2))

	source := NewStaticSource(set)

	t.Run("It returns the key a kid criterion names", func(t *testing.T) {
		keys, err := source.Get(context.Background(), Criterion{
			Algorithm: jwa.RS256,
			KeyID:     "key-2",
			Use:       "sig",
		})
		require.NoError(t, err)

		require.Len(t, keys, 1)
		assert.Equal(t, "key-2", keys[0].KeyID())
	})

	t.Run("It returns all compatible keys in set order", func(t *testing.T) {
		keys, err := source.Get(context.Background(), Criterion{
			Algorithm: jwa.RS256,
			Use:       "sig",
		})
		require.NoError(t, err)

		require.Len(t, keys, 2)
		assert.Equal(t, "key-1", keys[0].KeyID())
		assert.Equal(t, "key-2", keys[1].KeyID())
	})

	t.Run("It returns no keys without error when nothing matches", func(t *testing.T) {
		keys, err := source.Get(context.Background(), Criterion{
			Algorithm: jwa.ES256,
			Use:       "sig",
		})

		require.NoError(t, err)
		assert.Empty(t, keys)
	})

	t.Run("It treats a nil set as empty", func(t *testing.T) {
		empty := NewStaticSource(nil)

		keys, err := empty.Get(context.Background(), Criterion{
			Algorithm: jwa.RS256,
			Use:       "sig",
		})

		require.NoError(t, err)
		assert.Empty(t, keys)
	})

	t.Run("It never blocks on the context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		keys, err := source.Get(ctx, Criterion{
			Algorithm: jwa.RS256,
			Use:       "sig",
		})

		require.NoError(t, err)
		assert.Len(t, keys, 2)
	})
}
