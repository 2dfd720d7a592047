package intern_test

import (
	"bytes"
	"log/slog"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/lexpos"
	"github.com/hupe1980/lexpos/intern"
)

func TestInternerGet(t *testing.T) {
	interner := intern.New()

	a, err := interner.Get(lexpos.PrimaryKey(1), 7)
	require.NoError(t, err)
	b, err := interner.Get(lexpos.PrimaryKey(1), 7)
	require.NoError(t, err)

	assert.Same(t, a, b, "field-equal requests must return the canonical instance")
	assert.True(t, a.Equal(b))
	assert.Equal(t, 1, interner.Len())

	stats := interner.Stats()
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, uint64(1), stats.Hits)

	runtime.KeepAlive(a)
}

func TestInternerDistinctPairs(t *testing.T) {
	interner := intern.New()

	a, err := interner.Get(lexpos.PrimaryKey(1), 7)
	require.NoError(t, err)
	byIndex, err := interner.Get(lexpos.PrimaryKey(1), 8)
	require.NoError(t, err)
	byRecord, err := interner.Get(lexpos.PrimaryKey(2), 7)
	require.NoError(t, err)

	assert.NotSame(t, a, byIndex)
	assert.NotSame(t, a, byRecord)
	assert.False(t, a.Equal(byIndex))
	assert.False(t, a.Equal(byRecord))
	assert.Equal(t, 3, interner.Len())

	runtime.KeepAlive(a)
	runtime.KeepAlive(byIndex)
	runtime.KeepAlive(byRecord)
}

func TestInternerInvalidIndex(t *testing.T) {
	interner := intern.New()

	for _, index := range []int32{0, -1} {
		_, err := interner.Get(lexpos.PrimaryKey(1), index)
		assert.ErrorIs(t, err, lexpos.ErrInvalidIndex, "index %d", index)
	}

	assert.Equal(t, 0, interner.Len(), "failed constructions must not populate the cache")
	assert.Equal(t, uint64(0), interner.Stats().Misses)

	_, err := interner.Get(lexpos.PrimaryKey(1), 1)
	require.NoError(t, err)
}

func TestInternerDecode(t *testing.T) {
	t.Run("DecodeAfterGet", func(t *testing.T) {
		interner := intern.New()

		a, err := interner.Get(lexpos.PrimaryKey(9), 300)
		require.NoError(t, err)

		b, err := interner.Decode(a.Bytes())
		require.NoError(t, err)
		assert.Same(t, a, b, "decode must not create a second live instance")
	})

	t.Run("GetAfterDecode", func(t *testing.T) {
		interner := intern.New()

		p, err := lexpos.NewPosition(lexpos.PrimaryKey(9), 300)
		require.NoError(t, err)

		a, err := interner.Decode(p.AppendTo(nil))
		require.NoError(t, err)
		b, err := interner.Get(lexpos.PrimaryKey(9), 300)
		require.NoError(t, err)
		assert.Same(t, a, b)
	})

	t.Run("BadFrame", func(t *testing.T) {
		interner := intern.New()

		_, err := interner.Decode(make([]byte, 3))
		assert.ErrorIs(t, err, lexpos.ErrShortBuffer)
		_, err = interner.Decode(make([]byte, lexpos.PrimaryKeySize+3))
		assert.ErrorIs(t, err, lexpos.ErrBadFrame)
		assert.Equal(t, 0, interner.Len())
	})
}

func TestInternerConcurrent(t *testing.T) {
	interner := intern.New()

	seed, err := lexpos.NewPosition(lexpos.PrimaryKey(5), 40000)
	require.NoError(t, err)
	frame := seed.AppendTo(nil)

	const workers = 16
	got := make([]*lexpos.Position, workers)

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			// Half the workers decode, half construct; all must converge
			// on one canonical instance.
			if i%2 == 0 {
				p, err := interner.Decode(bytes.Clone(frame))
				if err != nil {
					return err
				}
				got[i] = p
				return nil
			}
			p, err := interner.Get(lexpos.PrimaryKey(5), 40000)
			if err != nil {
				return err
			}
			got[i] = p
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for i := 1; i < workers; i++ {
		assert.Same(t, got[0], got[i], "worker %d", i)
	}
	assert.Equal(t, 1, interner.Len())
	runtime.KeepAlive(got)
}

func TestInternerConcurrentDistinctKeys(t *testing.T) {
	interner := intern.New(intern.WithLogger(slog.New(slog.DiscardHandler)))

	const workers = 8
	const pairs = 200

	var g errgroup.Group
	results := make([][]*lexpos.Position, workers)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			results[w] = make([]*lexpos.Position, pairs)
			for i := 0; i < pairs; i++ {
				p, err := interner.Get(lexpos.PrimaryKey(i%10), int32(i+1))
				if err != nil {
					return err
				}
				results[w][i] = p
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for w := 1; w < workers; w++ {
		for i := 0; i < pairs; i++ {
			assert.Same(t, results[0][i], results[w][i])
		}
	}
	assert.Equal(t, pairs, interner.Len())
	runtime.KeepAlive(results)
}

func TestInternerWeakReclaim(t *testing.T) {
	interner := intern.New()

	held := make([]*lexpos.Position, 0, 512)
	for i := int32(1); i <= 512; i++ {
		p, err := interner.Get(lexpos.PrimaryKey(7), i)
		require.NoError(t, err)
		held = append(held, p)
	}
	require.Equal(t, 512, interner.Len())
	runtime.KeepAlive(held)
	held = nil
	_ = held

	// Nothing references the Positions anymore; the interner alone must
	// not keep them alive.
	require.Eventually(t, func() bool {
		runtime.GC()
		return interner.Len() == 0
	}, 10*time.Second, 50*time.Millisecond, "interner pinned unreachable positions")
}

func TestInternerReclaimThenReintern(t *testing.T) {
	interner := intern.New()

	first, err := interner.Get(lexpos.PrimaryKey(3), 99)
	require.NoError(t, err)
	firstHash := first.Hash()
	first = nil
	_ = first

	require.Eventually(t, func() bool {
		runtime.GC()
		return interner.Len() == 0
	}, 10*time.Second, 50*time.Millisecond)

	// A fresh request after reclamation must produce a working canonical
	// instance again.
	second, err := interner.Get(lexpos.PrimaryKey(3), 99)
	require.NoError(t, err)
	assert.Equal(t, firstHash, second.Hash())
	assert.Equal(t, 1, interner.Len())
	runtime.KeepAlive(second)
}

func TestDefaultInterner(t *testing.T) {
	a, err := intern.Get(lexpos.PrimaryKey(1234), 56)
	require.NoError(t, err)
	b, err := intern.Decode(a.Bytes())
	require.NoError(t, err)
	assert.Same(t, a, b)
}
