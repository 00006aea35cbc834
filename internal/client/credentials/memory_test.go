package credentials

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore("")

	v, err := s.Get(ctx)
	require.NoError(t, err)
	require.Empty(t, v)

	require.NoError(t, s.Set(ctx, "abc"))
	v, _ = s.Get(ctx)
	require.Equal(t, "abc", v)

	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))
	v, _ = s.Get(ctx)
	require.Empty(t, v)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore("seed")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(3)
		go func() { defer wg.Done(); _ = s.Set(ctx, "t") }()
		go func() { defer wg.Done(); _, _ = s.Get(ctx) }()
		go func() { defer wg.Done(); _ = s.Clear(ctx) }()
	}
	wg.Wait()
}

func TestStoresSatisfyInterface(t *testing.T) {
	var _ Store = (*MemoryStore)(nil)
	var _ Store = (*SQLiteStore)(nil)
}
