package cache

import (
	"context"
	"testing"
	"time"

	"github.com/maxwelladwale/coltech/internal/domain/cart"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStore(0)
	defer mem.Close()
	sessions := NewSessionStore(mem, "checkout", time.Minute)

	type state struct {
		Step string `json:"step"`
	}

	var got state
	ok, err := sessions.Load(ctx, "s1", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, sessions.Save(ctx, "s1", state{Step: "payment"}))
	ok, err = sessions.Load(ctx, "s1", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "payment", got.Step)

	exists, err := mem.Exists(ctx, "session:checkout:s1")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, sessions.Delete(ctx, "s1"))
	ok, err = sessions.Load(ctx, "s1", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCartStore(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStore(0)
	defer mem.Close()
	carts := NewCartStore(mem, time.Hour)

	missing, err := carts.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	c := cart.New()
	require.NoError(t, c.Add(cart.Item{ProductID: "cam-hd-1080p", Name: "HD Camera", Price: decimal.NewFromInt(5000), Quantity: 2}))
	require.NoError(t, carts.Save(ctx, "s1", c))

	loaded, err := carts.Load(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, c.ID, loaded.ID)
	assert.Equal(t, 2, loaded.Count())
	assert.True(t, loaded.Total().Amount().Equal(decimal.NewFromInt(10000)))

	require.NoError(t, mem.Set(ctx, "session:cart:s2", []byte("{not json"), time.Hour))
	_, err = carts.Load(ctx, "s2")
	assert.ErrorIs(t, err, cart.ErrCorrupt)
	assert.ErrorIs(t, err, ErrCorruptValue)
}
