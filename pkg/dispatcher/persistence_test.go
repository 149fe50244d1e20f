package dispatcher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshworks/meshcoord/pkg/models"
	"github.com/meshworks/meshcoord/pkg/persist"
)

func TestPersistGeneralConfigVerifiesAndCaches(t *testing.T) {
	h := newHarness(t)

	config := models.GeneralConfig{ColorMode: models.ColorModeDark}

	require.NoError(t, h.dispatcher.PersistGeneralConfig(context.Background(), config))

	assert.Equal(t, models.ColorModeDark, h.store.GeneralConfig().ColorMode)
	assert.Positive(t, h.persist.SaveCount())

	var stored models.GeneralConfig

	found, err := persist.GetJSON(context.Background(), h.persist, persist.KeyGeneralConfig, &stored)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, config, stored)
}

func TestPersistVerificationFailureSurfaces(t *testing.T) {
	h := newHarness(t)

	// A store that silently drops writes must be caught by read-back.
	h.dispatcher.persist = &droppingStore{}

	err := h.dispatcher.PersistMapConfig(context.Background(), models.MapConfig{Style: "satellite"})
	require.ErrorIs(t, err, ErrPersistVerification)

	// The cache keeps its previous value when the write did not stick.
	assert.NotEqual(t, "satellite", h.store.MapConfig().Style)
}

func TestLoadPersistedConfigHydratesCaches(t *testing.T) {
	h := newHarness(t)

	ctx := context.Background()

	require.NoError(t, persist.SetJSON(ctx, h.persist, persist.KeyGeneralConfig,
		models.GeneralConfig{ColorMode: models.ColorModeDark}))
	require.NoError(t, persist.SetJSON(ctx, h.persist, persist.KeyLastTCPConnection,
		models.TCPConnectionMeta{Address: "192.168.1.20:4403"}))

	require.NoError(t, h.dispatcher.LoadPersistedConfig(ctx))

	assert.Equal(t, models.ColorModeDark, h.store.GeneralConfig().ColorMode)

	meta := h.store.LastTCPConnection()
	require.NotNil(t, meta)
	assert.Equal(t, "192.168.1.20:4403", meta.Address)
}

func TestFetchLastTCPConnection(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	meta, err := h.dispatcher.FetchLastTCPConnection(ctx)
	require.NoError(t, err)
	assert.Nil(t, meta)

	require.NoError(t, persist.SetJSON(ctx, h.persist, persist.KeyLastTCPConnection,
		models.TCPConnectionMeta{Address: "10.0.0.5:4403"}))

	meta, err = h.dispatcher.FetchLastTCPConnection(ctx)
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.Equal(t, "10.0.0.5:4403", meta.Address)
	assert.Equal(t, "10.0.0.5:4403", h.store.LastTCPConnection().Address)
}

func TestLoadPersistedConfigToleratesCorruptValues(t *testing.T) {
	h := newHarness(t)

	ctx := context.Background()

	require.NoError(t, h.persist.Set(ctx, persist.KeyGeneralConfig, []byte("{not json")))

	require.NoError(t, h.dispatcher.LoadPersistedConfig(ctx))

	// Defaults survive a corrupt persisted value.
	assert.Equal(t, models.DefaultGeneralConfig(), h.store.GeneralConfig())
}

// droppingStore accepts writes and loses them.
type droppingStore struct{}

func (*droppingStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (*droppingStore) Set(context.Context, string, []byte) error         { return nil }
func (*droppingStore) Save(context.Context) error                        { return nil }
func (*droppingStore) Close() error                                      { return nil }
