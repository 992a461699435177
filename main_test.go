package main

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-server/internal/config"
	"github.com/carson-networks/finance-server/internal/storage/memstore"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.Out = io.Discard
	return log
}

func TestOpenBackend_Memory(t *testing.T) {
	cfg := &config.Config{Storage: config.Storage{Driver: config.StorageDriverMemory}}

	store, closeStore, err := openBackend(cfg, quietLogger())

	require.NoError(t, err)
	assert.IsType(t, &memstore.Store{}, store)
	closeStore()
}

func TestOpenBackend_UnknownDriver(t *testing.T) {
	cfg := &config.Config{Storage: config.Storage{Driver: "sqlite"}}

	store, closeStore, err := openBackend(cfg, quietLogger())

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown storage driver "sqlite"`)
	assert.Nil(t, store)
	assert.Nil(t, closeStore)
}
