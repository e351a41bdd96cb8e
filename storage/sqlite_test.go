package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSQLiteMechanismRequiresDSN(t *testing.T) {
	_, err := newSQLiteMechanism(nil)
	assert.Error(t, err)
}

func TestSQLiteMechanismRoundTrip(t *testing.T) {
	m, err := newSQLiteMechanism(map[string]string{"dsn": ":memory:"})
	assert.NoError(t, err)

	_, ok, err := m.Get("cursor")
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, m.Set("cursor", []byte("42")))
	v, ok, err := m.Get("cursor")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("42"), v)

	// set overwrites
	assert.NoError(t, m.Set("cursor", []byte("43")))
	v, _, _ = m.Get("cursor")
	assert.Equal(t, []byte("43"), v)

	assert.NoError(t, m.Delete("cursor"))
	_, ok, _ = m.Get("cursor")
	assert.False(t, ok)

	assert.NoError(t, m.Delete("cursor"))
}

func TestSQLiteMechanismDurable(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "state.db")

	m1, err := newSQLiteMechanism(map[string]string{"dsn": dsn})
	assert.NoError(t, err)
	assert.NoError(t, m1.Set("cursor", []byte("42")))

	m2, err := newSQLiteMechanism(map[string]string{"dsn": dsn})
	assert.NoError(t, err)
	v, ok, err := m2.Get("cursor")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("42"), v)
}
