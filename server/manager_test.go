package server

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitRoomManagerAfterFirstUse(t *testing.T) {
	_ = GetRoomManager()
	require.ErrorIs(t, InitRoomManager(DefaultRoomOptions()), ErrManagerInitialized)
}

func TestNewRoomManagerRejectsBadOptions(t *testing.T) {
	opts := DefaultRoomOptions()
	opts.MaxInputsPerTick = 0
	_, err := NewRoomManager(opts)
	require.Error(t, err)
}
