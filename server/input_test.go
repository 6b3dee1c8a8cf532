package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInput(t *testing.T) {
	in, ok := ParseInput("p1", []byte(`{"type":"turn","command":"right","seq":7}`))
	assert.True(t, ok)
	assert.Equal(t, Input{PlayerID: "p1", TurnRight: true, Seq: 7}, in)

	in, ok = ParseInput("p1", []byte(`{"type":"TURN","command":"Left"}`))
	assert.True(t, ok)
	assert.False(t, in.TurnRight)

	for _, payload := range []string{
		`{"type":"move","command":"up"}`,
		`{"type":"turn","command":"up"}`,
		`not json`,
	} {
		_, ok := ParseInput("p1", []byte(payload))
		assert.False(t, ok, payload)
	}
}

func TestCodecByName(t *testing.T) {
	c, err := CodecByName("")
	assert.NoError(t, err)
	assert.Equal(t, "json", c.Name())

	c, err = CodecByName("msgpack")
	assert.NoError(t, err)
	assert.Equal(t, "msgpack", c.Name())
	assert.NotEqual(t, JSONCodec.MessageType(), c.MessageType())

	_, err = CodecByName("xml")
	assert.Error(t, err)
}
