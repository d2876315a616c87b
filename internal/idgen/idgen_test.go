package idgen

import (
	"bytes"
	"errors"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var base62 = regexp.MustCompile(`^[0-9A-Za-z]+$`)

func TestRandom_ShortCodeShape(t *testing.T) {
	g := NewRandom()
	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		code, err := g.NewShortCode()
		require.NoError(t, err)
		require.Len(t, code, DefaultCodeLength)
		require.Regexp(t, base62, code)
		seen[code] = struct{}{}
	}
	require.Greater(t, len(seen), 190)
}

func TestRandom_CustomLength(t *testing.T) {
	code, err := Random{CodeLength: 12}.NewShortCode()
	require.NoError(t, err)
	require.Len(t, code, 12)
}

func TestRandom_RejectsBiasedBytes(t *testing.T) {
	// 0xFF is above maxByte and must be skipped; 0x00 maps to '0', 0x3D to 'z'.
	src := bytes.NewReader([]byte{0xFF, 0x00, 0x3D, 0xFF, 0xFF, 0xFF})
	code, err := Random{CodeLength: 2, Source: src}.NewShortCode()
	require.NoError(t, err)
	require.Equal(t, "0z", code)
}

func TestRandom_NewIDIsUUID(t *testing.T) {
	id, err := NewRandom().NewID()
	require.NoError(t, err)
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	require.Equal(t, uuid.Version(4), parsed.Version())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestRandom_SourceErrors(t *testing.T) {
	g := Random{Source: failingReader{}}
	_, err := g.NewShortCode()
	require.Error(t, err)
	_, err = g.NewID()
	require.Error(t, err)
}
