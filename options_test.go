package yadbf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDecoderDefaults(t *testing.T) {
	d, err := NewDecoder(nil)
	require.NoError(t, err)
	require.Equal(t, 0, d.opts.Offset)
	require.Equal(t, SizeUnbounded, d.opts.Size)
	require.Equal(t, DefaultEncoding, d.opts.Encoding)
	require.False(t, d.opts.IncludeDeleted)
}

func TestNewDecoderEmptyEncodingDefaults(t *testing.T) {
	d, err := NewDecoder(&Options{Size: SizeUnbounded})
	require.NoError(t, err)
	require.Equal(t, DefaultEncoding, d.opts.Encoding)
}

func TestNewDecoderAlternateEncoding(t *testing.T) {
	_, err := NewDecoder(&Options{Size: SizeUnbounded, Encoding: "gbk"})
	require.NoError(t, err)
}

func TestNewDecoderRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"negative offset", Options{Offset: -1, Size: SizeUnbounded}},
		{"negative size", Options{Size: -2}},
		{"unknown encoding", Options{Size: SizeUnbounded, Encoding: "no-such-charset"}},
		{"nil field parser", Options{Size: SizeUnbounded, FieldParsers: map[string]FieldParser{"F": nil}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDecoder(&tt.opts)
			require.ErrorIs(t, err, ErrInvalidOption)
		})
	}
}
