package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeedsWebPConversion(t *testing.T) {
	for _, p := range []string{"a.jpg", "a.JPEG", "a.png", "a.gif"} {
		assert.True(t, NeedsWebPConversion(p), p)
	}
	for _, p := range []string{"a.webp", "a.svg", "a.avif", "a"} {
		assert.False(t, NeedsWebPConversion(p), p)
	}
}

func TestConvertImageToWebP_Passthrough(t *testing.T) {
	path, cleanup, err := ConvertImageToWebP("/tmp/already.webp", 75)
	require.NoError(t, err)
	require.NotNil(t, cleanup)
	cleanup()
	assert.Equal(t, "/tmp/already.webp", path)
}
