package handlers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoredFilename(t *testing.T) {
	t.Run("accepts allowlisted extensions, lowercased", func(t *testing.T) {
		for _, original := range []string{"a.png", "b.jpg", "c.JPEG", "d.gif", "e.WEBP"} {
			name, ok := storedFilename(original)
			require.True(t, ok, original)
			ext := name[strings.LastIndex(name, ".")+1:]
			assert.Equal(t, strings.ToLower(ext), ext)
			assert.Len(t, name, 32+1+len(ext), "uuid hex prefix expected")
		}
	})

	t.Run("rejects everything else", func(t *testing.T) {
		for _, original := range []string{"malware.exe", "page.html", "noextension", ".png."} {
			_, ok := storedFilename(original)
			assert.False(t, ok, original)
		}
	})

	t.Run("never reuses the client filename", func(t *testing.T) {
		first, ok := storedFilename("photo.png")
		require.True(t, ok)
		second, ok := storedFilename("photo.png")
		require.True(t, ok)
		assert.NotEqual(t, first, second)
		assert.NotContains(t, first, "photo")
	})
}
