package attachment_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heraldmail/herald/pkg/attachment"
)

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestBuild_KindInference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		filename    string
		wantKind    attachment.Kind
		wantTypeSub string
	}{
		{"report.txt", attachment.KindText, "text/plain"},
		{"logo.png", attachment.KindImage, "image/png"},
		{"photo.jpg", attachment.KindImage, "image/jpeg"},
		{"jingle.mp3", attachment.KindAudio, "audio/mpeg"},
		{"contract.pdf", attachment.KindBinary, "application/pdf"},
		{"data.bin", attachment.KindBinary, "application/octet-stream"},
		{"noextension", attachment.KindBinary, "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, tt.filename, []byte("payload"))
			part, err := attachment.Build(path, 0)
			require.NoError(t, err)

			assert.Equal(t, tt.wantKind, part.Kind)
			assert.Equal(t, tt.wantTypeSub, part.ContentType)
			assert.Equal(t, tt.filename, part.Filename)
		})
	}
}

func TestBuild_Disposition(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "quarterly report.pdf", []byte("%PDF"))
	part, err := attachment.Build(path, 0)
	require.NoError(t, err)
	assert.Equal(t, `attachment; filename="quarterly report.pdf"`, part.Disposition())
}

func TestBuild_TextInvalidUTF8Replaced(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "notes.txt", []byte("ok\xffbad"))
	part, err := attachment.Build(path, 0)
	require.NoError(t, err)
	assert.Equal(t, "ok�bad", string(part.Content))
}

func TestBuild_TooLarge(t *testing.T) {
	t.Parallel()

	// 3 MB payload against a 2 MB limit.
	path := writeFile(t, "big.bin", make([]byte, 3*1024*1024))
	_, err := attachment.Build(path, 2*1024*1024)
	require.ErrorIs(t, err, attachment.ErrTooLarge)
	assert.Contains(t, err.Error(), "3.0MB")
	assert.Contains(t, err.Error(), "max: 2MB")
}

func TestBuild_NotFound(t *testing.T) {
	t.Parallel()

	_, err := attachment.Build(filepath.Join(t.TempDir(), "missing.pdf"), 0)
	require.ErrorIs(t, err, attachment.ErrNotFound)
}

func TestBuild_Directory(t *testing.T) {
	t.Parallel()

	_, err := attachment.Build(t.TempDir(), 0)
	require.ErrorIs(t, err, attachment.ErrNotAFile)
}

func TestBuildAll_PreservesOrderAndFailsFast(t *testing.T) {
	t.Parallel()

	a := writeFile(t, "a.txt", []byte("a"))
	b := writeFile(t, "b.png", []byte("b"))

	parts, err := attachment.BuildAll([]string{a, b}, 0)
	require.NoError(t, err)
	require.Len(t, parts, 2)
	assert.Equal(t, "a.txt", parts[0].Filename)
	assert.Equal(t, "b.png", parts[1].Filename)

	_, err = attachment.BuildAll([]string{a, filepath.Join(t.TempDir(), "nope")}, 0)
	require.ErrorIs(t, err, attachment.ErrNotFound)
}
