package upload

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsAllowedExtensions(t *testing.T) {
	for _, name := range []string{"photo.jpg", "photo.PNG", "trail cam.webp", "a.b.tiff"} {
		safe, verr := Validate(name)
		require.Nil(t, verr, "expected %q to validate", name)
		require.NotEmpty(t, safe)
	}
}

func TestValidateEmptyFilename(t *testing.T) {
	_, verr := Validate("")
	require.NotNil(t, verr)
	require.Equal(t, EmptyFilename, verr.Kind)
}

func TestValidateRejectsUnsupportedExtension(t *testing.T) {
	for _, name := range []string{"photo.EXE", "notes.txt", "archive.tar.gz", "noextension"} {
		_, verr := Validate(name)
		require.NotNil(t, verr, "expected %q to be rejected", name)
		require.Equal(t, UnsupportedExtension, verr.Kind)
	}
	_, verr := Validate("photo.EXE")
	require.Equal(t, "photo.EXE", verr.Filename)
}

func TestSafeNameStripsDirectoriesAndUnsafeChars(t *testing.T) {
	require.Equal(t, "passwd.png", SafeName("../../etc/passwd.png"))
	require.Equal(t, "shot.jpg", SafeName(`C:\Users\me\shot.jpg`))
	require.Equal(t, "my_photo.jpg", SafeName("my photo.jpg"))
	require.Equal(t, "hidden.png", SafeName(".hidden.png"))
}

func TestStoreSaveAndRemove(t *testing.T) {
	st, err := NewStore(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)

	path, err := st.Save(strings.NewReader("not really a jpeg"), "photo.jpg")
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "not really a jpeg", string(data))

	st.Remove(path)
	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))

	// Removing again must stay silent.
	st.Remove(path)
}

func TestStoreSameNameOverwrites(t *testing.T) {
	st, err := NewStore(t.TempDir())
	require.NoError(t, err)

	first, err := st.Save(strings.NewReader("first"), "photo.jpg")
	require.NoError(t, err)
	second, err := st.Save(strings.NewReader("second"), "photo.jpg")
	require.NoError(t, err)
	require.Equal(t, first, second)

	data, err := os.ReadFile(second)
	require.NoError(t, err)
	require.Equal(t, "second", string(data))
}
