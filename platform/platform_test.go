package platform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlatform(t *testing.T) {
	t.Run("test OSPlatform", testOSPlatform)
	t.Run("test StaticPlatform", testStaticPlatform)
	t.Run("test NilPlatform", testNilPlatform)
}

func testOSPlatform(t *testing.T) {
	osPlatform, err := NewOSPlatform("imageloader-test")
	assert.NoError(t, err)
	defer osPlatform.Release()

	assert.Equal(t, "imageloader-test", osPlatform.GetApplicationName())
	assert.True(t, osPlatform.HasFilesystem())

	appDirectory, err := osPlatform.GetAppDirectory()
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(appDirectory, "imageloader-test"))

	// application name is required
	_, err = NewOSPlatform("")
	assert.Error(t, err)
}

func testStaticPlatform(t *testing.T) {
	tempDir := t.TempDir()

	staticPlatform, err := NewStaticPlatform(tempDir)
	assert.NoError(t, err)
	defer staticPlatform.Release()

	assert.True(t, staticPlatform.HasFilesystem())

	appDirectory, err := staticPlatform.GetAppDirectory()
	assert.NoError(t, err)
	assert.Equal(t, tempDir, appDirectory)

	_, err = NewStaticPlatform("")
	assert.Error(t, err)
}

func testNilPlatform(t *testing.T) {
	nilPlatform := NewNilPlatform()
	defer nilPlatform.Release()

	assert.False(t, nilPlatform.HasFilesystem())

	_, err := nilPlatform.GetAppDirectory()
	assert.Error(t, err)
}
