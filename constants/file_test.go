package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtensions(t *testing.T) {
	assert.Equal(t, "jpg", NormalizeExt(".JPG"))
	assert.True(t, IsAllowedExt(".PNG"))
	assert.True(t, IsAllowedExt("heic"))
	assert.False(t, IsAllowedExt(".pdf"))
	assert.True(t, IsHEICExt(".HEIF"))
	assert.False(t, IsHEICExt("png"))
}
