package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAppBuildInfo(t *testing.T) {
	info := NewAppBuildInfo("1.2.0", "", "abc123")

	assert.Equal(t, "1.2.0", info.BuildVersion())
	assert.Equal(t, BuildInfoNotAvailable, info.BuildDate())
	assert.Equal(t, "abc123", info.BuildCommit())
	assert.Equal(t, "Build version: 1.2.0\nBuild date: N/A\nBuild commit: abc123\n", info.String())
}

func TestNewAppBuildInfo_Empty(t *testing.T) {
	info := NewAppBuildInfo("", "", "")

	assert.Equal(t, BuildInfoNotAvailable, info.BuildVersion())
	assert.Equal(t, BuildInfoNotAvailable, info.BuildCommit())
}
