package platform

import (
	"fmt"
)

// NilPlatform implements Platform interface for hosts without a usable
// filesystem, e.g. browser targets
// implements interfaces defined in interface.go
type NilPlatform struct {
}

// NewNilPlatform creates Platform using NilPlatform
func NewNilPlatform() Platform {
	return &NilPlatform{}
}

// GetApplicationName returns application name
func (platform *NilPlatform) GetApplicationName() string {
	return "nil"
}

// HasFilesystem returns false as the host has no usable filesystem
func (platform *NilPlatform) HasFilesystem() bool {
	return false
}

// GetAppDirectory returns an error as there is no filesystem
func (platform *NilPlatform) GetAppDirectory() (string, error) {
	return "", fmt.Errorf("failed to get app directory using NilPlatform")
}

// Release releases resources
func (platform *NilPlatform) Release() {
}
