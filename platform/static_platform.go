package platform

import (
	"golang.org/x/xerrors"
)

// StaticPlatform implements Platform interface with a fixed app directory,
// useful for tests
// implements interfaces defined in interface.go
type StaticPlatform struct {
	appDirectory string
}

// NewStaticPlatform creates Platform using StaticPlatform
func NewStaticPlatform(appDirectory string) (Platform, error) {
	if len(appDirectory) == 0 {
		return nil, xerrors.Errorf("app directory is not given")
	}

	return &StaticPlatform{
		appDirectory: appDirectory,
	}, nil
}

// GetApplicationName returns application name
func (platform *StaticPlatform) GetApplicationName() string {
	return "static"
}

// HasFilesystem returns true as the host has a real filesystem
func (platform *StaticPlatform) HasFilesystem() bool {
	return true
}

// GetAppDirectory returns the directory for app data
func (platform *StaticPlatform) GetAppDirectory() (string, error) {
	return platform.appDirectory, nil
}

// Release releases resources
func (platform *StaticPlatform) Release() {
}
