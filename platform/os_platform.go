package platform

import (
	"os"

	"github.com/drawgrid/imageloader-common/utils"
	log "github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// OSPlatform implements Platform interface for hosts with a real filesystem.
// The app directory is placed under the user cache directory of the OS.
// implements interfaces defined in interface.go
type OSPlatform struct {
	applicationName string
	appDirectory    string
}

// NewOSPlatform creates Platform using OSPlatform
func NewOSPlatform(applicationName string) (Platform, error) {
	logger := log.WithFields(log.Fields{
		"package":  "platform",
		"function": "NewOSPlatform",
	})

	defer utils.StackTraceFromPanic(logger)

	if len(applicationName) == 0 {
		return nil, xerrors.Errorf("application name is not given")
	}

	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		return nil, xerrors.Errorf("failed to get user cache dir: %w", err)
	}

	return &OSPlatform{
		applicationName: applicationName,
		appDirectory:    utils.JoinPath(userCacheDir, applicationName),
	}, nil
}

// GetApplicationName returns application name
func (platform *OSPlatform) GetApplicationName() string {
	return platform.applicationName
}

// HasFilesystem returns true as the host has a real filesystem
func (platform *OSPlatform) HasFilesystem() bool {
	return true
}

// GetAppDirectory returns the directory for app data
func (platform *OSPlatform) GetAppDirectory() (string, error) {
	return platform.appDirectory, nil
}

// Release releases resources
func (platform *OSPlatform) Release() {
}
