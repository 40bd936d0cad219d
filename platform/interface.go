package platform

type Platform interface {
	Release()

	GetApplicationName() string
	HasFilesystem() bool

	// API
	GetAppDirectory() (string, error)
}
