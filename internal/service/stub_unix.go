//go:build !windows
// +build !windows

package service

// Service-manager stubs for non-Windows platforms. The binary still runs as
// a plain foreground process here.

// RunService runs the application directly
func RunService(isDebug bool, app *Application) {
	app.Run()
}

// InstallService is a no-op outside Windows
func InstallService(exePath string) error {
	return nil
}

// UninstallService is a no-op outside Windows
func UninstallService() error {
	return nil
}

// StartService is a no-op outside Windows
func StartService() error {
	return nil
}

// StopService is a no-op outside Windows
func StopService() error {
	return nil
}

// IsWindowsService always reports false outside Windows
func IsWindowsService() (bool, error) {
	return false, nil
}
