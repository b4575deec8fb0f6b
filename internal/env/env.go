package env

import (
	"os"
	"path/filepath"
	"runtime"
)

// BuildTypeVar names the environment variable carrying the build profile.
const BuildTypeVar = "VKBUILD_BUILD_TYPE"

// DefaultBuildType is used when BuildTypeVar is unset.
const DefaultBuildType = "Release"

func WorkDir() (string, error) {
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userCacheDir, ".vkbuild"), nil
}

// BuildType returns the build profile exactly as the environment spells it.
func BuildType() string {
	if bt, ok := os.LookupEnv(BuildTypeVar); ok && bt != "" {
		return bt
	}
	return DefaultBuildType
}

// HostOS returns the host operating system in conan's settings vocabulary.
func HostOS() string {
	switch runtime.GOOS {
	case "windows":
		return "Windows"
	case "darwin":
		return "Macos"
	case "linux":
		return "Linux"
	case "freebsd":
		return "FreeBSD"
	}
	return runtime.GOOS
}

// HostArch returns the host architecture in conan's settings vocabulary.
func HostArch() string {
	switch runtime.GOARCH {
	case "amd64":
		return "x86_64"
	case "386":
		return "x86"
	case "arm64":
		return "armv8"
	case "arm":
		return "armv7"
	}
	return runtime.GOARCH
}
