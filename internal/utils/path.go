//*****************************************************************************
// Copyright 2025 Intel Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//*****************************************************************************

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// GetUserDataDir returns the per-user application data directory.
func GetUserDataDir() (string, error) {
	var dir string
	switch sys := runtime.GOOS; sys {
	case "darwin":
		dir = filepath.Join(os.Getenv("HOME"), "Library", "Application Support")
	case "windows":
		dir = filepath.Join(os.Getenv("APPDATA"))
	case "linux":
		xdgDataHome := os.Getenv("XDG_DATA_HOME")
		if xdgDataHome != "" {
			dir = xdgDataHome
		} else {
			dir = filepath.Join(os.Getenv("HOME"), ".local", "share")
		}
	default:
		return "", fmt.Errorf("unsupported operating system")
	}

	return dir, nil
}

// GetDataDir returns the directory holding the datastore, the model folder
// and the logs. MODELQ_ROOT overrides the platform default.
func GetDataDir() (string, error) {
	if root := os.Getenv("MODELQ_ROOT"); root != "" {
		if err := os.MkdirAll(root, 0o750); err != nil {
			return "", fmt.Errorf("failed to create directory %s: %v", root, err)
		}
		return root, nil
	}

	var dir string
	switch runtime.GOOS {
	case "linux":
		dir = "/var/lib/modelq"
	default:
		userDir, err := GetUserDataDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(userDir, "ModelQ")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %v", dir, err)
	}
	return dir, nil
}

// GetAbsolutePath Convert relative path to absolute path from the passed in base directory
// No change if the passed in path is already an absolute path
func GetAbsolutePath(p string, base string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Clean(filepath.Join(base, p))
}
