// Package homedir locates the user's home directory and the default
// config file path derived from it.
package homedir

import (
	"os"
	"os/user"
	"path/filepath"
)

// Get returns the user's home directory, preferring $HOME.
func Get() string {
	h := os.Getenv("HOME")
	if h != "" {
		return h
	}

	usr, err := user.Current()
	if err != nil {
		panic(err)
	}
	return usr.HomeDir
}

// ConfigPath returns the default location of the config file.
func ConfigPath() string {
	return filepath.Join(Get(), ".tempmail.yaml")
}
