package browser

import (
	"net"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// profilePrefix of every profile directory a LocalLeaser creates under its tmp root
const profilePrefix = "gcd"

// LeaserService hands out debugger ports of running browsers
type LeaserService interface {
	Acquire() (string, error) // returns port number
	Return(port string) error
	Cleanup() (string, error)
	Count() (string, error)
}

// freePort asks the kernel for an unused tcp port
func freePort() (string, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", errors.Wrap(err, "no free debugger port")
	}
	defer l.Close()
	_, port, err := net.SplitHostPort(l.Addr().String())
	return port, err
}

// newProfile creates a fresh profile directory below root
func newProfile(root string) (string, error) {
	if root == "" {
		return "", errors.New("no profile root configured")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", errors.Wrap(err, "creating profile root")
	}
	dir, err := os.MkdirTemp(root, profilePrefix)
	if err != nil {
		return "", errors.Wrap(err, "creating profile")
	}
	return dir, nil
}

// RemoveTmpContents deletes the profiles created below root, anything else is left alone
func RemoveTmpContents(root string) error {
	if root == "" {
		return nil
	}
	profiles, err := filepath.Glob(filepath.Join(root, profilePrefix+"*"))
	if err != nil {
		return err
	}
	for _, profile := range profiles {
		if err := os.RemoveAll(profile); err != nil {
			return errors.Wrapf(err, "removing profile %s", profile)
		}
	}
	return nil
}
