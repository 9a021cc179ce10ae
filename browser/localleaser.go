package browser

import (
	"strconv"
	"sync"

	"github.com/pkg/errors"
	"github.com/wirepair/gcd"
)

var startupFlags = []string{
	"--enable-automation",
	"--test-type",
	"--disable-client-side-phishing-detection",
	"--disable-component-update",
	"--disable-infobars",
	"--disable-sync",
	"--disable-background-networking",
	"--disable-default-apps",
	"--disable-popup-blocking",
	"--disable-extensions",
	"--disable-features=TranslateUI",
	"--disable-gpu",
	"--disable-dev-shm-usage",
	"--no-sandbox",
	"--no-first-run",
	"--window-size=1024,768",
	"--password-store=basic",
	"--headless",
	"about:blank",
}

// LocalLeaser starts chrome processes on this host
type LocalLeaser struct {
	browserLock sync.RWMutex
	browsers    map[string]*gcd.Gcd
	chrome      string
	tmp         string
	flags       []string
}

// NewLocalLeaser uses FindChrome for the binary and profile location
func NewLocalLeaser() *LocalLeaser {
	chrome, tmp := FindChrome()
	return NewLocalLeaserWithPath(chrome, tmp)
}

// NewLocalLeaserWithPath for a chrome binary FindChrome does not know about
func NewLocalLeaserWithPath(chrome, tmp string) *LocalLeaser {
	return &LocalLeaser{
		browsers: make(map[string]*gcd.Gcd),
		chrome:   chrome,
		tmp:      tmp,
		flags:    startupFlags,
	}
}

// SetFlags replaces the chrome startup flags
func (s *LocalLeaser) SetFlags(flags []string) {
	s.flags = flags
}

// Acquire starts a new chrome and returns its debugger port
func (s *LocalLeaser) Acquire() (string, error) {
	profileDir, err := newProfile(s.tmp)
	if err != nil {
		return "", err
	}
	port, err := freePort()
	if err != nil {
		return "", err
	}

	b := gcd.NewChromeDebugger()
	b.DeleteProfileOnExit()
	b.AddFlags(s.flags)
	if err := b.StartProcess(s.chrome, profileDir, port); err != nil {
		return "", errors.Wrap(err, "starting chrome")
	}
	s.browserLock.Lock()
	s.browsers[port] = b
	s.browserLock.Unlock()

	return port, nil
}

// Count of running browsers
func (s *LocalLeaser) Count() (string, error) {
	s.browserLock.RLock()
	count := len(s.browsers)
	s.browserLock.RUnlock()
	return strconv.Itoa(count), nil
}

// Return stops the browser listening on port
func (s *LocalLeaser) Return(port string) error {
	s.browserLock.Lock()
	defer s.browserLock.Unlock()

	if b, ok := s.browsers[port]; ok {
		if err := b.ExitProcess(); err != nil {
			return err
		}
		delete(s.browsers, port)
		return nil
	}

	return errors.New("not found")
}

// Cleanup stops every leased browser and removes their profiles
func (s *LocalLeaser) Cleanup() (string, error) {
	s.browserLock.Lock()
	for port, b := range s.browsers {
		if err := b.ExitProcess(); err != nil {
			s.browserLock.Unlock()
			return "", err
		}
		delete(s.browsers, port)
	}
	s.browserLock.Unlock()

	if err := RemoveTmpContents(s.tmp); err != nil {
		return "", err
	}
	return "ok", nil
}
