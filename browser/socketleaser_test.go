package browser_test

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"gitlab.com/driverhelpers/browser"
)

type fakeLeaser struct {
	mu       sync.Mutex
	next     int
	browsers map[string]bool
}

func (l *fakeLeaser) Acquire() (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.next++
	port := strconv.Itoa(9000 + l.next)
	l.browsers[port] = true
	return port, nil
}

func (l *fakeLeaser) Return(port string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.browsers[port] {
		return errors.New("not found")
	}
	delete(l.browsers, port)
	return nil
}

func (l *fakeLeaser) Cleanup() (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.browsers = make(map[string]bool)
	return "ok", nil
}

func (l *fakeLeaser) Count() (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return strconv.Itoa(len(l.browsers)), nil
}

func TestSocketLeaser(t *testing.T) {
	dir, err := os.MkdirTemp("", "leaser")
	if err != nil {
		t.Fatalf("error creating socket dir: %s\n", err)
	}
	defer os.RemoveAll(dir)
	sock := filepath.Join(dir, browser.DefaultSocket)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() {
		errCh <- browser.ServeLeaser(ctx, sock, &fakeLeaser{browsers: make(map[string]bool)})
	}()

	client := browser.NewSocketLeaser(sock)
	var port string
	for i := 0; i < 50; i++ {
		if port, err = client.Acquire(); err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil || port != "9001" {
		t.Fatalf("expected port 9001 got %s (%v)\n", port, err)
	}

	if count, err := client.Count(); err != nil || count != "1" {
		t.Fatalf("expected 1 browser got %s (%v)\n", count, err)
	}
	if err := client.Return(port); err != nil {
		t.Fatalf("error returning browser: %s\n", err)
	}
	if err := client.Return(port); err == nil {
		t.Fatalf("returning twice should fail")
	}
	if resp, err := client.Cleanup(); err != nil || resp != "ok" {
		t.Fatalf("error cleaning up: %s (%v)\n", resp, err)
	}

	cancel()
	if err := <-errCh; err != nil {
		t.Fatalf("error serving: %s\n", err)
	}
}
