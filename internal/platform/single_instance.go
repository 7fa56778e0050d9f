package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"sync"
	"time"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

// InstanceGuard holds the single-instance lock. While held it accepts
// connections from later launches and reports each one as an activation, so
// the running instance can bring its window forward.
type InstanceGuard struct {
	listener net.Listener
	address  string

	mu         sync.Mutex
	onActivate func()
	done       chan struct{}
}

// AcquireSingleInstance attempts to bind a deterministic localhost port.
// When another instance holds it, that instance is poked to activate and
// ErrAlreadyRunning is returned.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	address := fmt.Sprintf("127.0.0.1:%d", portFromName(appName))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		if conn, dialErr := net.DialTimeout("tcp", address, 500*time.Millisecond); dialErr == nil {
			_ = conn.Close()
		}
		return nil, fmt.Errorf("%w on %s", ErrAlreadyRunning, address)
	}

	guard := &InstanceGuard{listener: listener, address: address, done: make(chan struct{})}
	go guard.acceptLoop()
	return guard, nil
}

// OnActivate sets the callback run when another launch is attempted.
func (guard *InstanceGuard) OnActivate(callback func()) {
	guard.mu.Lock()
	guard.onActivate = callback
	guard.mu.Unlock()
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	err := guard.listener.Close()
	<-guard.done
	return err
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

func (guard *InstanceGuard) acceptLoop() {
	defer close(guard.done)
	for {
		conn, err := guard.listener.Accept()
		if err != nil {
			return
		}
		_ = conn.Close()

		guard.mu.Lock()
		callback := guard.onActivate
		guard.mu.Unlock()
		if callback != nil {
			callback()
		}
	}
}

func portFromName(appName string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}
