package server

import (
	"net"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/momentics/hioload-httpd/api"
	"github.com/momentics/hioload-httpd/control"
)

// Config holds all server-side configuration parameters.
type Config struct {
	ListenAddr      string        // TCP bind address, e.g. ":8080"
	CoreWorkers     int           // worker pool core size
	MaxWorkers      int           // worker pool ceiling under load
	QueueCapacity   int           // bounded admission queue capacity
	IOTimeout       time.Duration // per-connection read/write deadline
	AcceptTimeout   time.Duration // accept deadline, bounds the running-flag check
	SessionTimeout  time.Duration // session idle timeout
	SweepInterval   time.Duration // session expiry sweep period
	ShutdownTimeout time.Duration // grace for in-flight tasks at Stop
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:      ":8080",
		CoreWorkers:     10,
		MaxWorkers:      50,
		QueueCapacity:   100,
		IOTimeout:       30 * time.Second,
		AcceptTimeout:   time.Second,
		SessionTimeout:  30 * time.Minute,
		SweepInterval:   5 * time.Minute,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Server is the facade owning the listening socket, the accept loop,
// and the worker pool executing connection tasks.
type Server struct {
	cfg      *Config
	logger   *zap.Logger
	handlers []api.Handler
	pool     api.Pool
	metrics  *control.Metrics

	mu       sync.Mutex
	ln       *net.TCPListener
	running  atomic.Bool
	accepted atomic.Uint64
	acceptWG sync.WaitGroup
}
