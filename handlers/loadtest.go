// File: handlers/loadtest.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package handlers

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/momentics/hioload-httpd/protocol"
)

// LoadTest simulates a slow, CPU-bound request so the worker pool can
// be observed under load: a random sleep between MinDelay and MaxDelay
// followed by a spin of floating-point work.
type LoadTest struct {
	MinDelay time.Duration
	MaxDelay time.Duration
}

// NewLoadTest uses a 1-3s delay window.
func NewLoadTest() *LoadTest {
	return &LoadTest{MinDelay: time.Second, MaxDelay: 3 * time.Second}
}

func (h *LoadTest) CanHandle(req *protocol.Request) bool {
	return req.Method == "GET" && req.Path == "/load-test"
}

func (h *LoadTest) Handle(req *protocol.Request) (*protocol.Response, error) {
	start := time.Now()

	delay := h.MinDelay
	if h.MaxDelay > h.MinDelay {
		delay += time.Duration(rand.Int63n(int64(h.MaxDelay - h.MinDelay)))
	}
	time.Sleep(delay)

	sum := 0.0
	for i := 0; i < 1_000_000; i++ {
		sum += math.Sqrt(float64(i)) * math.Sin(float64(i))
	}

	elapsed := time.Since(start)
	resp := protocol.NewResponse()
	resp.SetHTMLBody(fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>Load Test Results</title></head>
<body>
<h1>Load Test Complete</h1>
<p>Processing time: %d ms</p>
<p>Checksum: %.2f</p>
<a href="/">Back to Home</a>
</body>
</html>
`, elapsed.Milliseconds(), sum))
	return resp, nil
}
