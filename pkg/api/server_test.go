package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ssargent/bitspect/pkg/config"
	"github.com/ssargent/bitspect/pkg/logging"
)

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to find free port: %v", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestStartServer(t *testing.T) {
	port := freePort(t)
	serverConfig := ServerConfig{
		Bind:          "127.0.0.1",
		Port:          port,
		MaxBodyBytes:  1024,
		MaxInputBytes: 1024,
		CORSOrigins:   []string{"*"},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- NewServerFactory().CreateServerStarter().StartServer(ctx, serverConfig, logging.Discard())
	}()

	url := fmt.Sprintf("http://127.0.0.1:%d/api/v1/health", port)
	var resp *http.Response
	var err error
	for i := 0; i < 50; i++ {
		resp, err = http.Get(url)
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		cancel()
		t.Fatalf("Server did not come up: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Server did not shut down")
	}
}

func TestStartServer_PortInUse(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}
	defer l.Close()

	serverConfig := ServerConfig{
		Bind:         "127.0.0.1",
		Port:         l.Addr().(*net.TCPAddr).Port,
		MaxBodyBytes: 1024,
	}

	err = StartServer(context.Background(), serverConfig, logging.Discard())
	if err == nil {
		t.Fatal("Expected error for port in use")
	}
	if errors.Is(err, http.ErrServerClosed) {
		t.Errorf("Unexpected ErrServerClosed: %v", err)
	}
}

func TestNewServerConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.Port = 9300
	cfg.Decode.MaxInputBytes = 2048

	serverConfig := NewServerConfig(cfg)

	if serverConfig.Port != 9300 {
		t.Errorf("Expected port 9300, got %d", serverConfig.Port)
	}
	if serverConfig.MaxInputBytes != 2048 {
		t.Errorf("Expected max input 2048, got %d", serverConfig.MaxInputBytes)
	}
	if serverConfig.MaxBodyBytes != cfg.Server.MaxBodyBytes {
		t.Errorf("Expected max body %d, got %d", cfg.Server.MaxBodyBytes, serverConfig.MaxBodyBytes)
	}
}

func TestNewMetrics_SeparateRegistries(t *testing.T) {
	// Registering twice on one registry would panic; separate registries must not.
	NewMetrics(prometheus.NewRegistry())
	NewMetrics(prometheus.NewRegistry())
}
