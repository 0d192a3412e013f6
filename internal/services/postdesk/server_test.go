package postdesk

import (
	"context"
	"testing"
	"time"
)

func TestNewServerValidatesConfig(t *testing.T) {
	settings := DefaultSettings()
	tests := []struct {
		name   string
		config Config
	}{
		{name: "missing address", config: Config{Store: &fakeStore{}, Generator: &fakeGenerator{}, Settings: settings}},
		{name: "missing store", config: Config{HTTPAddr: "127.0.0.1:0", Generator: &fakeGenerator{}, Settings: settings}},
		{name: "missing generator", config: Config{HTTPAddr: "127.0.0.1:0", Store: &fakeStore{}, Settings: settings}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewServer(tt.config); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestServerStopsWithContext(t *testing.T) {
	server, err := NewServer(Config{
		HTTPAddr:  "127.0.0.1:0",
		Store:     &fakeStore{},
		Generator: &fakeGenerator{},
		Settings:  DefaultSettings(),
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.ListenAndServe(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("listen and serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestNilServerIsSafe(t *testing.T) {
	var server *Server
	server.Close()
	if err := server.ListenAndServe(context.Background()); err == nil {
		t.Fatal("expected error for nil server")
	}
}
