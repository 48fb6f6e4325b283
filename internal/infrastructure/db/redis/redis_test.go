package redis

import (
	"context"
	"testing"
	"time"
)

func TestConnect_Unreachable(t *testing.T) {
	_, err := Connect(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 100 * time.Millisecond})
	if err == nil {
		t.Fatal("expected an error for an unreachable server")
	}
}
