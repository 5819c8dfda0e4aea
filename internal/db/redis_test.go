package db_test

import (
	"context"
	"strings"
	"testing"

	"github.com/atinyakov/accountkeeper/internal/db"
)

func TestNewRedis_ErrorPaths(t *testing.T) {
	cases := []struct {
		name       string
		url        string
		wantSubstr string
	}{
		{"bad scheme", "http://localhost:6379", "parse redis url"},
		{"unreachable", "redis://127.0.0.1:1/0", "failed to connect to redis"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := db.NewRedis(context.Background(), tc.url)
			if err == nil {
				t.Fatalf("NewRedis(%q) did not return error", tc.url)
			}
			if !strings.Contains(err.Error(), tc.wantSubstr) {
				t.Errorf("NewRedis(%q) error = %q; want substring %q", tc.url, err.Error(), tc.wantSubstr)
			}
		})
	}
}
