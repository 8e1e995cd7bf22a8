package session

import (
	"context"
	"testing"

	"google.golang.org/grpc/metadata"
)

func TestGetID(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
		want string
	}{
		{"empty", context.Background(), ""},
		{"metadata", metadata.NewIncomingContext(context.Background(), metadata.Pairs(Header, "s-1")), "s-1"},
		{"context value wins", WithID(metadata.NewIncomingContext(context.Background(), metadata.Pairs(Header, "s-1")), "s-2"), "s-2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetID(tt.ctx); got != tt.want {
				t.Errorf("GetID() = %q, want %q", got, tt.want)
			}
		})
	}
}
