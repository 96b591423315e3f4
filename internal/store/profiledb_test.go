package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestEmptyResult(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"no rows", pgx.ErrNoRows, true},
		{"wrapped no rows", fmt.Errorf("latest: %w", pgx.ErrNoRows), true},
		{"connection failure", errors.New("connection refused"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := emptyResult(tt.err); got != tt.want {
				t.Errorf("emptyResult(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
