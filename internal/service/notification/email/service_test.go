package email

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAuthError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"auth keyword", errors.New("535 5.7.8 Username and Password not accepted"), true},
		{"authentication", errors.New("smtp: authentication failed"), true},
		{"plain transport", errors.New("dial tcp: connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isAuthError(tt.err))
		})
	}
}
