package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveToken(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
		header string
		want   string
	}{
		{name: "cookie only", cookie: "cookie-token", want: "cookie-token"},
		{name: "header only", header: "Bearer header-token", want: "header-token"},
		{name: "cookie wins over header", cookie: "cookie-token", header: "Bearer header-token", want: "cookie-token"},
		{name: "lowercase bearer scheme", header: "bearer header-token", want: "header-token"},
		{name: "wrong scheme", header: "Basic abc123", want: ""},
		{name: "bare token header", header: "header-token", want: ""},
		{name: "empty everything", want: ""},
		{name: "empty cookie falls back to header", cookie: "", header: "Bearer header-token", want: "header-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveToken(tt.cookie, tt.header))
		})
	}
}
