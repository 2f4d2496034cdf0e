package clientip

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "192.0.2.10:54321"
	assert.Equal(t, "192.0.2.10", FromRequest(r))

	r.Header.Set("X-Real-IP", "198.51.100.4")
	assert.Equal(t, "198.51.100.4", FromRequest(r))

	// The first forwarded entry wins over everything else.
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 198.51.100.4")
	assert.Equal(t, "203.0.113.7", FromRequest(r))
}

func TestFromRequest_BareRemoteAddr(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "192.0.2.10"
	assert.Equal(t, "192.0.2.10", FromRequest(r))
}
