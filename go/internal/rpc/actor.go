package rpc

import (
	"net/http"
	"strconv"
	"strings"
)

const ActorHeader = "X-Actor-Id"

// ActorResolver reads the acting user from request headers. Requests without a
// usable header are attributed to Default.
type ActorResolver struct {
	Default int64
}

func (r ActorResolver) Resolve(h http.Header) int64 {
	raw := strings.TrimSpace(h.Get(ActorHeader))
	if raw == "" {
		return r.Default
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return r.Default
	}
	return id
}
