package authgate

import "net/http"

type httpRequest struct {
	r *http.Request
}

// NewHTTPRequest adapts a net/http request to the [Request] view consumed by
// strategies.
func NewHTTPRequest(r *http.Request) Request {
	return httpRequest{r: r}
}

// Header performs a case-insensitive header lookup.
func (h httpRequest) Header(name string) string {
	return h.r.Header.Get(name)
}

// Cookie returns the named cookie's value and whether it was present.
func (h httpRequest) Cookie(name string) (string, bool) {
	c, err := h.r.Cookie(name)
	if err != nil || c == nil {
		return "", false
	}
	return c.Value, true
}

// Path returns the request path.
func (h httpRequest) Path() string {
	return h.r.URL.Path
}
