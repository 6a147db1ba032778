package pipeline

import "net/http"

// Stage is one step of the request pipeline. It has three outcomes:
//   - forward: return a non-nil request (possibly derived from r) and nil;
//   - respond: write the response and return nil, nil;
//   - fail: return a non-nil error; the dispatcher writes the response.
type Stage func(w http.ResponseWriter, r *http.Request) (*http.Request, error)

// HandlerFunc is a route handler that reports failure by returning an error
// instead of writing an error response itself.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle adapts h to an [http.HandlerFunc] so it can be mounted on any
// router. A returned error is recorded in the request's RequestContext and
// normalized by the dispatcher after the route tree returns.
func Handle(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			FromRequest(r).Fail(err)
		}
	}
}

// Middleware turns a Stage into a conventional net/http middleware. Errors
// are recorded like route handler errors.
func Middleware(stage Stage) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			forwarded, err := stage(w, r)
			if err != nil {
				FromRequest(r).Fail(err)
				return
			}
			if forwarded != nil {
				next.ServeHTTP(w, forwarded)
			}
		})
	}
}
