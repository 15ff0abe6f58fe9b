package middleware

import (
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// maxDrainBytes bounds how much of an unread body is discarded; past that the
// connection is not worth keeping.
const maxDrainBytes = 256 << 10

// DrainAndCloseRequest discards up to maxDrainBytes of whatever body the handler
// left unread, then closes it.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body == nil || r.Body == http.NoBody {
				return
			}
			if _, err := io.CopyN(io.Discard, r.Body, maxDrainBytes); err != nil && err != io.EOF {
				log.Tracef("drain request body %s %s: %s", r.Method, r.URL.Path, err)
			}
			_ = r.Body.Close()
		})
	}
}
