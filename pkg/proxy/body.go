package proxy

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrBodyAborted means the body could not be read for a reason other than
// its size, usually because the client disconnected.
var ErrBodyAborted = errors.New("request body aborted")

// ReadBody reads the whole request body up to limit bytes. A body of
// exactly limit bytes is accepted. A larger body fails with a 413
// RequestError as soon as the limit is crossed; the rest is never read and
// the server closes the connection. Any other read failure is returned
// wrapping ErrBodyAborted.
func ReadBody(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, error) {
	if r.ContentLength > limit {
		// The body is never read, so keep net/http from draining it.
		w.Header().Set("Connection", "close")
		return nil, &RequestError{Status: http.StatusRequestEntityTooLarge, Message: MsgRequestTooLarge}
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, &RequestError{Status: http.StatusRequestEntityTooLarge, Message: MsgRequestTooLarge}
		}
		return nil, fmt.Errorf("%w: %v", ErrBodyAborted, err)
	}
	return data, nil
}
