package handler

import "net/http"

// SSEHandler runs for the lifetime of a Server-Sent Events connection. The
// connection is closed when it returns or the client disconnects.
//
//	handler.SSE(func(stream handler.StreamContext) error {
//		ticker := time.NewTicker(time.Second)
//		defer ticker.Stop()
//
//		for {
//			select {
//			case <-stream.Done():
//				return nil
//			case <-ticker.C:
//				if err := stream.SendSignals(map[string]any{"size": c.Len()}); err != nil {
//					return err
//				}
//			}
//		}
//	})
type SSEHandler func(ctx StreamContext) error

type sseResponse struct {
	handler SSEHandler
}

// Render validates the DataStar connection and executes the SSE handler.
func (s sseResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		return NewHTTPError(http.StatusNotAcceptable, "sse_requires_event_stream")
	}

	base := NewContext(w, r)
	sse := base.SSE()
	if sse == nil {
		return ErrSSENotInitialized
	}

	return s.handler(&streamContext{Context: base, sse: sse})
}

// SSE creates a response that streams DataStar signal patches to the client.
func SSE(handler SSEHandler) Response {
	return sseResponse{handler: handler}
}
