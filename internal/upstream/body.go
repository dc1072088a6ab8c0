package upstream

import (
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxResponseBytes bounds how much of an upstream reply is buffered.
const maxResponseBytes = 16 << 20

// readResponse buffers at most limit bytes of resp.Body and closes it. Bodies
// the transport did not decompress itself are decoded here. Decoder setup
// failures and oversized bodies come back as *TransportError; plain read
// errors are returned as is so the caller can tell timeouts apart.
func readResponse(resp *http.Response, limit int64) ([]byte, error) {
	defer resp.Body.Close()

	var body io.Reader = resp.Body
	switch encoding := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))); encoding {
	case "gzip":
		gr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, &TransportError{Err: fmt.Errorf("decode gzip response: %w", err)}
		}
		defer gr.Close()
		body = gr
	case "deflate":
		zr, err := zlib.NewReader(resp.Body)
		if err != nil {
			return nil, &TransportError{Err: fmt.Errorf("decode deflate response: %w", err)}
		}
		defer zr.Close()
		body = zr
	}

	content, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(content)) > limit {
		return nil, &TransportError{Err: fmt.Errorf("response body exceeds %d bytes", limit)}
	}
	return content, nil
}
