package api

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/andrevm/gemchat/internal/errors"
)

// dataMarker prefixes the data-bearing line of an event frame.
const dataMarker = "data:"

// frameDelimiter terminates one event frame.
var frameDelimiter = []byte("\n\n")

// StreamHandler receives the cumulative response text after each delta.
// The argument is always the full accumulated text so far, never the
// bare delta, so applying it is an idempotent set.
type StreamHandler func(cumulative string)

// chatRequest is the wire format of an outbound message.
type chatRequest struct {
	NewMessage string `json:"newMessage"`
}

// StreamMessage POSTs the user message to the backend and consumes the
// event-stream response, invoking onDelta with the accumulated text as
// each frame arrives. It returns the final accumulated text.
//
// A non-success status or missing body is fatal. A frame that fails to
// parse is logged and skipped; the stream continues.
func (c *Client) StreamMessage(message string, onDelta StreamHandler) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", apierrors.ErrEmptyMessage
	}

	payload, err := json.Marshal(chatRequest{NewMessage: message})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", apierrors.NewNetworkError("create request", c.endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apierrors.NewNetworkError("send message", c.endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode != http.StatusOK {
		msg := "chat request failed"
		if resp.Body != nil {
			if body, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096)); readErr == nil && len(body) > 0 {
				msg = string(body)
			}
		}
		return "", apierrors.NewAPIError(resp.StatusCode, c.endpoint, msg)
	}

	if resp.Body == nil {
		return "", apierrors.ErrEmptyBody
	}

	return c.consumeStream(resp.Body, onDelta)
}

// consumeStream folds the chunked body into delta notifications. The
// accumulator is private to the consumer; the handler only ever sees
// the cumulative text.
func (c *Client) consumeStream(body io.Reader, onDelta StreamHandler) (string, error) {
	scanner := newFrameScanner()
	var acc strings.Builder
	buf := make([]byte, 4096)

	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			for _, frame := range scanner.feed(buf[:n]) {
				done, err := c.handleFrame(frame, &acc, onDelta)
				if err != nil {
					return acc.String(), err
				}
				if done {
					return acc.String(), nil
				}
			}
		}

		if readErr == io.EOF {
			// A final frame may arrive without its terminating blank line.
			if frame := scanner.flush(); frame != "" {
				if _, err := c.handleFrame(frame, &acc, onDelta); err != nil {
					return acc.String(), err
				}
			}
			return acc.String(), nil
		}
		if readErr != nil {
			return acc.String(), apierrors.NewNetworkError("read stream", c.endpoint, readErr)
		}
	}
}

// handleFrame processes a single event frame. Frames without a data
// line or without a recognizable payload are no-ops. Malformed JSON is
// logged and skipped, not fatal.
func (c *Client) handleFrame(frame string, acc *strings.Builder, onDelta StreamHandler) (done bool, err error) {
	payload, ok := dataPayload(frame)
	if !ok {
		return false, nil
	}

	if !gjson.Valid(payload) {
		c.logf("skipping malformed stream frame: %q", payload)
		return false, nil
	}

	doc := gjson.Parse(payload)

	if errField := doc.Get("error"); errField.Exists() {
		return false, apierrors.NewStreamError(errField.String())
	}

	if text := doc.Get("text"); text.Exists() {
		acc.WriteString(text.String())
		if onDelta != nil {
			onDelta(acc.String())
		}
	}

	return doc.Get("done").Bool(), nil
}

// dataPayload extracts the JSON document from the frame's data line.
// ok is false when the frame carries no data line or the payload is
// empty (keep-alive or comment frames).
func dataPayload(frame string) (payload string, ok bool) {
	for _, line := range strings.Split(frame, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, dataMarker) {
			continue
		}
		payload = strings.TrimSpace(strings.TrimPrefix(line, dataMarker))
		if payload == "" {
			return "", false
		}
		return payload, true
	}
	return "", false
}

// frameScanner splits a chunked byte stream into complete event frames.
// Bytes after the last delimiter stay buffered across feeds, so a
// multi-byte character split across chunk boundaries is never decoded
// until its frame is complete.
type frameScanner struct {
	buf []byte
}

func newFrameScanner() *frameScanner {
	return &frameScanner{}
}

// feed appends a chunk and returns the frames it completed.
func (s *frameScanner) feed(chunk []byte) []string {
	s.buf = append(s.buf, chunk...)

	var frames []string
	for {
		i := bytes.Index(s.buf, frameDelimiter)
		if i < 0 {
			break
		}
		frames = append(frames, string(s.buf[:i]))
		s.buf = s.buf[i+len(frameDelimiter):]
	}
	return frames
}

// flush returns any buffered trailing bytes as a final frame.
func (s *frameScanner) flush() string {
	frame := strings.TrimSpace(string(s.buf))
	s.buf = nil
	return frame
}
