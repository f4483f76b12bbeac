package client

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
)

const defaultErrorMsg = "Error"

// Envelope wraps every backend response body.
type Envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// unwrap reads resp and decodes the envelope data into out. out may be nil
// or a *json.RawMessage to keep data verbatim.
func unwrap(resp *http.Response, out interface{}) error {
	body, err := ioutil.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env Envelope
	decodeErr := json.Unmarshal(body, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := &HTTPError{StatusCode: resp.StatusCode}
		if decodeErr == nil {
			httpErr.Msg = env.Msg
		}

		return httpErr
	}
	if decodeErr != nil {
		return fmt.Errorf("decode envelope: %w", decodeErr)
	}

	if env.Code != http.StatusOK {
		msg := env.Msg
		if msg == "" {
			msg = defaultErrorMsg
		}

		return &APIError{Code: env.Code, Msg: msg}
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], env.Data...)

		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}

	return nil
}
