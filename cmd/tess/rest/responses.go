package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	cerr "github.com/tesserabio/tessera/cmd/tess/errors"
	apierr "github.com/tesserabio/tessera/pkg/api/types/errors"
)

type StatusCodeRange int

const (
	StatusUnknown StatusCodeRange = iota
	Status1xx
	Status2xx
	Status3xx
	Status4xx
	Status5xx
)

func (sc StatusCodeRange) String() string {
	switch sc {
	case Status1xx:
		return "informational response"
	case Status2xx:
		return "success"
	case Status3xx:
		return "redirect"
	case Status4xx:
		return "client error"
	case Status5xx:
		return "server error"
	default:
		return fmt.Sprintf("unknown (%d)", sc)
	}
}

func StatusCodeRangeOf(resp *http.Response) StatusCodeRange {
	sc := resp.StatusCode
	switch {
	case sc < 200:
		return Status1xx
	case sc < 300:
		return Status2xx
	case sc < 400:
		return Status3xx
	case sc < 500:
		return Status4xx
	case sc < 600:
		return Status5xx
	default:
		return StatusUnknown
	}
}

// MessageFor maps a status code range to the error summary shown to the user.
type MessageFor map[StatusCodeRange]string

// unmarshal an http response which has json content.
//
// args:
//   - resp: http response to be processed.
//   - v: value which the response should be.
//   - messageFor: title of the error message per HTTP status code range.
//
// return:
//
//	error if...
//	- the response body cannot be read
//	- the response body is not shaped like v
//	- the status code is in 4xx or 5xx
func unmarshalJsonResponse[T any](resp *http.Response, v *T, messageFor MessageFor) error {
	scr := StatusCodeRangeOf(resp)
	if scr <= Status2xx {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			message := fmt.Sprintf("unexpected error: %s (status code = %d)", err.Error(), resp.StatusCode)
			return cerr.NewCuiError(message, cerr.WithCause(err))
		}
		return nil
	}

	return errorFromResponse(resp, scr, messageFor)
}

// like unmarshalJsonResponse, but the payload (if any) is thrown away.
func unmarshalResponseDiscardingPayload(resp *http.Response, messageFor MessageFor) error {
	scr := StatusCodeRangeOf(resp)
	if scr <= Status2xx {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return errorFromResponse(resp, scr, messageFor)
}

// read a whole 2xx response as text.
func unmarshalTextResponse(resp *http.Response, messageFor MessageFor) (string, error) {
	scr := StatusCodeRangeOf(resp)
	if scr <= Status2xx {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", cerr.NewCuiError(
				fmt.Sprintf("cannot read server response: %s", err.Error()),
				cerr.WithCause(err),
			)
		}
		return string(body), nil
	}
	return "", errorFromResponse(resp, scr, messageFor)
}

func errorFromResponse(resp *http.Response, scr StatusCodeRange, messageFor MessageFor) error {
	message, ok := messageFor[scr]
	if !ok {
		message = scr.String()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return cerr.NewCuiError(
			fmt.Sprintf("%s\ncannot read server message: %s", message, err.Error()),
			cerr.WithCause(err),
		)
	}

	detail := parseErrorMessage(body)
	return cerr.NewCuiError(
		message,
		cerr.WithDetail(func(summary string) (string, error) {
			if detail == "" {
				return summary, nil
			}
			return summary + "\n" + detail, nil
		}),
	)
}

func parseErrorMessage(body []byte) string {
	eresp := new(apierr.ErrorMessage)
	if err := json.Unmarshal(body, eresp); err == nil {
		return eresp.String()
	}
	return string(body)
}
