// Package errors has the error payload the Tessera platform returns
// on 4xx/5xx responses.
package errors

import (
	"encoding/json"
	"fmt"
	"strings"
)

type ErrorMessage struct {
	StatusCode int      `json:"statusCode,omitempty"`
	Message    string   `json:"message"`
	Causes     []string `json:"causes,omitempty"`
}

func (em *ErrorMessage) UnmarshalJSON(bytes []byte) error {
	f := new(struct {
		StatusCode *int     `json:"statusCode"`
		Message    *string  `json:"message"`
		Causes     []string `json:"causes"`
	})
	if err := json.Unmarshal(bytes, f); err != nil {
		return err
	}

	if f.Message == nil {
		return fmt.Errorf(`required field missing: "message"`)
	}
	em.Message = *f.Message

	if f.StatusCode != nil {
		em.StatusCode = *f.StatusCode
	}
	em.Causes = f.Causes

	return nil
}

func (e ErrorMessage) String() string {
	lines := []string{e.Message}
	for _, c := range e.Causes {
		lines = append(lines, " caused by: "+c)
	}
	return strings.Join(lines, "\n")
}

func (e ErrorMessage) Error() string {
	return e.String()
}
