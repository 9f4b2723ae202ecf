package rest_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	tprof "github.com/tesserabio/tessera/cmd/tess/config/profiles"
	trst "github.com/tesserabio/tessera/cmd/tess/rest"
	apierr "github.com/tesserabio/tessera/pkg/api/types/errors"
	"github.com/tesserabio/tessera/pkg/api/types/submissions"
	"github.com/tesserabio/tessera/pkg/utils/try"
)

func TestCreateSubmission(t *testing.T) {
	t.Run("it POSTs the request and returns the new submission id", func(t *testing.T) {
		when := submissions.Request{
			MethodConfigurationNamespace: "broad-methods",
			MethodConfigurationName:      "align-wgs",
			EntityType:                   "sample_set",
			EntityName:                   "batch-7",
			Expression:                   "this.samples",
			UseCallCache:                 true,
		}
		expectedResponse := submissions.Created{SubmissionId: "subm-0001"}

		var request *http.Request
		var gotBody submissions.Request
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("request is not POST (actual method = %s)", r.Method)
			}
			request = r
			defer r.Body.Close()
			payload := try.To(io.ReadAll(r.Body)).OrFatal(t)
			if err := json.Unmarshal(payload, &gotBody); err != nil {
				t.Fatal(err)
			}

			w.Header().Add("Content-Type", "application/json")
			body := try.To(json.Marshal(expectedResponse)).OrFatal(t)
			w.WriteHeader(http.StatusCreated)
			w.Write(body)
		}))
		defer server.Close()

		profile := tprof.Profile{ApiRoot: server.URL + "/api"}
		testee := try.To(trst.NewClient(context.Background(), &profile)).OrFatal(t)

		actualResponse := try.To(testee.CreateSubmission(
			context.Background(), "broad-gp", "wgs-prod", when,
		)).OrFatal(t)

		if request.URL.Path != "/api/workspaces/broad-gp/wgs-prod/submissions" {
			t.Errorf("unexpected request path: %s", request.URL.Path)
		}
		if gotBody != when {
			t.Errorf("sent body is not equal (actual,expected): %v,%v", gotBody, when)
		}
		if actualResponse != expectedResponse {
			t.Errorf(
				"response is not equal (actual,expected): %v,%v",
				actualResponse, expectedResponse,
			)
		}
	})

	t.Run("a server responding with error is given", func(t *testing.T) {
		for _, status := range []int{http.StatusBadRequest, http.StatusInternalServerError} {
			t.Run(fmt.Sprintf("when server responding with %d, it returns error", status), func(t *testing.T) {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(status)
					buf := try.To(json.Marshal(
						apierr.ErrorMessage{Message: "something wrong"},
					)).OrFatal(t)
					w.Write(buf)
				}))
				defer server.Close()

				profile := tprof.Profile{ApiRoot: server.URL + "/api"}
				testee := try.To(trst.NewClient(context.Background(), &profile)).OrFatal(t)

				if _, err := testee.CreateSubmission(
					context.Background(), "broad-gp", "wgs-prod", submissions.Request{},
				); err == nil {
					t.Errorf("no error occured")
				}
			})
		}
	})
}

func TestGetSubmission(t *testing.T) {
	t.Run("when server returns a submission, it returns that as is", func(t *testing.T) {
		expectedResponse := submissions.Detail{
			Summary: submissions.Summary{
				SubmissionId: "subm-0001",
				Status:       submissions.StatusDone,
				Submitter:    "alice@example.com",
			},
			Workflows: []submissions.Workflow{
				{WorkflowId: "wf-1", Status: submissions.WorkflowSucceeded},
				{WorkflowId: "wf-2", Status: submissions.WorkflowFailed},
			},
		}

		var request *http.Request
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				t.Errorf("request is not GET (actual method = %s)", r.Method)
			}
			request = r

			w.Header().Add("Content-Type", "application/json")
			body := try.To(json.Marshal(expectedResponse)).OrFatal(t)
			w.WriteHeader(http.StatusOK)
			w.Write(body)
		}))
		defer server.Close()

		profile := tprof.Profile{ApiRoot: server.URL + "/api"}
		testee := try.To(trst.NewClient(context.Background(), &profile)).OrFatal(t)

		actualResponse := try.To(testee.GetSubmission(
			context.Background(), "broad-gp", "wgs-prod", "subm-0001",
		)).OrFatal(t)

		if request.URL.Path != "/api/workspaces/broad-gp/wgs-prod/submissions/subm-0001" {
			t.Errorf("unexpected request path: %s", request.URL.Path)
		}
		if actualResponse.SubmissionId != expectedResponse.SubmissionId ||
			len(actualResponse.Workflows) != len(expectedResponse.Workflows) {
			t.Errorf(
				"response is not equal (actual,expected): %v,%v",
				actualResponse, expectedResponse,
			)
		}
		if !actualResponse.Finished() {
			t.Errorf("a Done submission should be finished")
		}
		if actualResponse.Succeeded() {
			t.Errorf("a submission with a failed workflow should not be succeeded")
		}
	})
}

func TestAbortSubmission(t *testing.T) {
	t.Run("it DELETEs the submission resource", func(t *testing.T) {
		var request *http.Request
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete {
				t.Errorf("request is not DELETE (actual method = %s)", r.Method)
			}
			request = r
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		profile := tprof.Profile{ApiRoot: server.URL + "/api"}
		testee := try.To(trst.NewClient(context.Background(), &profile)).OrFatal(t)

		if err := testee.AbortSubmission(
			context.Background(), "broad-gp", "wgs-prod", "subm-0001",
		); err != nil {
			t.Fatal(err)
		}
		if request.URL.Path != "/api/workspaces/broad-gp/wgs-prod/submissions/subm-0001" {
			t.Errorf("unexpected request path: %s", request.URL.Path)
		}
	})

	t.Run("when the submission is already terminal, it returns error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			buf := try.To(json.Marshal(
				apierr.ErrorMessage{Message: "submission is not running"},
			)).OrFatal(t)
			w.Write(buf)
		}))
		defer server.Close()

		profile := tprof.Profile{ApiRoot: server.URL + "/api"}
		testee := try.To(trst.NewClient(context.Background(), &profile)).OrFatal(t)

		if err := testee.AbortSubmission(
			context.Background(), "broad-gp", "wgs-prod", "subm-0001",
		); err == nil {
			t.Errorf("no error occured")
		}
	})
}
