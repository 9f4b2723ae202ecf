package launcher_test

import (
	"context"
	"errors"
	"testing"

	"github.com/tesserabio/tessera/cmd/tess/rest/mock"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/supervise/launcher"
	"github.com/tesserabio/tessera/cmd/tess/supervisor"
	"github.com/tesserabio/tessera/pkg/api/types/submissions"
	"github.com/tesserabio/tessera/pkg/utils/try"
)

func TestLauncher_Submit(t *testing.T) {
	type When struct {
		node supervisor.JobNode
	}
	type Then struct {
		request submissions.Request
	}

	theory := func(when When, then Then) func(*testing.T) {
		return func(t *testing.T) {
			ctx := context.Background()
			client := mock.New(t)
			client.Impl.CreateSubmission = func(
				_ context.Context, project, workspace string, req submissions.Request,
			) (submissions.Created, error) {
				if project != "broad-gp" || workspace != "wgs-prod" {
					t.Errorf(
						"submitted into %s/%s (want broad-gp/wgs-prod)",
						project, workspace,
					)
				}
				return submissions.Created{SubmissionId: "sub-1"}, nil
			}

			testee := launcher.New(client, "broad-gp", "wgs-prod", "default-ns", "sample_set")

			handle := try.To(testee.Submit(ctx, when.node)).OrFatal(t)
			if handle != "sub-1" {
				t.Errorf("handle: got %s, want sub-1", handle)
			}

			if len(client.Calls.CreateSubmission) != 1 {
				t.Fatalf("CreateSubmission called %d times", len(client.Calls.CreateSubmission))
			}
			actual := client.Calls.CreateSubmission[0].Request
			if actual != then.request {
				t.Errorf(
					"submission request\n===actual===\n%+v\n===expected===\n%+v",
					actual, then.request,
				)
			}
		}
	}

	t.Run("a fully-specified payload is passed through", theory(
		When{
			node: supervisor.JobNode{
				Name: "align",
				Payload: map[string]string{
					"config":       "broadgp/align-wgs",
					"entity":       "batch-7",
					"entityType":   "pair_set",
					"expression":   "this.pairs",
					"useCallCache": "false",
				},
			},
		},
		Then{
			request: submissions.Request{
				MethodConfigurationNamespace: "broadgp",
				MethodConfigurationName:      "align-wgs",
				EntityType:                   "pair_set",
				EntityName:                   "batch-7",
				Expression:                   "this.pairs",
				UseCallCache:                 false,
			},
		},
	))

	t.Run("defaults fill in what the payload leaves out", theory(
		When{
			node: supervisor.JobNode{
				Name:    "align",
				Payload: map[string]string{"entity": "batch-7"},
			},
		},
		Then{
			request: submissions.Request{
				MethodConfigurationNamespace: "default-ns",
				MethodConfigurationName:      "align",
				EntityType:                   "sample_set",
				EntityName:                   "batch-7",
				UseCallCache:                 true,
			},
		},
	))

	t.Run("a bare config name uses the default namespace", theory(
		When{
			node: supervisor.JobNode{
				Name: "step-1",
				Payload: map[string]string{
					"config": "align-wgs",
					"entity": "batch-7",
				},
			},
		},
		Then{
			request: submissions.Request{
				MethodConfigurationNamespace: "default-ns",
				MethodConfigurationName:      "align-wgs",
				EntityType:                   "sample_set",
				EntityName:                   "batch-7",
				UseCallCache:                 true,
			},
		},
	))
}

func TestLauncher_Submit_withoutEntity(t *testing.T) {
	ctx := context.Background()
	client := mock.New(t)

	testee := launcher.New(client, "broad-gp", "wgs-prod", "default-ns", "sample_set")

	_, err := testee.Submit(ctx, supervisor.JobNode{Name: "align"})
	if err == nil {
		t.Fatal("no error when payload has no entity")
	}
	if len(client.Calls.CreateSubmission) != 0 {
		t.Error("CreateSubmission should not be called")
	}
}

func TestLauncher_Submit_serverError(t *testing.T) {
	ctx := context.Background()
	expectedError := errors.New("fake error")

	client := mock.New(t)
	client.Impl.CreateSubmission = func(
		context.Context, string, string, submissions.Request,
	) (submissions.Created, error) {
		return submissions.Created{}, expectedError
	}

	testee := launcher.New(client, "broad-gp", "wgs-prod", "default-ns", "sample_set")

	_, err := testee.Submit(ctx, supervisor.JobNode{
		Name:    "align",
		Payload: map[string]string{"entity": "batch-7"},
	})
	if !errors.Is(err, expectedError) {
		t.Errorf("unexpected error: %+v", err)
	}
}

func TestLauncher_Poll(t *testing.T) {
	type When struct {
		detail submissions.Detail
	}
	type Then struct {
		outcome supervisor.Outcome
	}

	theory := func(when When, then Then) func(*testing.T) {
		return func(t *testing.T) {
			ctx := context.Background()
			client := mock.New(t)
			client.Impl.GetSubmission = func(
				_ context.Context, project, workspace, submissionId string,
			) (submissions.Detail, error) {
				if submissionId != "sub-1" {
					t.Errorf("polled submission %s (want sub-1)", submissionId)
				}
				return when.detail, nil
			}

			testee := launcher.New(client, "broad-gp", "wgs-prod", "default-ns", "sample_set")

			outcome := try.To(testee.Poll(ctx, "sub-1")).OrFatal(t)
			if outcome != then.outcome {
				t.Errorf("outcome: got %s, want %s", outcome, then.outcome)
			}
		}
	}

	t.Run("a submission still evaluating is running", theory(
		When{detail: submissions.Detail{
			Summary: submissions.Summary{SubmissionId: "sub-1", Status: submissions.StatusEvaluating},
		}},
		Then{outcome: supervisor.OutcomeRunning},
	))

	t.Run("a done submission with all workflows succeeded has succeeded", theory(
		When{detail: submissions.Detail{
			Summary: submissions.Summary{SubmissionId: "sub-1", Status: submissions.StatusDone},
			Workflows: []submissions.Workflow{
				{WorkflowId: "wf-1", Status: submissions.WorkflowSucceeded},
				{WorkflowId: "wf-2", Status: submissions.WorkflowSucceeded},
			},
		}},
		Then{outcome: supervisor.OutcomeSucceeded},
	))

	t.Run("a done submission with a failed workflow has failed", theory(
		When{detail: submissions.Detail{
			Summary: submissions.Summary{SubmissionId: "sub-1", Status: submissions.StatusDone},
			Workflows: []submissions.Workflow{
				{WorkflowId: "wf-1", Status: submissions.WorkflowSucceeded},
				{WorkflowId: "wf-2", Status: submissions.WorkflowFailed},
			},
		}},
		Then{outcome: supervisor.OutcomeFailed},
	))

	t.Run("an aborted submission has failed", theory(
		When{detail: submissions.Detail{
			Summary: submissions.Summary{SubmissionId: "sub-1", Status: submissions.StatusAborted},
		}},
		Then{outcome: supervisor.OutcomeFailed},
	))
}

func TestLauncher_Poll_serverError(t *testing.T) {
	ctx := context.Background()
	expectedError := errors.New("fake error")

	client := mock.New(t)
	client.Impl.GetSubmission = func(
		context.Context, string, string, string,
	) (submissions.Detail, error) {
		return submissions.Detail{}, expectedError
	}

	testee := launcher.New(client, "broad-gp", "wgs-prod", "default-ns", "sample_set")

	if _, err := testee.Poll(ctx, "sub-1"); !errors.Is(err, expectedError) {
		t.Errorf("unexpected error: %+v", err)
	}
}
