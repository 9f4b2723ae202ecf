// Package submissions has types for job submissions on the Tessera platform.
package submissions

// submission statuses reported by the platform.
const (
	StatusAccepted   = "Accepted"
	StatusEvaluating = "Evaluating"
	StatusSubmitting = "Submitting"
	StatusSubmitted  = "Submitted"
	StatusAborting   = "Aborting"
	StatusAborted    = "Aborted"
	StatusDone       = "Done"
)

// workflow statuses within a submission.
const (
	WorkflowQueued    = "Queued"
	WorkflowLaunching = "Launching"
	WorkflowRunning   = "Running"
	WorkflowSucceeded = "Succeeded"
	WorkflowFailed    = "Failed"
	WorkflowAborted   = "Aborted"
)

// Request is the body for creating a submission.
type Request struct {
	MethodConfigurationNamespace string `json:"methodConfigurationNamespace"`
	MethodConfigurationName      string `json:"methodConfigurationName"`
	EntityType                   string `json:"entityType"`
	EntityName                   string `json:"entityName"`
	Expression                   string `json:"expression,omitempty"`
	UseCallCache                 bool   `json:"useCallCache"`
}

// Created is the response of a successful submission.
type Created struct {
	SubmissionId string `json:"submissionId"`
}

// Summary is one element of the submission list.
type Summary struct {
	SubmissionId                 string     `json:"submissionId"`
	Status                       string     `json:"status"`
	SubmissionDate               string     `json:"submissionDate,omitempty"`
	Submitter                    string     `json:"submitter,omitempty"`
	MethodConfigurationNamespace string     `json:"methodConfigurationNamespace,omitempty"`
	MethodConfigurationName      string     `json:"methodConfigurationName,omitempty"`
	SubmissionEntity             *EntityRef `json:"submissionEntity,omitempty"`
}

type EntityRef struct {
	EntityType string `json:"entityType"`
	EntityName string `json:"entityName"`
}

// Workflow is one workflow execution within a submission.
type Workflow struct {
	WorkflowId            string     `json:"workflowId,omitempty"`
	Status                string     `json:"status"`
	StatusLastChangedDate string     `json:"statusLastChangedDate,omitempty"`
	WorkflowEntity        *EntityRef `json:"workflowEntity,omitempty"`
	Messages              []string   `json:"messages,omitempty"`
}

// Detail is the full submission object.
type Detail struct {
	Summary
	Workflows []Workflow `json:"workflows"`
}

// Finished reports whether the submission reached a terminal status.
func (d Detail) Finished() bool {
	return d.Status == StatusDone || d.Status == StatusAborted
}

// Succeeded reports whether every workflow in the submission succeeded.
//
// Meaningful only once Finished() is true.
func (d Detail) Succeeded() bool {
	if d.Status != StatusDone {
		return false
	}
	for _, w := range d.Workflows {
		if w.Status == WorkflowFailed || w.Status == WorkflowAborted {
			return false
		}
	}
	return true
}
