package launcher

import (
	"context"
	"fmt"
	"strings"

	trst "github.com/tesserabio/tessera/cmd/tess/rest"
	"github.com/tesserabio/tessera/cmd/tess/supervisor"
	"github.com/tesserabio/tessera/pkg/api/types/submissions"
)

// payload keys a job node may carry in the workflow file.
const (
	payloadConfig       = "config"       // method configuration, "NAMESPACE/NAME" or "NAME"
	payloadEntity       = "entity"       // root entity name
	payloadEntityType   = "entityType"   // root entity type
	payloadExpression   = "expression"   // entity expression, e.g. "this.samples"
	payloadUseCallCache = "useCallCache" // "false" to disable the call cache
)

// restLauncher drives job nodes as Tessera submissions.
//
// Per-node payload entries override the launcher defaults, so workflow
// files only spell what differs per job.
type restLauncher struct {
	client           trst.TessClient
	project          string
	workspace        string
	defaultNamespace string
	defaultType      string
}

var _ supervisor.Launcher = &restLauncher{}

// New builds a Launcher submitting into one workspace.
//
// defaultNamespace and defaultType fill in payload entries a node leaves out.
func New(
	client trst.TessClient,
	project, workspace, defaultNamespace, defaultType string,
) supervisor.Launcher {
	return &restLauncher{
		client:           client,
		project:          project,
		workspace:        workspace,
		defaultNamespace: defaultNamespace,
		defaultType:      defaultType,
	}
}

func (l *restLauncher) Submit(ctx context.Context, node supervisor.JobNode) (string, error) {
	config := node.Payload[payloadConfig]
	if config == "" {
		config = node.Name
	}
	namespace, name, ok := strings.Cut(config, "/")
	if !ok {
		namespace, name = l.defaultNamespace, config
	}

	entity := node.Payload[payloadEntity]
	if entity == "" {
		return "", fmt.Errorf("job %s: payload has no entity", node.Name)
	}
	entityType := node.Payload[payloadEntityType]
	if entityType == "" {
		entityType = l.defaultType
	}

	created, err := l.client.CreateSubmission(ctx, l.project, l.workspace, submissions.Request{
		MethodConfigurationNamespace: namespace,
		MethodConfigurationName:      name,
		EntityType:                   entityType,
		EntityName:                   entity,
		Expression:                   node.Payload[payloadExpression],
		UseCallCache:                 node.Payload[payloadUseCallCache] != "false",
	})
	if err != nil {
		return "", err
	}
	return created.SubmissionId, nil
}

func (l *restLauncher) Poll(ctx context.Context, handle string) (supervisor.Outcome, error) {
	detail, err := l.client.GetSubmission(ctx, l.project, l.workspace, handle)
	if err != nil {
		return supervisor.OutcomeRunning, err
	}
	if !detail.Finished() {
		return supervisor.OutcomeRunning, nil
	}
	if detail.Succeeded() {
		return supervisor.OutcomeSucceeded, nil
	}
	return supervisor.OutcomeFailed, nil
}
