package acl

import (
	"context"
	"fmt"
	"log"

	tenv "github.com/tesserabio/tessera/cmd/tess/env"
	trst "github.com/tesserabio/tessera/cmd/tess/rest"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/common"
	"github.com/tesserabio/tessera/pkg/api/types/workspaces"
	kflg "github.com/tesserabio/tessera/pkg/commandline/flag"
	"github.com/tesserabio/tessera/pkg/utils"
	"github.com/youta-t/flarc"
)

type Flag struct {
	Project string `flag:"project" metavar:"PROJECT" help:"billing project of the workspace"`

	Grant  *kflg.UserAccesses `flag:"grant" metavar:"EMAIL:LEVEL..." help:"grant a user this access level (OWNER, WRITER, READER, NO ACCESS). It can be specified multiple times."`
	Revoke *kflg.Argslice     `flag:"revoke" metavar:"EMAIL..." help:"revoke a user's access. It can be specified multiple times."`
	Invite bool               `flag:"invite" help:"invite users unknown to the platform instead of failing"`
}

const ARG_WORKSPACE = "WORKSPACE"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Show or change who can access a workspace.",
		Flag{
			Grant:  &kflg.UserAccesses{},
			Revoke: &kflg.Argslice{},
		},
		flarc.Args{
			{
				Name: ARG_WORKSPACE, Required: false,
				Help: "workspace to inspect. Defaults to the tessenv workspace.",
			},
		},
		common.NewTask(Task),
		flarc.WithDescription(`
Without flags, show the access control list, one user per line.

With --grant and/or --revoke, apply the changes and report users the
platform does not know yet.

Example:

	{{ .Command }}
	{{ .Command }} --grant carol@example.com:writer --revoke mallory@example.com
`),
	)
}

func Task(
	ctx context.Context,
	logger *log.Logger,
	e tenv.TessEnv,
	client trst.TessClient,
	cl flarc.Commandline[Flag],
	_ []any,
) error {
	name := ""
	if ws := cl.Args()[ARG_WORKSPACE]; 0 < len(ws) {
		name = ws[0]
	}
	project, name, err := common.Workspace(e, cl.Flags().Project, name)
	if err != nil {
		return err
	}

	flags := cl.Flags()
	updates := []workspaces.ACLUpdate{}
	if flags.Grant != nil {
		updates = append(updates, utils.Map(
			[]kflg.UserAccess(*flags.Grant),
			func(g kflg.UserAccess) workspaces.ACLUpdate {
				return workspaces.ACLUpdate{Email: g.Email, AccessLevel: g.AccessLevel}
			},
		)...)
	}
	if flags.Revoke != nil {
		updates = append(updates, utils.Map(
			[]string(*flags.Revoke),
			func(email string) workspaces.ACLUpdate {
				return workspaces.ACLUpdate{Email: email, AccessLevel: workspaces.AccessNoAccess}
			},
		)...)
	}

	if len(updates) == 0 {
		return show(ctx, client, project, name, cl)
	}

	result, err := client.UpdateWorkspaceACL(ctx, project, name, updates, flags.Invite)
	if err != nil {
		return err
	}

	for _, u := range result.UsersUpdated {
		logger.Printf("%s: %s", u.Email, u.AccessLevel)
	}
	for _, u := range result.InvitesSent {
		logger.Printf("%s: invited", u.Email)
	}
	for _, u := range result.UsersNotFound {
		logger.Printf("%s: not found on the platform (use --invite to invite)", u.Email)
	}
	return nil
}

func show(
	ctx context.Context,
	client trst.TessClient,
	project, name string,
	cl flarc.Commandline[Flag],
) error {
	acl, err := client.GetWorkspaceACL(ctx, project, name)
	if err != nil {
		return err
	}

	for _, email := range utils.SortedKeysOf(acl.Acl) {
		entry := acl.Acl[email]
		pending := ""
		if entry.Pending {
			pending = "\t(pending)"
		}
		fmt.Fprintf(cl.Stdout(), "%s\t%s%s\n", entry.AccessLevel, email, pending)
	}
	return nil
}
