package mop

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/cheggaaa/pb/v3"
	prof "github.com/tesserabio/tessera/cmd/tess/config/profiles"
	tenv "github.com/tesserabio/tessera/cmd/tess/env"
	tsserr "github.com/tesserabio/tessera/cmd/tess/errors"
	trst "github.com/tesserabio/tessera/cmd/tess/rest"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/common"
	kflg "github.com/tesserabio/tessera/pkg/commandline/flag"
	"github.com/youta-t/flarc"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

type Flag struct {
	Project     string         `flag:"project" metavar:"PROJECT" help:"billing project of the workspace"`
	Workspace   string         `flag:"workspace" metavar:"WORKSPACE" help:"workspace to mop"`
	DryRun      bool           `flag:"dry-run" help:"list what would be deleted, but delete nothing"`
	Include     *kflg.Argslice `flag:"include" alias:"i" metavar:"GLOB" help:"delete only unreferenced files whose name matches GLOB. Repeatable."`
	Exclude     *kflg.Argslice `flag:"exclude" alias:"x" metavar:"GLOB" help:"never delete files whose name matches GLOB. Repeatable."`
	Submissions *kflg.Argslice `flag:"submission-id" metavar:"ID" help:"mop only under these submissions. Repeatable."`
	Yes         bool           `flag:"yes" alias:"y" help:"do not ask for confirmation"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Delete unreferenced files from a workspace bucket.",
		Flag{
			Include:     &kflg.Argslice{},
			Exclude:     &kflg.Argslice{},
			Submissions: &kflg.Argslice{},
		},
		flarc.Args{},
		common.NewTaskWithProfile(Task),
		flarc.WithDescription(`Remove files under submission folders of the workspace bucket that no
workspace or entity attribute refers to.

Logs, task scripts, return codes and stdout/stderr are always kept.
Use --dry-run first to see what would go.

Google credentials for bucket access are taken from the profile's
credentials file, or Application Default Credentials.
`),
	)
}

// BucketClientOptions selects credentials for the bucket client: the
// profile's credentials file when it names one, Application Default
// Credentials otherwise. This keeps deletes running as the same identity
// the Tessera API calls use.
func BucketClientOptions(profile *prof.Profile) []option.ClientOption {
	if profile == nil || profile.Credentials == "" {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsFile(profile.Credentials)}
}

func Task(
	ctx context.Context,
	logger *log.Logger,
	profile *prof.Profile,
	e tenv.TessEnv,
	client trst.TessClient,
	cl flarc.Commandline[Flag],
	_ []any,
) error {
	project, workspace, err := common.Workspace(e, cl.Flags().Project, cl.Flags().Workspace)
	if err != nil {
		return err
	}
	flags := cl.Flags()

	entry, err := client.GetWorkspace(ctx, project, workspace)
	if err != nil {
		return err
	}
	bucket := entry.Workspace.BucketName
	if bucket == "" {
		return fmt.Errorf("workspace %s/%s has no bucket", project, workspace)
	}

	referenced := map[string]bool{}
	CollectReferences(referenced, entry.Workspace.Attributes)

	subs, err := client.ListSubmissions(ctx, project, workspace)
	if err != nil {
		return err
	}
	submissionIds := map[string]bool{}
	for _, s := range subs {
		submissionIds[s.SubmissionId] = true
	}
	if wanted := *flags.Submissions; 0 < len(wanted) {
		selected := map[string]bool{}
		for _, id := range wanted {
			if !submissionIds[id] {
				return fmt.Errorf("%w: %s is not a submission of %s/%s", flarc.ErrUsage, id, project, workspace)
			}
			selected[id] = true
		}
		submissionIds = selected
	}

	gcs, err := storage.NewClient(ctx, BucketClientOptions(profile)...)
	if err != nil {
		return tsserr.NewCuiError(
			"cannot reach Google Cloud Storage",
			tsserr.WithCause(err),
		)
	}
	defer gcs.Close()

	// objects under submission folders, by gs:// URL
	sizes := map[string]int64{}
	objects := gcs.Bucket(bucket).Objects(ctx, nil)
	for {
		attrs, err := objects.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return tsserr.NewCuiError(
				fmt.Sprintf("cannot list bucket gs://%s", bucket),
				tsserr.WithCause(err),
			)
		}
		submissionId, _, _ := strings.Cut(attrs.Name, "/")
		if submissionIds[submissionId] {
			sizes["gs://"+bucket+"/"+attrs.Name] = attrs.Size
		}
	}
	logger.Printf("found %d files in bucket gs://%s", len(sizes), bucket)

	etypes, err := client.ListEntityTypes(ctx, project, workspace)
	if err != nil {
		return err
	}
	for etype := range etypes {
		logger.Printf("getting attributes of %s entities...", etype)
		query := trst.EntityQuery{Page: 1, PageSize: e.PageSizeOr()}
		for {
			page, err := client.QueryEntities(ctx, project, workspace, etype, query)
			if err != nil {
				return err
			}
			for _, ent := range page.Results {
				CollectReferences(referenced, ent.Attributes)
			}
			if page.ResultMetadata.FilteredPageCount <= query.Page {
				break
			}
			query.Page += 1
		}
	}
	logger.Printf("found %d referenced files in workspace %s/%s", len(referenced), project, workspace)

	deletable := []string{}
	var totalSize int64
	for objectUrl := range sizes {
		if referenced[objectUrl] {
			continue
		}
		if !CanDelete(objectUrl, *flags.Include, *flags.Exclude) {
			continue
		}
		deletable = append(deletable, objectUrl)
		totalSize += sizes[objectUrl]
	}
	sort.Strings(deletable)

	if len(deletable) == 0 {
		logger.Println("nothing to mop.")
		return nil
	}

	if flags.DryRun {
		for _, objectUrl := range deletable {
			fmt.Fprintf(
				cl.Stdout(), "%11s  %s\n",
				HumanReadableSize(sizes[objectUrl]), objectUrl,
			)
		}
		fmt.Fprintf(
			cl.Stdout(), "total: %d files, %s\n",
			len(deletable), HumanReadableSize(totalSize),
		)
		return nil
	}

	if !flags.Yes {
		fmt.Fprintf(
			cl.Stdout(),
			"delete %d files totaling %s in gs://%s (%s)? [y/N]: ",
			len(deletable), HumanReadableSize(totalSize), bucket, workspace,
		)
		answer, err := bufio.NewReader(cl.Stdin()).ReadString('\n')
		if err != nil {
			return err
		}
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			logger.Println("cancelled.")
			return nil
		}
	}

	bar := pb.New(len(deletable)).SetWriter(cl.Stderr()).Start()
	defer bar.Finish()
	prefix := "gs://" + bucket + "/"
	for _, objectUrl := range deletable {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := strings.TrimPrefix(objectUrl, prefix)
		if err := gcs.Bucket(bucket).Object(name).Delete(ctx); err != nil {
			return tsserr.NewCuiError(
				fmt.Sprintf("cannot delete %s", objectUrl),
				tsserr.WithCause(err),
			)
		}
		bar.Increment()
	}
	logger.Printf("deleted %d files (%s recovered)", len(deletable), HumanReadableSize(totalSize))
	return nil
}
