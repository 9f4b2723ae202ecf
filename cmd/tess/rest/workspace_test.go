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
	"github.com/tesserabio/tessera/pkg/api/types/attributes"
	apierr "github.com/tesserabio/tessera/pkg/api/types/errors"
	"github.com/tesserabio/tessera/pkg/api/types/workspaces"
	"github.com/tesserabio/tessera/pkg/cmp"
	"github.com/tesserabio/tessera/pkg/utils/try"
)

func TestListWorkspaces(t *testing.T) {
	t.Run("when server returns workspaces, it returns them as is", func(t *testing.T) {
		expectedResponse := []workspaces.Entry{
			{
				AccessLevel: workspaces.AccessOwner,
				Workspace: workspaces.Detail{
					Namespace: "broad-gp", Name: "wgs-prod",
					BucketName: "fc-1111", CreatedBy: "alice@example.com",
					IsLocked: false,
				},
			},
			{
				AccessLevel: workspaces.AccessReader,
				Workspace: workspaces.Detail{
					Namespace: "broad-gp", Name: "wgs-dev",
					BucketName: "fc-2222", CreatedBy: "bob@example.com",
					IsLocked: true,
				},
			},
		}

		var request *http.Request
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				t.Errorf("request is not GET /api/workspaces (actual method = %s)", r.Method)
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

		actualResponse := try.To(testee.ListWorkspaces(context.Background())).OrFatal(t)

		if request.URL.Path != "/api/workspaces" {
			t.Errorf("request path is not /api/workspaces (actual = %s)", request.URL.Path)
		}
		if !cmp.SliceEqWith(
			actualResponse, expectedResponse,
			func(a, x workspaces.Entry) bool {
				return a.AccessLevel == x.AccessLevel && a.Workspace.Id() == x.Workspace.Id()
			},
		) {
			t.Errorf("response is not equal (actual,expected): %v,%v", actualResponse, expectedResponse)
		}
	})

	t.Run("a server responding with error is given", func(t *testing.T) {
		for _, status := range []int{http.StatusUnauthorized, http.StatusInternalServerError} {
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

				if _, err := testee.ListWorkspaces(context.Background()); err == nil {
					t.Errorf("no error occured")
				}
			})
		}
	})
}

func TestGetWorkspace(t *testing.T) {
	t.Run("when fields are passed, it sends them as query and returns the entry", func(t *testing.T) {
		expectedResponse := workspaces.Entry{
			AccessLevel: workspaces.AccessWriter,
			Workspace: workspaces.Detail{
				Namespace: "broad-gp", Name: "wgs-prod",
				BucketName: "fc-1111",
				Attributes: map[string]any{"study": "1000g"},
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

		actualResponse := try.To(testee.GetWorkspace(
			context.Background(), "broad-gp", "wgs-prod", "workspace.attributes",
		)).OrFatal(t)

		if request.URL.Path != "/api/workspaces/broad-gp/wgs-prod" {
			t.Errorf("unexpected request path: %s", request.URL.Path)
		}
		if f := request.URL.Query().Get("fields"); f != "workspace.attributes" {
			t.Errorf("unexpected fields query: %s", f)
		}
		if actualResponse.Workspace.Id() != expectedResponse.Workspace.Id() {
			t.Errorf(
				"response is not equal (actual,expected): %v,%v",
				actualResponse, expectedResponse,
			)
		}
	})

	t.Run("when server responds 404, it returns error with the server message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			buf := try.To(json.Marshal(
				apierr.ErrorMessage{Message: "broad-gp/no-such-workspace does not exist"},
			)).OrFatal(t)
			w.Write(buf)
		}))
		defer server.Close()

		profile := tprof.Profile{ApiRoot: server.URL + "/api"}
		testee := try.To(trst.NewClient(context.Background(), &profile)).OrFatal(t)

		if _, err := testee.GetWorkspace(context.Background(), "broad-gp", "no-such-workspace"); err == nil {
			t.Errorf("no error occured")
		}
	})
}

func TestCreateWorkspace(t *testing.T) {
	t.Run("it POSTs the request body and returns the created workspace", func(t *testing.T) {
		when := workspaces.CreateRequest{
			Namespace: "broad-gp", Name: "wgs-new",
			Attributes:          map[string]any{"study": "1000g"},
			AuthorizationDomain: []workspaces.GroupRef{{MembersGroupName: "phs-auth"}},
		}
		expectedResponse := workspaces.Detail{
			Namespace: "broad-gp", Name: "wgs-new", BucketName: "fc-3333",
		}

		var gotBody workspaces.CreateRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("request is not POST /api/workspaces (actual method = %s)", r.Method)
			}
			if r.Header.Get("Content-Type") != "application/json" {
				t.Errorf("unexpected Content-Type: %s", r.Header.Get("Content-Type"))
			}
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

		actualResponse := try.To(testee.CreateWorkspace(context.Background(), when)).OrFatal(t)

		if gotBody.Namespace != when.Namespace || gotBody.Name != when.Name {
			t.Errorf("sent body is not equal (actual,expected): %v,%v", gotBody, when)
		}
		if gotBody.Attributes == nil {
			t.Errorf("attributes should be sent even when empty")
		}
		if actualResponse.Id() != expectedResponse.Id() {
			t.Errorf("response is not equal (actual,expected): %v,%v", actualResponse, expectedResponse)
		}
	})
}

func TestLockAndUnlockWorkspace(t *testing.T) {
	type When struct {
		call func(trst.TessClient, context.Context) error
	}
	type Then struct {
		path string
	}

	theory := func(when When, then Then) func(*testing.T) {
		return func(t *testing.T) {
			var request *http.Request
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPut {
					t.Errorf("request is not PUT (actual method = %s)", r.Method)
				}
				request = r
				w.WriteHeader(http.StatusNoContent)
			}))
			defer server.Close()

			profile := tprof.Profile{ApiRoot: server.URL + "/api"}
			testee := try.To(trst.NewClient(context.Background(), &profile)).OrFatal(t)

			if err := when.call(testee, context.Background()); err != nil {
				t.Fatal(err)
			}
			if request.URL.Path != then.path {
				t.Errorf("unexpected request path: %s (expected %s)", request.URL.Path, then.path)
			}
		}
	}

	t.Run("lock puts to .../lock", theory(
		When{call: func(c trst.TessClient, ctx context.Context) error {
			return c.LockWorkspace(ctx, "broad-gp", "wgs-prod")
		}},
		Then{path: "/api/workspaces/broad-gp/wgs-prod/lock"},
	))
	t.Run("unlock puts to .../unlock", theory(
		When{call: func(c trst.TessClient, ctx context.Context) error {
			return c.UnlockWorkspace(ctx, "broad-gp", "wgs-prod")
		}},
		Then{path: "/api/workspaces/broad-gp/wgs-prod/unlock"},
	))
}

func TestUpdateWorkspaceACL(t *testing.T) {
	t.Run("it PATCHes updates with inviteUsersNotFound query", func(t *testing.T) {
		updates := []workspaces.ACLUpdate{
			{Email: "carol@example.com", AccessLevel: workspaces.AccessWriter},
			{Email: "dave@example.com", AccessLevel: workspaces.AccessNoAccess},
		}
		expectedResponse := workspaces.ACLUpdateResult{
			UsersUpdated: []workspaces.ACLUpdate{updates[0]},
			UsersNotFound: []workspaces.ACLUpdate{
				{Email: "dave@example.com", AccessLevel: workspaces.AccessNoAccess},
			},
		}

		var request *http.Request
		var gotBody []workspaces.ACLUpdate
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPatch {
				t.Errorf("request is not PATCH (actual method = %s)", r.Method)
			}
			request = r
			defer r.Body.Close()
			payload := try.To(io.ReadAll(r.Body)).OrFatal(t)
			if err := json.Unmarshal(payload, &gotBody); err != nil {
				t.Fatal(err)
			}

			w.Header().Add("Content-Type", "application/json")
			body := try.To(json.Marshal(expectedResponse)).OrFatal(t)
			w.WriteHeader(http.StatusOK)
			w.Write(body)
		}))
		defer server.Close()

		profile := tprof.Profile{ApiRoot: server.URL + "/api"}
		testee := try.To(trst.NewClient(context.Background(), &profile)).OrFatal(t)

		actualResponse := try.To(testee.UpdateWorkspaceACL(
			context.Background(), "broad-gp", "wgs-prod", updates, true,
		)).OrFatal(t)

		if request.URL.Path != "/api/workspaces/broad-gp/wgs-prod/acl" {
			t.Errorf("unexpected request path: %s", request.URL.Path)
		}
		if q := request.URL.Query().Get("inviteUsersNotFound"); q != "true" {
			t.Errorf("unexpected inviteUsersNotFound query: %s", q)
		}
		if !cmp.SliceEq(gotBody, updates) {
			t.Errorf("sent body is not equal (actual,expected): %v,%v", gotBody, updates)
		}
		if !cmp.SliceEq(actualResponse.UsersUpdated, expectedResponse.UsersUpdated) {
			t.Errorf(
				"response is not equal (actual,expected): %v,%v",
				actualResponse, expectedResponse,
			)
		}
	})
}

func TestUpdateWorkspaceAttributes(t *testing.T) {
	t.Run("it PATCHes attribute updates to the updateAttributes endpoint", func(t *testing.T) {
		updates := []attributes.Update{
			attributes.Set("study", "1000g"),
			attributes.Remove("obsolete"),
		}

		var request *http.Request
		var gotBody []attributes.Update
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPatch {
				t.Errorf("request is not PATCH (actual method = %s)", r.Method)
			}
			request = r
			defer r.Body.Close()
			payload := try.To(io.ReadAll(r.Body)).OrFatal(t)
			if err := json.Unmarshal(payload, &gotBody); err != nil {
				t.Fatal(err)
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		profile := tprof.Profile{ApiRoot: server.URL + "/api"}
		testee := try.To(trst.NewClient(context.Background(), &profile)).OrFatal(t)

		if err := testee.UpdateWorkspaceAttributes(
			context.Background(), "broad-gp", "wgs-prod", updates,
		); err != nil {
			t.Fatal(err)
		}

		if request.URL.Path != "/api/workspaces/broad-gp/wgs-prod/updateAttributes" {
			t.Errorf("unexpected request path: %s", request.URL.Path)
		}
		if !cmp.SliceEqWith(gotBody, updates, func(a, x attributes.Update) bool {
			return a.Op == x.Op && a.AttributeName == x.AttributeName
		}) {
			t.Errorf("sent body is not equal (actual,expected): %v,%v", gotBody, updates)
		}
	})
}
