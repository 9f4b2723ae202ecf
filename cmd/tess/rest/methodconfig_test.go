package rest_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	tprof "github.com/tesserabio/tessera/cmd/tess/config/profiles"
	trst "github.com/tesserabio/tessera/cmd/tess/rest"
	"github.com/tesserabio/tessera/pkg/api/types/configs"
	apierr "github.com/tesserabio/tessera/pkg/api/types/errors"
	"github.com/tesserabio/tessera/pkg/cmp"
	"github.com/tesserabio/tessera/pkg/utils/try"
)

func TestListMethodConfigs(t *testing.T) {
	expectedResponse := []configs.Summary{
		{
			Namespace: "broadgp", Name: "align-wgs", RootEntityType: "sample_set",
			MethodRepoMethod: configs.Method{
				MethodNamespace: "broadgp", MethodName: "align", MethodVersion: 12,
			},
		},
		{
			Namespace: "broadgp", Name: "call-variants", RootEntityType: "sample_set",
			MethodRepoMethod: configs.Method{
				MethodNamespace: "broadgp", MethodName: "haplotype-caller", MethodVersion: 3,
			},
		},
	}

	var request *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		request = r
		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(try.To(json.Marshal(expectedResponse)).OrFatal(t))
	}))
	defer server.Close()

	profile := tprof.Profile{ApiRoot: server.URL + "/api"}
	testee := try.To(trst.NewClient(context.Background(), &profile)).OrFatal(t)

	actualResponse := try.To(
		testee.ListMethodConfigs(context.Background(), "broad-gp", "wgs-prod"),
	).OrFatal(t)

	if request.Method != http.MethodGet {
		t.Errorf("request method: got %s, want GET", request.Method)
	}
	if request.URL.Path != "/api/workspaces/broad-gp/wgs-prod/methodconfigs" {
		t.Errorf("unexpected request path: %s", request.URL.Path)
	}
	if !cmp.SliceEqWith(
		actualResponse, expectedResponse,
		func(a, x configs.Summary) bool {
			return a.Namespace == x.Namespace && a.Name == x.Name &&
				a.RootEntityType == x.RootEntityType &&
				a.MethodRepoMethod.Equal(x.MethodRepoMethod)
		},
	) {
		t.Errorf("response is not equal (actual,expected): %v,%v", actualResponse, expectedResponse)
	}
}

func TestGetMethodConfig(t *testing.T) {
	t.Run("when server returns the config, it returns it as is", func(t *testing.T) {
		expectedResponse := configs.Detail{
			Namespace: "broadgp", Name: "align-wgs", RootEntityType: "sample_set",
			MethodRepoMethod: configs.Method{
				MethodNamespace: "broadgp", MethodName: "align", MethodVersion: 12,
			},
			Inputs:              map[string]string{"align.bam": "this.bam"},
			Outputs:             map[string]string{"align.cram": "this.cram"},
			MethodConfigVersion: 4,
		}

		var request *http.Request
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			request = r
			w.Header().Add("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(try.To(json.Marshal(expectedResponse)).OrFatal(t))
		}))
		defer server.Close()

		profile := tprof.Profile{ApiRoot: server.URL + "/api"}
		testee := try.To(trst.NewClient(context.Background(), &profile)).OrFatal(t)

		actualResponse := try.To(testee.GetMethodConfig(
			context.Background(), "broad-gp", "wgs-prod", "broadgp", "align-wgs",
		)).OrFatal(t)

		if request.Method != http.MethodGet {
			t.Errorf("request method: got %s, want GET", request.Method)
		}
		expectedPath := "/api/workspaces/broad-gp/wgs-prod/method_configs/broadgp/align-wgs"
		if request.URL.Path != expectedPath {
			t.Errorf("unexpected request path: %s", request.URL.Path)
		}
		if actualResponse.Namespace != expectedResponse.Namespace ||
			actualResponse.Name != expectedResponse.Name ||
			!actualResponse.MethodRepoMethod.Equal(expectedResponse.MethodRepoMethod) ||
			!cmp.MapEq(actualResponse.Inputs, expectedResponse.Inputs) ||
			!cmp.MapEq(actualResponse.Outputs, expectedResponse.Outputs) ||
			actualResponse.MethodConfigVersion != expectedResponse.MethodConfigVersion {
			t.Errorf(
				"response\n===actual===\n%+v\n===expected===\n%+v",
				actualResponse, expectedResponse,
			)
		}
	})

	t.Run("when server responds with 404, it returns error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			w.Write(try.To(json.Marshal(
				apierr.ErrorMessage{Message: "config not found"},
			)).OrFatal(t))
		}))
		defer server.Close()

		profile := tprof.Profile{ApiRoot: server.URL + "/api"}
		testee := try.To(trst.NewClient(context.Background(), &profile)).OrFatal(t)

		if _, err := testee.GetMethodConfig(
			context.Background(), "broad-gp", "wgs-prod", "broadgp", "no-such-config",
		); err == nil {
			t.Error("no error when server responds with 404")
		}
	})
}

func TestPutMethodConfig(t *testing.T) {
	sent := configs.Detail{
		Namespace: "broadgp", Name: "align-wgs", RootEntityType: "sample_set",
		MethodRepoMethod: configs.Method{
			MethodNamespace: "broadgp", MethodName: "align", MethodVersion: 12,
		},
		Inputs:  map[string]string{"align.bam": "this.bam"},
		Outputs: map[string]string{"align.cram": "this.cram"},
	}

	var request *http.Request
	var requestBody configs.Detail
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		request = r
		body := try.To(io.ReadAll(r.Body)).OrFatal(t)
		if err := json.Unmarshal(body, &requestBody); err != nil {
			t.Fatal(err)
		}

		stored := requestBody
		stored.MethodConfigVersion = 5

		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(try.To(json.Marshal(stored)).OrFatal(t))
	}))
	defer server.Close()

	profile := tprof.Profile{ApiRoot: server.URL + "/api"}
	testee := try.To(trst.NewClient(context.Background(), &profile)).OrFatal(t)

	stored := try.To(testee.PutMethodConfig(
		context.Background(), "broad-gp", "wgs-prod", "broadgp", "align-wgs", sent,
	)).OrFatal(t)

	if request.Method != http.MethodPut {
		t.Errorf("request method: got %s, want PUT", request.Method)
	}
	expectedPath := "/api/workspaces/broad-gp/wgs-prod/method_configs/broadgp/align-wgs"
	if request.URL.Path != expectedPath {
		t.Errorf("unexpected request path: %s", request.URL.Path)
	}
	if requestBody.Namespace != sent.Namespace || requestBody.Name != sent.Name ||
		!cmp.MapEq(requestBody.Inputs, sent.Inputs) {
		t.Errorf(
			"request body\n===actual===\n%+v\n===expected===\n%+v",
			requestBody, sent,
		)
	}
	if stored.MethodConfigVersion != 5 {
		t.Errorf("stored version: got %d, want 5", stored.MethodConfigVersion)
	}
}
