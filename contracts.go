package mashub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mashub/sdk-go/internal/apierrors"
)

// ContractsService manages smart contract projects, versions and
// deployments.
type ContractsService struct {
	client *Client
}

// CreateProject creates a smart contract project.
func (s *ContractsService) CreateProject(ctx context.Context, req CreateProjectRequest) (*Project, error) {
	return post[*Project](ctx, s.client, "/smart-contracts/projects", req)
}

// ListProjects returns one page of projects. Pages start at 1; page < 1
// requests the first page.
func (s *ContractsService) ListProjects(ctx context.Context, page int) (*Page[Project], error) {
	if page < 1 {
		page = 1
	}
	return list[Project](ctx, s.client, "/smart-contracts/projects?page="+strconv.Itoa(page))
}

// GetProject returns a project by slug.
func (s *ContractsService) GetProject(ctx context.Context, slug string) (*Project, error) {
	return call[*Project](ctx, s.client, "/smart-contracts/projects/"+pathSegment(slug))
}

// CreateVersion uploads sources for a new project version.
func (s *ContractsService) CreateVersion(ctx context.Context, slug string, req CreateVersionRequest) (*Version, error) {
	settings, err := json.Marshal(req.CompilerSettings)
	if err != nil {
		return nil, apierrors.Generic(fmt.Sprintf("encode compiler settings: %v", err))
	}

	form := NewForm().
		AddField("version", req.Version).
		AddField("compiler_settings", string(settings))
	for _, f := range req.ContractFiles {
		form.AddFile("contract_files[]", f.Filename, f.Content)
	}
	for _, pkg := range req.Packages {
		form.AddField("packages[]", pkg)
	}

	endpoint := fmt.Sprintf("/smart-contracts/projects/%s/versions", pathSegment(slug))
	return call[*Version](ctx, s.client, endpoint, WithMethod(http.MethodPost), WithForm(form))
}

// Deploy deploys a project version.
func (s *ContractsService) Deploy(ctx context.Context, slug, version string, req DeploymentRequest) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("/smart-contracts/projects/%s/versions/%s/deploy", pathSegment(slug), pathSegment(version))
	return post[json.RawMessage](ctx, s.client, endpoint, req)
}

// ListDeployed lists deployed contracts.
func (s *ContractsService) ListDeployed(ctx context.Context, filter DeployedFilter) (*Page[DeployedContract], error) {
	q := url.Values{}
	addIf(q, "filter-version", filter.Version)
	addIf(q, "filter-deployment_id", filter.DeploymentID)
	return list[DeployedContract](ctx, s.client, withQuery("/smart-contracts/deployed", q))
}

// GetContract returns details of a deployed contract.
func (s *ContractsService) GetContract(ctx context.Context, address string) (json.RawMessage, error) {
	return call[json.RawMessage](ctx, s.client, "/smart-contracts/"+pathSegment(address))
}

// Call invokes a read-only contract method.
func (s *ContractsService) Call(ctx context.Context, address string, req CallRequest) (json.RawMessage, error) {
	return post[json.RawMessage](ctx, s.client, "/smart-contracts/"+pathSegment(address)+"/call", req)
}

// Execute invokes a state-changing contract method.
func (s *ContractsService) Execute(ctx context.Context, address string, req ExecuteRequest) (json.RawMessage, error) {
	return post[json.RawMessage](ctx, s.client, "/smart-contracts/"+pathSegment(address)+"/execute", req)
}
