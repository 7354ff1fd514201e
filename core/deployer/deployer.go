package deployer

import (
	"context"
	"os"
	"path/filepath"

	"github.com/sudheer-sanagala/oic-deploy/core/infra/logging"
	"github.com/sudheer-sanagala/oic-deploy/core/oic"
)

const component = "deployer"

// API is the slice of the OIC client the orchestrator uses.
type API interface {
	ImportIntegration(ctx context.Context, archivePath string) (*oic.ImportResult, error)
	ImportProject(ctx context.Context, archivePath string) error
	Activate(ctx context.Context, integrationID string, asyncMode bool) error
}

// Result records the outcome for one archive.
type Result struct {
	Archive    string
	Ok         bool
	Diagnostic string
}

// Deployer runs archives through import and activation sequentially. One
// failing archive never stops the rest of the run.
type Deployer struct {
	client API
	async  bool
}

func New(client API, asyncActivation bool) *Deployer {
	return &Deployer{client: client, async: asyncActivation}
}

// DeployIntegrations imports and activates each .iar archive in order.
// Activation runs only when the import produced a usable identifier.
func (d *Deployer) DeployIntegrations(ctx context.Context, files []string) []Result {
	results := make([]Result, 0, len(files))
	for _, file := range files {
		results = append(results, d.deployIntegration(ctx, file))
	}
	return results
}

func (d *Deployer) deployIntegration(ctx context.Context, file string) Result {
	basename := filepath.Base(file)
	if _, err := os.Stat(file); err != nil {
		logging.Error(component, "archive not found, skipping", "archive", basename)
		return Result{Archive: basename, Diagnostic: "archive not found"}
	}

	logging.Info(component, "importing integration", "archive", basename)
	imported, err := d.client.ImportIntegration(ctx, file)
	if err != nil {
		d.logFailure("import failed", basename, err)
		return Result{Archive: basename, Diagnostic: err.Error()}
	}
	if imported.Replaced {
		logging.Info(component, "existing integration replaced", "archive", basename, "id", imported.IntegrationID)
	} else if imported.Derived {
		logging.Info(component, "identifier derived from filename", "archive", basename, "id", imported.IntegrationID)
	} else {
		logging.Info(component, "imported", "archive", basename, "id", imported.IntegrationID)
	}

	logging.Info(component, "activating", "id", imported.IntegrationID, "async", d.async)
	if err := d.client.Activate(ctx, imported.IntegrationID, d.async); err != nil {
		d.logFailure("activation failed", basename, err)
		return Result{Archive: basename, Diagnostic: err.Error()}
	}
	return Result{Archive: basename, Ok: true}
}

// ImportProjects imports each .car archive in order. Projects have no
// activation step.
func (d *Deployer) ImportProjects(ctx context.Context, files []string) []Result {
	results := make([]Result, 0, len(files))
	for _, file := range files {
		basename := filepath.Base(file)
		if _, err := os.Stat(file); err != nil {
			logging.Error(component, "archive not found, skipping", "archive", basename)
			results = append(results, Result{Archive: basename, Diagnostic: "archive not found"})
			continue
		}
		logging.Info(component, "importing project", "archive", basename)
		if err := d.client.ImportProject(ctx, file); err != nil {
			d.logFailure("project import failed", basename, err)
			results = append(results, Result{Archive: basename, Diagnostic: err.Error()})
			continue
		}
		results = append(results, Result{Archive: basename, Ok: true})
	}
	return results
}

func (d *Deployer) logFailure(msg, basename string, err error) {
	if oic.IsUnauthorized(err) {
		logging.Error(component, "authentication failed, check token validity", "archive", basename)
		return
	}
	if kind, ok := oic.FailureOf(err); ok {
		logging.Error(component, msg, "archive", basename, "kind", kind, "error", err)
		return
	}
	logging.Error(component, msg, "archive", basename, "error", err)
}

// Succeeded reports whether every archive in the run passed.
func Succeeded(results []Result) bool {
	for _, r := range results {
		if !r.Ok {
			return false
		}
	}
	return true
}
