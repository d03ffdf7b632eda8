package steps

import (
	"fmt"

	"github.com/wallettrack/deployctl/internal/config"
	"github.com/wallettrack/deployctl/internal/provisioning"
)

// WarehouseTableStep ensures the analytics dataset and wallet table exist
// with the expected schema. An existing table whose schema diverges from the
// expected one is a remediation failure, never a silent overwrite.
type WarehouseTableStep struct {
	cloud CloudClient

	datasetMissing bool
	tableMissing   bool
}

// NewWarehouseTableStep creates the warehouse table step.
func NewWarehouseTableStep(cloud CloudClient) *WarehouseTableStep {
	return &WarehouseTableStep{cloud: cloud}
}

// Name implements provisioning.Step.
func (s *WarehouseTableStep) Name() string { return "warehouse-table" }

// Check implements provisioning.Step.
func (s *WarehouseTableStep) Check(ctx *provisioning.Context) (bool, string, error) {
	cfg := ctx.Config.Warehouse
	ref := cfg.TableRef(ctx.Config.Project)

	datasetExists, err := s.cloud.DatasetExists(ctx, cfg.Dataset)
	if err != nil {
		return false, "", err
	}
	s.datasetMissing = !datasetExists
	if s.datasetMissing {
		s.tableMissing = true
		return false, fmt.Sprintf("dataset %s absent", cfg.Dataset), nil
	}
	provisioning.LogResourceExists(ctx.Observer, s.Name(), "dataset", cfg.Dataset)

	tableExists, err := s.cloud.TableExists(ctx, ref)
	if err != nil {
		return false, "", err
	}
	s.tableMissing = !tableExists
	if s.tableMissing {
		return false, fmt.Sprintf("table %s absent", ref), nil
	}

	schema, err := s.cloud.TableSchema(ctx, ref)
	if err != nil {
		return false, "", err
	}
	if !config.SchemaEqual(schema, cfg.Schema) {
		return false, "", fmt.Errorf("table %s exists with a different schema; refusing to modify it", ref)
	}

	provisioning.LogResourceExists(ctx.Observer, s.Name(), "table", ref)
	return true, fmt.Sprintf("table %s with expected schema", ref), nil
}

// Remediate implements provisioning.Step.
func (s *WarehouseTableStep) Remediate(ctx *provisioning.Context) error {
	cfg := ctx.Config.Warehouse
	ref := cfg.TableRef(ctx.Config.Project)

	if s.datasetMissing {
		provisioning.LogResourceCreating(ctx.Observer, s.Name(), "dataset", cfg.Dataset)
		if err := s.cloud.CreateDataset(ctx, cfg.Dataset); err != nil {
			return err
		}
		provisioning.LogResourceCreated(ctx.Observer, s.Name(), "dataset", cfg.Dataset)
	}

	if s.tableMissing {
		provisioning.LogResourceCreating(ctx.Observer, s.Name(), "table", ref)
		if err := s.cloud.CreateTable(ctx, ref, cfg.Schema); err != nil {
			return err
		}
		provisioning.LogResourceCreated(ctx.Observer, s.Name(), "table", ref)
	}

	return nil
}

// Verify implements provisioning.Step.
func (s *WarehouseTableStep) Verify(ctx *provisioning.Context) error {
	cfg := ctx.Config.Warehouse
	ref := cfg.TableRef(ctx.Config.Project)

	exists, err := s.cloud.TableExists(ctx, ref)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("table %s still absent after creation", ref)
	}

	schema, err := s.cloud.TableSchema(ctx, ref)
	if err != nil {
		return err
	}
	if !config.SchemaEqual(schema, cfg.Schema) {
		return fmt.Errorf("table %s schema does not match the expected schema", ref)
	}
	return nil
}
