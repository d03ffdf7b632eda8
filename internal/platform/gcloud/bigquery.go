package gcloud

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wallettrack/deployctl/internal/config"
)

// bqRef converts a dotted table reference (project.dataset.table) into the
// colon-separated form the bq CLI expects (project:dataset.table).
func bqRef(ref string) string {
	return strings.Replace(ref, ".", ":", 1)
}

// DatasetExists reports whether the dataset exists.
func (c *Client) DatasetExists(ctx context.Context, dataset string) (bool, error) {
	_, err := c.run.Run(ctx, "bq",
		"show",
		"--project_id", c.project,
		"--format=none",
		c.project+":"+dataset)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to show dataset %s: %w", dataset, err)
	}
	return true, nil
}

// CreateDataset creates the dataset.
func (c *Client) CreateDataset(ctx context.Context, dataset string) error {
	_, err := c.run.Run(ctx, "bq",
		"mk",
		"--project_id", c.project,
		"--dataset",
		c.project+":"+dataset)
	if err != nil {
		return fmt.Errorf("failed to create dataset %s: %w", dataset, err)
	}
	return nil
}

// TableExists reports whether the table exists.
func (c *Client) TableExists(ctx context.Context, ref string) (bool, error) {
	_, err := c.run.Run(ctx, "bq",
		"show",
		"--project_id", c.project,
		"--format=none",
		bqRef(ref))
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to show table %s: %w", ref, err)
	}
	return true, nil
}

// bqTableInfo mirrors the JSON shape of bq show --format=json.
type bqTableInfo struct {
	Schema struct {
		Fields []config.SchemaField `json:"fields"`
	} `json:"schema"`
}

// TableSchema returns the current schema of the table.
func (c *Client) TableSchema(ctx context.Context, ref string) ([]config.SchemaField, error) {
	out, err := c.run.Run(ctx, "bq",
		"show",
		"--project_id", c.project,
		"--format=json",
		bqRef(ref))
	if err != nil {
		return nil, fmt.Errorf("failed to read schema of %s: %w", ref, err)
	}

	var info bqTableInfo
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		return nil, fmt.Errorf("failed to parse schema of %s: %w", ref, err)
	}
	return info.Schema.Fields, nil
}

// CreateTable creates the table with the given schema. The schema is written
// to a temporary JSON file because the bq CLI's inline schema syntax cannot
// express column modes.
func (c *Client) CreateTable(ctx context.Context, ref string, schema []config.SchemaField) error {
	data, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	schemaFile := filepath.Join(os.TempDir(), "deployctl-schema.json")
	if err := os.WriteFile(schemaFile, data, 0o600); err != nil {
		return fmt.Errorf("failed to write schema file: %w", err)
	}
	defer os.Remove(schemaFile)

	_, err = c.run.Run(ctx, "bq",
		"mk",
		"--project_id", c.project,
		"--table",
		"--schema", schemaFile,
		bqRef(ref))
	if err != nil {
		return fmt.Errorf("failed to create table %s: %w", ref, err)
	}
	return nil
}
