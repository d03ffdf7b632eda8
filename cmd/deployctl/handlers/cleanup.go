package handlers

import (
	"context"
	"fmt"

	"github.com/wallettrack/deployctl/internal/platform/gcloud"
	"github.com/wallettrack/deployctl/internal/ui"
)

// serviceRemover is the control-plane surface cleanup needs.
type serviceRemover interface {
	DescribeService(ctx context.Context, name, region string) (string, error)
	DeleteService(ctx context.Context, name, region string) error
}

// newServiceRemover is swappable for tests.
var newServiceRemover = func(project string) serviceRemover {
	return gcloud.NewClient(project)
}

// Cleanup deletes the deployed service. The connection secret and the
// warehouse table hold data and are deliberately left in place.
func Cleanup(ctx context.Context, configPath string, autoApprove bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cloud := newServiceRemover(cfg.Project)

	url, err := cloud.DescribeService(ctx, cfg.Service.Name, cfg.Region)
	if err != nil {
		return err
	}
	if url == "" {
		fmt.Printf("Service %s is not deployed; nothing to clean up.\n", cfg.Service.Name)
		return nil
	}

	title := fmt.Sprintf("Delete service %s in %s (%s)?", cfg.Service.Name, cfg.Project, cfg.Region)
	ok, err := ui.Confirm(ctx, title, autoApprove)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Aborted.")
		return nil
	}

	if err := cloud.DeleteService(ctx, cfg.Service.Name, cfg.Region); err != nil {
		return err
	}

	fmt.Printf("Service %s deleted. The secret %s and table %s were kept.\n",
		cfg.Service.Name, cfg.Secret.Name, cfg.Warehouse.TableRef(cfg.Project))
	return nil
}
