package cmd

import (
	"fmt"

	"invoicer/internal/config"
	"invoicer/internal/invoice"
	"invoicer/internal/ledger"
	"invoicer/internal/render"
)

// openStore loads configuration and the ledger. Enough for the query-only
// commands, which never touch the template.
func openStore() (*config.Config, *ledger.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	store, err := ledger.Open(cfg.LedgerPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open ledger: %w", err)
	}

	return cfg, store, nil
}

// newComposer additionally wires the template renderer. A missing template
// is fatal here, before any number is allocated.
func newComposer(cfg *config.Config, store *ledger.Store) (*invoice.Composer, error) {
	renderer, err := render.NewService(cfg.TemplatePath, cfg.OutputDir)
	if err != nil {
		return nil, err
	}
	return invoice.NewComposer(store, renderer), nil
}
