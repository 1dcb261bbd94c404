package mapping

import (
	"context"
	"log/slog"

	"github.com/crdc-tools/studylink/internal/config"
	"github.com/crdc-tools/studylink/internal/idc"
	"github.com/crdc-tools/studylink/internal/registry"
	"github.com/crdc-tools/studylink/internal/tcia"
)

// StudySource yields the registry's study list.
type StudySource interface {
	Studies(ctx context.Context) ([]registry.Study, error)
}

// IDCSource yields the filtered IDC collection listing.
type IDCSource interface {
	Collections(ctx context.Context) ([]idc.Collection, error)
}

// TCIASource yields TCIA collection names and their series data.
type TCIASource interface {
	CollectionNames(ctx context.Context) ([]string, error)
	CollectionsData(ctx context.Context, names []string) tcia.CollectionsData
}

// Runner wires the three data sources to the matcher and drives one
// reconciliation pass.
type Runner struct {
	Registry StudySource
	IDC      IDCSource
	TCIA     TCIASource
	Matcher  Matcher
}

// NewRunner builds a Runner backed by live archive clients.
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{
		Registry: registry.NewClient(cfg.RegistryAPIURL, cfg.HTTPTimeout),
		IDC:      idc.NewClient(cfg.IDCAPIURL, cfg.HTTPTimeout),
		TCIA:     tcia.NewClient(cfg.TCIAAPIURL, cfg.HTTPTimeout, cfg.SeriesConcurrency),
		Matcher: Matcher{
			IDCCollectionURL:  cfg.IDCCollectionURL,
			TCIACollectionURL: cfg.TCIACollectionURL,
		},
	}
}

// Run fetches all three sources once and collects the study mappings.
// A registry failure aborts the run; archive fetch failures degrade to
// empty data and the pipeline continues with fewer matches. Errors are
// returned as values, never panicked.
func (r *Runner) Run(ctx context.Context) ([]StudyMapping, error) {
	studies, err := r.Registry.Studies(ctx)
	if err != nil {
		slog.Error("Primary study query failed", "err", err)
		return nil, err
	}
	slog.Info("Fetched studies", "count", len(studies))

	idcCollections, err := r.IDC.Collections(ctx)
	if err != nil {
		slog.Warn("IDC collection fetch failed, continuing with none", "err", err)
		idcCollections = nil
	} else {
		slog.Info("Fetched IDC collections", "count", len(idcCollections))
	}

	tciaNames, err := r.TCIA.CollectionNames(ctx)
	if err != nil {
		slog.Warn("TCIA collection fetch failed, continuing with none", "err", err)
		tciaNames = nil
	} else {
		slog.Info("Fetched TCIA collections", "count", len(tciaNames))
	}

	tciaData := r.TCIA.CollectionsData(ctx, tciaNames)

	mappings, err := r.Matcher.Collect(studies, idcCollections, tciaNames, tciaData)
	if err != nil {
		slog.Error("Mapping collection failed", "err", err)
		return nil, err
	}
	slog.Info("Collected study mappings", "count", len(mappings))

	return mappings, nil
}
