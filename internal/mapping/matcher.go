package mapping

import (
	"github.com/crdc-tools/studylink/internal/fuzzy"
	"github.com/crdc-tools/studylink/internal/idc"
	"github.com/crdc-tools/studylink/internal/registry"
	"github.com/crdc-tools/studylink/internal/tcia"
)

// Matcher links one study to collections in both archives. The URL
// fields are the archives' web UI bases used to build outbound links.
type Matcher struct {
	IDCCollectionURL  string
	TCIACollectionURL string
}

// MatchStudy fuzzy-matches the study designation against IDC
// collection ids and TCIA collection names and builds a MatchResult
// per hit: all IDC results first, then all TCIA results. TCIA matches
// whose series list is empty are skipped outright.
func (m *Matcher) MatchStudy(study registry.Study, idcCollections []idc.Collection, tciaNames []string, tciaData tcia.CollectionsData) ([]MatchResult, error) {
	ids := make([]string, len(idcCollections))
	for i, col := range idcCollections {
		ids[i] = col.CollectionID
	}

	var links []MatchResult

	for _, id := range fuzzy.Match(study.Designation, ids) {
		meta, err := BuildIDCMetadata(id, idcCollections, study)
		if err != nil {
			return nil, err
		}
		links = append(links, MatchResult{
			Repository: RepositoryIDC,
			URL:        m.IDCCollectionURL + id,
			Metadata:   meta,
		})
	}

	for _, name := range fuzzy.Match(study.Designation, tciaNames) {
		if len(tciaData[name]) == 0 {
			continue
		}
		meta, err := BuildTCIAMetadata(name, tciaData, study)
		if err != nil {
			return nil, err
		}
		links = append(links, MatchResult{
			Repository: RepositoryTCIA,
			URL:        m.TCIACollectionURL + name,
			Metadata:   meta,
		})
	}

	return links, nil
}

// Collect runs MatchStudy over every study in input order and emits a
// StudyMapping per study linked to at least one CRDC node. Studies
// with a zero node count are dropped silently, matches or not.
func (m *Matcher) Collect(studies []registry.Study, idcCollections []idc.Collection, tciaNames []string, tciaData tcia.CollectionsData) ([]StudyMapping, error) {
	mappings := make([]StudyMapping, 0, len(studies))

	for _, study := range studies {
		links, err := m.MatchStudy(study, idcCollections, tciaNames, tciaData)
		if err != nil {
			return nil, err
		}

		if study.CRDCNodeCount <= 0 {
			continue
		}

		mappings = append(mappings, StudyMapping{
			StudyDesignation:     study.Designation,
			CRDCNodeCount:        study.CRDCNodeCount,
			ImageCollectionCount: study.ImageCollectionCount,
			Links:                links,
		})
	}

	return mappings, nil
}
