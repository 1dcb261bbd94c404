package mapping

import (
	"context"
	"errors"
	"testing"

	"github.com/crdc-tools/studylink/internal/idc"
	"github.com/crdc-tools/studylink/internal/registry"
	"github.com/crdc-tools/studylink/internal/tcia"
)

type fakeStudySource struct {
	studies []registry.Study
	err     error
}

func (f fakeStudySource) Studies(ctx context.Context) ([]registry.Study, error) {
	return f.studies, f.err
}

type fakeIDCSource struct {
	collections []idc.Collection
	err         error
}

func (f fakeIDCSource) Collections(ctx context.Context) ([]idc.Collection, error) {
	return f.collections, f.err
}

type fakeTCIASource struct {
	names []string
	err   error
	data  tcia.CollectionsData
}

func (f fakeTCIASource) CollectionNames(ctx context.Context) ([]string, error) {
	return f.names, f.err
}

func (f fakeTCIASource) CollectionsData(ctx context.Context, names []string) tcia.CollectionsData {
	data := make(tcia.CollectionsData, len(names))
	for _, name := range names {
		data[name] = f.data[name]
	}
	return data
}

func newTestRunner(studies fakeStudySource, idcSrc fakeIDCSource, tciaSrc fakeTCIASource) *Runner {
	return &Runner{
		Registry: studies,
		IDC:      idcSrc,
		TCIA:     tciaSrc,
		Matcher:  testMatcher,
	}
}

func TestRun(t *testing.T) {
	runner := newTestRunner(
		fakeStudySource{studies: []registry.Study{
			{Designation: "GLIOMA01", ImageCollectionCount: 2, CRDCNodeCount: 1},
		}},
		fakeIDCSource{collections: []idc.Collection{
			{CollectionID: "icdc_glioma01", Description: "Glioma imaging."},
		}},
		fakeTCIASource{
			names: []string{"ICDC-GLIOMA01"},
			data: tcia.CollectionsData{
				"ICDC-GLIOMA01": {{ImageCount: "10", PatientID: "p1", Modality: "MR", BodyPartExamined: "HEAD"}},
			},
		},
	)

	mappings, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(mappings) != 1 {
		t.Fatalf("Expected 1 mapping, got %d", len(mappings))
	}
	if len(mappings[0].Links) != 2 {
		t.Errorf("Expected links from both archives, got %d", len(mappings[0].Links))
	}
}

// A registry failure is fatal; no partial result comes back.
func TestRunRegistryFailureIsFatal(t *testing.T) {
	runner := newTestRunner(
		fakeStudySource{err: registry.ErrBackendUnreachable},
		fakeIDCSource{},
		fakeTCIASource{},
	)

	mappings, err := runner.Run(context.Background())
	if err == nil {
		t.Fatal("Expected an error")
	}
	if !errors.Is(err, registry.ErrBackendUnreachable) {
		t.Errorf("Expected ErrBackendUnreachable, got %v", err)
	}
	if mappings != nil {
		t.Errorf("Expected no mappings, got %v", mappings)
	}
}

// An IDC outage degrades to an empty listing; studies matched only via
// TCIA still come through.
func TestRunDegradesOnIDCFailure(t *testing.T) {
	runner := newTestRunner(
		fakeStudySource{studies: []registry.Study{
			{Designation: "GLIOMA01", ImageCollectionCount: 2, CRDCNodeCount: 1},
		}},
		fakeIDCSource{err: errors.New("connection refused")},
		fakeTCIASource{
			names: []string{"ICDC-GLIOMA01"},
			data: tcia.CollectionsData{
				"ICDC-GLIOMA01": {{ImageCount: "10", PatientID: "p1", Modality: "MR", BodyPartExamined: "HEAD"}},
			},
		},
	)

	mappings, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected the run to complete, got %v", err)
	}

	if len(mappings) != 1 {
		t.Fatalf("Expected 1 mapping, got %d", len(mappings))
	}
	for _, link := range mappings[0].Links {
		if link.Repository != RepositoryTCIA {
			t.Errorf("Expected only TCIA links, got %s", link.Repository)
		}
	}
	if len(mappings[0].Links) != 1 {
		t.Errorf("Expected 1 TCIA link, got %d", len(mappings[0].Links))
	}
}

// Both archives failing still yields the qualifying studies, just with
// no links.
func TestRunDegradesOnBothArchiveFailures(t *testing.T) {
	runner := newTestRunner(
		fakeStudySource{studies: []registry.Study{
			{Designation: "GLIOMA01", ImageCollectionCount: 2, CRDCNodeCount: 1},
		}},
		fakeIDCSource{err: errors.New("connection refused")},
		fakeTCIASource{err: errors.New("connection refused")},
	)

	mappings, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected the run to complete, got %v", err)
	}
	if len(mappings) != 1 {
		t.Fatalf("Expected 1 mapping, got %d", len(mappings))
	}
	if len(mappings[0].Links) != 0 {
		t.Errorf("Expected no links, got %v", mappings[0].Links)
	}
}
