package mapping

import (
	"testing"

	"github.com/crdc-tools/studylink/internal/idc"
	"github.com/crdc-tools/studylink/internal/registry"
	"github.com/crdc-tools/studylink/internal/tcia"
)

var testMatcher = Matcher{
	IDCCollectionURL:  "https://portal.imaging.example/collections/",
	TCIACollectionURL: "https://www.cancerimagingarchive.example/collection/",
}

func TestMatchStudyNoMatches(t *testing.T) {
	study := registry.Study{Designation: "ZZZZ99", CRDCNodeCount: 1}
	collections := []idc.Collection{{CollectionID: "icdc_glioma01"}}
	names := []string{"ICDC-Glioma"}
	data := tcia.CollectionsData{"ICDC-Glioma": {{ImageCount: "1", PatientID: "p1"}}}

	links, err := testMatcher.MatchStudy(study, collections, names, data)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(links) != 0 {
		t.Errorf("Expected no links, got %v", links)
	}
}

func TestMatchStudyOrdersIDCBeforeTCIA(t *testing.T) {
	study := registry.Study{Designation: "GLIOMA01", CRDCNodeCount: 1}
	collections := []idc.Collection{
		{CollectionID: "icdc_glioma01", Description: "Glioma imaging."},
	}
	names := []string{"ICDC-GLIOMA01"}
	data := tcia.CollectionsData{
		"ICDC-GLIOMA01": {
			{ImageCount: "10", PatientID: "p1", Modality: "MR", BodyPartExamined: "HEAD"},
		},
	}

	links, err := testMatcher.MatchStudy(study, collections, names, data)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(links) != 2 {
		t.Fatalf("Expected 2 links, got %d", len(links))
	}
	if links[0].Repository != RepositoryIDC {
		t.Errorf("Expected IDC link first, got %s", links[0].Repository)
	}
	if links[0].URL != testMatcher.IDCCollectionURL+"icdc_glioma01" {
		t.Errorf("Unexpected IDC URL %q", links[0].URL)
	}
	if links[1].Repository != RepositoryTCIA {
		t.Errorf("Expected TCIA link second, got %s", links[1].Repository)
	}
	if links[1].URL != testMatcher.TCIACollectionURL+"ICDC-GLIOMA01" {
		t.Errorf("Unexpected TCIA URL %q", links[1].URL)
	}

	if _, ok := links[0].Metadata.(*idc.Collection); !ok {
		t.Errorf("Expected IDC metadata, got %T", links[0].Metadata)
	}
	if _, ok := links[1].Metadata.(*TCIAMetadata); !ok {
		t.Errorf("Expected TCIA metadata, got %T", links[1].Metadata)
	}
}

func TestMatchStudySkipsEmptySeries(t *testing.T) {
	study := registry.Study{Designation: "OSA01", CRDCNodeCount: 1}
	names := []string{"ICDC-OSA01"}
	data := tcia.CollectionsData{"ICDC-OSA01": {}}

	links, err := testMatcher.MatchStudy(study, nil, names, data)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(links) != 0 {
		t.Errorf("Expected empty series match to be skipped, got %v", links)
	}
}

func TestCollect(t *testing.T) {
	studies := []registry.Study{
		{Designation: "GLIOMA01", ImageCollectionCount: 2, CRDCNodeCount: 1},
		{Designation: "OSA01", ImageCollectionCount: 1, CRDCNodeCount: 0},
		{Designation: "MEL01", ImageCollectionCount: 1, CRDCNodeCount: 3},
	}
	collections := []idc.Collection{
		{CollectionID: "icdc_glioma01", Description: "Glioma imaging."},
		{CollectionID: "icdc_osa01", Description: "Osteosarcoma imaging."},
		{CollectionID: "icdc_mel01", Description: "Melanoma imaging."},
	}

	mappings, err := testMatcher.Collect(studies, collections, nil, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// OSA01 has a match but zero CRDC nodes; it never reaches output.
	if len(mappings) != 2 {
		t.Fatalf("Expected 2 mappings, got %d", len(mappings))
	}
	if mappings[0].StudyDesignation != "GLIOMA01" || mappings[1].StudyDesignation != "MEL01" {
		t.Errorf("Expected input order preserved, got %q then %q",
			mappings[0].StudyDesignation, mappings[1].StudyDesignation)
	}
	if mappings[1].CRDCNodeCount != 3 || mappings[1].ImageCollectionCount != 1 {
		t.Errorf("Study counters not carried through: %+v", mappings[1])
	}
	if len(mappings[0].Links) == 0 {
		t.Error("Expected GLIOMA01 to link its IDC collection")
	}
}
