// Package mapping reconciles registry studies with imaging-archive
// collections: fuzzy matching, metadata aggregation, and the pipeline
// that drives both.
package mapping

// Repository identifies which external archive a match came from.
type Repository string

const (
	RepositoryIDC  Repository = "IDC"
	RepositoryTCIA Repository = "TCIA"
)

// MatchResult is one matched collection for a study. Metadata is a
// *idc.Collection for IDC matches and a *TCIAMetadata for TCIA.
type MatchResult struct {
	Repository Repository `json:"repository"`
	URL        string     `json:"url"`
	Metadata   any        `json:"metadata"`
}

// TCIAMetadata is the normalized aggregate over a collection's series
// records. JSON field names follow the downstream contract.
type TCIAMetadata struct {
	AggregatePatientID        int      `json:"Aggregate_PatientID"`
	AggregateModality         []string `json:"Aggregate_Modality"`
	AggregateBodyPartExamined []string `json:"Aggregate_BodyPartExamined"`
	AggregateImageCount       int      `json:"Aggregate_ImageCount"`
}

// StudyMapping is the final per-study output unit. Only studies with
// at least one CRDC node are emitted.
type StudyMapping struct {
	StudyDesignation     string        `json:"studyDesignation"`
	CRDCNodeCount        int           `json:"crdcNodeCount"`
	ImageCollectionCount int           `json:"imageCollectionCount"`
	Links                []MatchResult `json:"links"`
}
