package mapping

import (
	"fmt"
	"strconv"

	"github.com/crdc-tools/studylink/internal/corrections"
	"github.com/crdc-tools/studylink/internal/idc"
	"github.com/crdc-tools/studylink/internal/registry"
	"github.com/crdc-tools/studylink/internal/tcia"
	"github.com/crdc-tools/studylink/internal/textnorm"
)

// BuildIDCMetadata locates the matched IDC collection and returns a
// copy with its description normalized to plain text. The id came from
// matching against this same list, so a miss is a consistency defect.
func BuildIDCMetadata(collectionID string, collections []idc.Collection, study registry.Study) (*idc.Collection, error) {
	for _, col := range collections {
		if col.CollectionID == collectionID {
			normalized := col
			normalized.Description = textnorm.Description(col.Description, study.Designation)
			return &normalized, nil
		}
	}

	return nil, fmt.Errorf("IDC collection %q disappeared from the listing", collectionID)
}

// BuildTCIAMetadata aggregates the series list for one collection:
// image counts are summed (a non-numeric count is surfaced as an
// error, never silently zero), patient ids are counted distinct, and
// modalities and body parts are collected distinct in first-seen
// order. Study corrections are applied last.
func BuildTCIAMetadata(collectionName string, data tcia.CollectionsData, study registry.Study) (*TCIAMetadata, error) {
	meta := &TCIAMetadata{}
	patients := make(map[string]struct{})
	modalities := make(map[string]struct{})
	bodyParts := make(map[string]struct{})

	for _, s := range data[collectionName] {
		count, err := strconv.Atoi(s.ImageCount)
		if err != nil {
			return nil, fmt.Errorf("series image count %q in collection %q: %w", s.ImageCount, collectionName, err)
		}
		meta.AggregateImageCount += count

		patients[s.PatientID] = struct{}{}

		if _, seen := modalities[s.Modality]; !seen {
			modalities[s.Modality] = struct{}{}
			meta.AggregateModality = append(meta.AggregateModality, s.Modality)
		}
		if _, seen := bodyParts[s.BodyPartExamined]; !seen {
			bodyParts[s.BodyPartExamined] = struct{}{}
			meta.AggregateBodyPartExamined = append(meta.AggregateBodyPartExamined, s.BodyPartExamined)
		}
	}
	meta.AggregatePatientID = len(patients)

	if fix, ok := corrections.For(study.Designation); ok {
		meta.AggregateModality = append(meta.AggregateModality, fix.ExtraModalities...)
		meta.AggregateImageCount += fix.ImageCountOffset
	}

	return meta, nil
}
