package corrections

// Correction is an additive fixup for a single study with known
// upstream data defects. Entries are keyed by exact designation and
// must never generalize to other studies; new corrections are new
// table rows, not new conditionals.
type Correction struct {
	// CleanDescription enables the citation-debris cleanup in textnorm.
	CleanDescription bool
	// TrailingSuffix is stripped from the end of the cleaned description.
	TrailingSuffix string
	// ExtraModalities are appended to the aggregated modality list.
	ExtraModalities []string
	// ImageCountOffset is added to the aggregated image count.
	ImageCountOffset int
}

// GLIOMA01's IDC description arrives with literature-citation debris,
// and its 84 histopathology images are missing from TCIA's catalog.
var table = map[string]Correction{
	"GLIOMA01": {
		CleanDescription: true,
		TrailingSuffix:   "(GLIOMA01)",
		ExtraModalities:  []string{"Histopathology"},
		ImageCountOffset: 84,
	},
}

// For returns the correction for a study designation, if one exists.
func For(designation string) (Correction, bool) {
	c, ok := table[designation]
	return c, ok
}
