// Package report renders collected study mappings for humans and for
// downstream tooling.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"

	"github.com/crdc-tools/studylink/internal/mapping"
)

// LinkRow is one flattened study-to-collection link for tabular
// export.
type LinkRow struct {
	StudyDesignation     string `json:"study_designation" parquet:"study_designation"`
	CRDCNodeCount        int    `json:"crdc_node_count" parquet:"crdc_node_count"`
	ImageCollectionCount int    `json:"image_collection_count" parquet:"image_collection_count"`
	Repository           string `json:"repository" parquet:"repository"`
	URL                  string `json:"url" parquet:"url"`
}

// mappingDoc is the YAML document shape.
type mappingDoc struct {
	Generated string                 `yaml:"generated"`
	Studies   int                    `yaml:"studies"`
	Mappings  []mapping.StudyMapping `yaml:"mappings"`
}

// Flatten expands mappings into one row per link.
func Flatten(mappings []mapping.StudyMapping) []LinkRow {
	var rows []LinkRow
	for _, m := range mappings {
		for _, link := range m.Links {
			rows = append(rows, LinkRow{
				StudyDesignation:     m.StudyDesignation,
				CRDCNodeCount:        m.CRDCNodeCount,
				ImageCollectionCount: m.ImageCollectionCount,
				Repository:           string(link.Repository),
				URL:                  link.URL,
			})
		}
	}

	return rows
}

// Save writes the mapping to a file, picking the format from the
// extension (.json, .yaml/.yml, or .parquet).
func Save(mappings []mapping.StudyMapping, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SaveJSON(mappings, path)
	case ".yaml", ".yml":
		return SaveYAML(mappings, path)
	case ".parquet":
		return SaveParquet(mappings, path)
	default:
		return fmt.Errorf("unsupported output format: %s (supported: .json, .yaml, .parquet)", path)
	}
}

// SaveJSON writes the full nested mapping as indented JSON.
func SaveJSON(mappings []mapping.StudyMapping, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(mappings); err != nil {
		return fmt.Errorf("failed to encode mappings to JSON: %w", err)
	}

	return nil
}

// SaveYAML writes the full nested mapping under a timestamped header.
func SaveYAML(mappings []mapping.StudyMapping, path string) error {
	doc := mappingDoc{
		Generated: time.Now().Format("2006-01-02_15-04-05"),
		Studies:   len(mappings),
		Mappings:  mappings,
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("failed to marshal mappings to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write YAML file: %w", err)
	}

	return nil
}

// SaveParquet writes flattened link rows to a Parquet file.
func SaveParquet(mappings []mapping.StudyMapping, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[LinkRow](file)
	if _, err := writer.Write(Flatten(mappings)); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}

	return nil
}

// PrintSummary prints a human-readable summary of the collected
// mappings.
func PrintSummary(mappings []mapping.StudyMapping) {
	idcLinks, tciaLinks := 0, 0
	for _, m := range mappings {
		for _, link := range m.Links {
			switch link.Repository {
			case mapping.RepositoryIDC:
				idcLinks++
			case mapping.RepositoryTCIA:
				tciaLinks++
			}
		}
	}

	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Println("STUDY MAPPING SUMMARY")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Generated: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Printf("Studies Mapped: %d\n", len(mappings))
	fmt.Printf("IDC Links: %d\n", idcLinks)
	fmt.Printf("TCIA Links: %d\n", tciaLinks)

	for _, m := range mappings {
		fmt.Println(strings.Repeat("-", 70))
		fmt.Printf("%s (image collections: %d, CRDC nodes: %d)\n",
			m.StudyDesignation, m.ImageCollectionCount, m.CRDCNodeCount)
		if len(m.Links) == 0 {
			fmt.Println("  no matched collections")
			continue
		}
		for _, link := range m.Links {
			fmt.Printf("  [%s] %s\n", link.Repository, link.URL)
		}
	}
	fmt.Println(strings.Repeat("=", 70))
}
