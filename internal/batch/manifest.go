package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one generated frame in the output manifest.
type ManifestEntry struct {
	Frame string `json:"frame"`
	Parts int    `json:"parts"`
	Image string `json:"image"`
}

// WriteManifest writes manifest.json listing the successfully generated
// normal maps to the output directory.
func WriteManifest(path string, results []Result) error {
	var entries []ManifestEntry
	for _, r := range results {
		if !r.Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			Frame: r.Frame,
			Parts: r.Parts,
			Image: r.Image,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
