package emit

import (
	"encoding/json"
	"fmt"

	"mirwalk/internal/explore"
)

// JSON renders the module as indented JSON, the machine-readable twin of
// the markdown report.
func JSON(m *explore.Module) (string, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode explore data: %w", err)
	}
	return string(data) + "\n", nil
}
