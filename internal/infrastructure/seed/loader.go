// Package seed reads chart-of-accounts bootstrap files.
package seed

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/bibbank/bib/internal/application/dto"
)

// Decode parses a TOML chart made of [[office]], [[gl_account]] and
// [[mapping]] tables. Unknown keys are rejected so typos do not silently
// drop rows.
func Decode(r io.Reader, tenantID uuid.UUID) (dto.SeedChartRequest, error) {
	req := dto.SeedChartRequest{TenantID: tenantID}
	md, err := toml.NewDecoder(r).Decode(&req)
	if err != nil {
		return dto.SeedChartRequest{}, fmt.Errorf("decode chart: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return dto.SeedChartRequest{}, fmt.Errorf("decode chart: unknown keys %s", strings.Join(keys, ", "))
	}
	return req, nil
}

// LoadFile reads a chart file from disk.
func LoadFile(path string, tenantID uuid.UUID) (dto.SeedChartRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return dto.SeedChartRequest{}, fmt.Errorf("open chart: %w", err)
	}
	defer f.Close()

	req, err := Decode(f, tenantID)
	if err != nil {
		return dto.SeedChartRequest{}, fmt.Errorf("%s: %w", path, err)
	}
	return req, nil
}
