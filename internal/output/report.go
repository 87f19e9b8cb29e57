package output

import (
	"fmt"
	"strings"

	"github.com/itrdesk/tax-engine/internal/domain"
)

// GenerateReport writes the report in the requested format into dir and returns
// the written file names. "all" writes the verbose console, detailed csv and html reports.
func GenerateReport(report *domain.ComputationReport, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var files []string
		for _, name := range []string{"console", "detailed-csv", "html"} {
			f := GetFormatterByName(name)
			file, err := WriteFormatted(f, report, dir, fileExtension(name))
			if err != nil {
				return files, err
			}
			files = append(files, file)
		}
		return files, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		// enrich error with available formatters and aliases
		return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	file, err := WriteFormatted(f, report, dir, fileExtension(f.Name()))
	if err != nil {
		return nil, err
	}
	return []string{file}, nil
}
