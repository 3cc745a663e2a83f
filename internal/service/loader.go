package service

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/dojo-service/internal/domain"
	apperrors "github.com/spec-kit/dojo-service/pkg/util"
)

// LoadSummary reports the outcome of a bulk people import.
type LoadSummary struct {
	Processed int
	Skipped   int
	Warnings  []string
}

// personRecord is one parsed line of the load file.
type personRecord struct {
	name               string
	personType         string
	wantsAccommodation string
}

// LoadPeople imports people from a text file, one per line:
//
//	NAME [NAME...] FELLOW|STAFF [Y|N]
//
// The accommodation token is optional and defaults to N. Blank lines and
// lines starting with '#' are ignored. A malformed line is skipped with a
// recorded warning and never aborts the rest of the load.
func (s *AllocationService) LoadPeople(ctx context.Context, filename string) (*LoadSummary, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	defer file.Close()

	summary := &LoadSummary{}
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		record, err := parseRecord(line)
		if err == nil {
			_, err = s.AddPerson(ctx, record.name, record.personType, record.wantsAccommodation)
		}
		if err != nil {
			summary.Skipped++
			warning := apperrors.NewMalformedRecord(lineNo, err.Error()).Error()
			summary.Warnings = append(summary.Warnings, warning)
			s.logger.Warn("skipped record",
				zap.Int("line", lineNo),
				zap.String("content", line),
				zap.Error(err))
			continue
		}
		summary.Processed++
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.logger.Info("people loaded",
		zap.String("file", filename),
		zap.Int("processed", summary.Processed),
		zap.Int("skipped", summary.Skipped))
	return summary, nil
}

// parseRecord splits a load-file line. The trailing tokens are the optional
// accommodation flag and the role; everything before them is the name.
func parseRecord(line string) (personRecord, error) {
	parts := strings.Fields(line)
	if len(parts) < 2 {
		return personRecord{}, fmt.Errorf("expected at least a name and a person type")
	}

	record := personRecord{wantsAccommodation: "N"}
	last := strings.ToUpper(parts[len(parts)-1])
	if last == "Y" || last == "N" {
		if len(parts) < 3 {
			return personRecord{}, fmt.Errorf("expected at least a name and a person type")
		}
		record.wantsAccommodation = last
		record.personType = parts[len(parts)-2]
		record.name = strings.Join(parts[:len(parts)-2], " ")
	} else {
		record.personType = parts[len(parts)-1]
		record.name = strings.Join(parts[:len(parts)-1], " ")
	}

	if _, ok := domain.ParsePersonRole(record.personType); !ok {
		return personRecord{}, fmt.Errorf("unknown person type %q", record.personType)
	}
	return record, nil
}
