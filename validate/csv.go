/*
csv.go - Plan export file parsing

PURPOSE:
  Reads the CSV plan export produced by the planning tool. The format is
  a header row plus one row per queued skill, preceded by '#' metadata
  lines describing clone status and booster injections, and optionally
  followed by a TOTAL summary row (which is skipped).

MALFORMED ROWS:
  A row that fails to parse is skipped and reported in ParseResult.Skipped
  rather than aborting the file; the validator's job is to survey an
  export, not to die on its first bad line.
*/
package validate

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/warp/training-engine/training"
)

// Metadata holds the '#' header lines of an export.
type Metadata struct {
	CloneStatus        string
	HasBoosterInjected bool
	Extra              map[string]string
}

// ParseResult is the outcome of reading one export file.
type ParseResult struct {
	Entries  []Entry
	Metadata Metadata
	Skipped  []string // raw lines that failed to parse
}

// expected header columns, by name
var columns = []string{
	"SkillName", "Level", "Rank", "PrimaryAttr", "SecondaryAttr",
	"PrimaryValue", "SecondaryValue", "BoosterBonus", "SPToTrain",
	"SPPerHourOmega", "TrainingRate", "TrainingTimeHours",
	"TrainingTimeFormatted", "OldTrainingTimeHours", "TimeSavedHours",
	"BoosterRemainingHours",
}

// ParseExport reads an export stream into entries plus metadata.
func ParseExport(r io.Reader) (*ParseResult, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}

	result := &ParseResult{Metadata: Metadata{Extra: map[string]string{}}}
	var dataLines []string
	for _, line := range strings.Split(strings.TrimPrefix(string(raw), "\ufeff"), "\n") {
		line = strings.TrimRight(line, "\r")
		switch {
		case strings.TrimSpace(line) == "":
		case strings.HasPrefix(line, "#"):
			parseMetadataLine(line, &result.Metadata)
		default:
			dataLines = append(dataLines, line)
		}
	}
	if len(dataLines) == 0 {
		return result, nil
	}

	reader := csv.NewReader(strings.NewReader(strings.Join(dataLines, "\n")))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse export csv: %w", err)
	}

	index, err := headerIndex(records[0])
	if err != nil {
		return nil, err
	}

	for _, record := range records[1:] {
		name := field(record, index, "SkillName")
		if name == "" || name == "TOTAL" {
			continue
		}
		entry, err := parseEntry(record, index)
		if err != nil {
			result.Skipped = append(result.Skipped, strings.Join(record, ","))
			continue
		}
		result.Entries = append(result.Entries, entry)
	}
	return result, nil
}

func parseMetadataLine(line string, md *Metadata) {
	line = strings.TrimSpace(strings.TrimPrefix(line, "#"))
	for _, part := range strings.Split(line, ",") {
		key, value, found := strings.Cut(part, ":")
		if !found {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		switch key {
		case "CloneStatus":
			md.CloneStatus = value
		case "HasBoosterInjections":
			md.HasBoosterInjected = strings.EqualFold(value, "true")
		default:
			md.Extra[key] = value
		}
	}
}

func headerIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(col)] = i
	}
	for _, col := range columns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("export missing column %q", col)
		}
	}
	return index, nil
}

func field(record []string, index map[string]int, name string) string {
	i := index[name]
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func parseEntry(record []string, index map[string]int) (Entry, error) {
	intField := func(name string) (int, error) {
		return strconv.Atoi(field(record, index, name))
	}
	int64Field := func(name string) (int64, error) {
		return strconv.ParseInt(field(record, index, name), 10, 64)
	}
	floatField := func(name string) (float64, error) {
		s := field(record, index, name)
		if s == "inf" || s == "∞" {
			return training.InfiniteHours, nil
		}
		return strconv.ParseFloat(s, 64)
	}

	var entry Entry
	var err error
	entry.SkillName = field(record, index, "SkillName")
	entry.PrimaryAttr = field(record, index, "PrimaryAttr")
	entry.SecondaryAttr = field(record, index, "SecondaryAttr")
	entry.TrainingTimeFormatted = field(record, index, "TrainingTimeFormatted")

	if entry.Level, err = intField("Level"); err != nil {
		return entry, err
	}
	if entry.Rank, err = intField("Rank"); err != nil {
		return entry, err
	}
	if entry.BoosterBonus, err = intField("BoosterBonus"); err != nil {
		return entry, err
	}
	if entry.SPToTrain, err = int64Field("SPToTrain"); err != nil {
		return entry, err
	}
	if entry.PrimaryValue, err = floatField("PrimaryValue"); err != nil {
		return entry, err
	}
	if entry.SecondaryValue, err = floatField("SecondaryValue"); err != nil {
		return entry, err
	}
	if entry.SPPerHourOmega, err = floatField("SPPerHourOmega"); err != nil {
		return entry, err
	}
	if entry.TrainingRate, err = floatField("TrainingRate"); err != nil {
		return entry, err
	}
	if entry.TrainingTimeHours, err = floatField("TrainingTimeHours"); err != nil {
		return entry, err
	}
	if entry.OldTrainingTimeHours, err = floatField("OldTrainingTimeHours"); err != nil {
		return entry, err
	}
	if entry.TimeSavedHours, err = floatField("TimeSavedHours"); err != nil {
		return entry, err
	}
	if entry.BoosterRemainingHours, err = floatField("BoosterRemainingHours"); err != nil {
		return entry, err
	}
	return entry, nil
}
