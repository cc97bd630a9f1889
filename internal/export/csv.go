package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"city-stats/internal/domain"
)

// Flat CSV header.
var flatHeader = []string{"field", "value"}

// WriteFlatCSV writes a two-column field/value dump of fields in field
// order. Collection values are stringified as JSON.
func WriteFlatCSV(w io.Writer, fields domain.Fields) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(flatHeader); err != nil {
		return err
	}
	for _, f := range fields {
		v, err := stringify(f.Value)
		if err != nil {
			return fmt.Errorf("field %s: %w", f.Key, err)
		}
		if err := cw.Write([]string{f.Key, v}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTabularCSV writes an aggregate report. With a turn axis it writes one
// row per turn and one column per turn-aligned series; otherwise a single
// row of the report's scalars. Headers are humanized series names in
// insertion order. A report with neither writes nothing.
func WriteTabularCSV(w io.Writer, r *domain.AggregateReport) error {
	header, rows := Table(r)
	if len(header) == 0 {
		return nil
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// Table returns the tabular header and rows WriteTabularCSV writes.
func Table(r *domain.AggregateReport) ([]string, [][]string) {
	if r.HasTurnAxis() {
		series := r.AlignedSeries()
		header := make([]string, 0, len(series)+1)
		header = append(header, "Turn")
		for _, s := range series {
			header = append(header, domain.HumanizeKey(s.Name))
		}

		rows := make([][]string, len(r.Turns))
		for i, turn := range r.Turns {
			row := make([]string, 0, len(header))
			row = append(row, strconv.Itoa(turn))
			for _, s := range series {
				row = append(row, formatFloat(s.Values[i]))
			}
			rows[i] = row
		}
		return header, rows
	}

	if len(r.Scalars) == 0 {
		return nil, nil
	}
	header := make([]string, len(r.Scalars))
	row := make([]string, len(r.Scalars))
	for i, s := range r.Scalars {
		header[i] = domain.HumanizeKey(s.Name)
		row[i] = formatFloat(s.Value)
	}
	return header, [][]string{row}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func stringify(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case time.Time:
		return x.Format(time.RFC3339Nano), nil
	case fmt.Stringer:
		return x.String(), nil
	case float64:
		return formatFloat(x), nil
	case float32:
		return formatFloat(float64(x)), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case bool:
		return strconv.FormatBool(x), nil
	case domain.ChartKind:
		return string(x), nil
	case domain.Grade:
		return string(x), nil
	default:
		data, err := json.Marshal(x)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}
