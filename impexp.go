package rentcheck

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// this file contains functions to handle the import/export formats:
//   - the input table is a CSV file with InputColumns (any order, extra columns ignored)
//     or a JSON document whose listings are selected with a JSONPath.
//   - the output table is a CSV file with OutputColumns, or JSONL with one object per row.

// cellGetter returns the raw text of a cell, and false when the cell is absent or blank.
type cellGetter func(col string) (string, bool)

// DecodeCSV reads properties from a CSV table with a header row.
//
// Column names are matched case-insensitively. A header lacking the price or
// weekly_rent column fails with a *MissingFieldError. Blank cells are absent
// values.
func DecodeCSV(r io.Reader, currency string) ([]Property, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, &MissingFieldError{Field: ColPrice}
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read CSV header: %w", err)
	}
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[normalizeColumn(h)] = i
	}
	for _, required := range []string{ColPrice, ColWeeklyRent} {
		if _, ok := index[required]; !ok {
			return nil, &MissingFieldError{Field: required}
		}
	}

	var props []Property
	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read CSV row %d: %w", row, err)
		}
		get := func(col string) (string, bool) {
			i, ok := index[col]
			if !ok || i >= len(record) {
				return "", false
			}
			v := strings.TrimSpace(record[i])
			return v, v != ""
		}
		p, err := parseProperty(get, currency)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		props = append(props, p)
	}
	return props, nil
}

// DecodeJSON reads properties from a JSON document.
//
// selector is a JSONPath expression (e.g. "$.listings[*]") that selects the
// listing objects; an empty selector means the document itself. It may yield
// a list of objects or a single object. Numeric fields are JSON numbers or
// numeric strings.
func DecodeJSON(r io.Reader, selector, currency string) ([]Property, error) {
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot parse JSON listings: %w", err)
	}
	if selector == "" {
		selector = "$"
	}
	selected, err := jsonpath.Get(selector, doc)
	if err != nil {
		return nil, fmt.Errorf("cannot select listings with %q: %w", selector, err)
	}

	var objects []any
	switch v := selected.(type) {
	case []any:
		objects = v
	case map[string]any:
		objects = []any{v}
	default:
		return nil, fmt.Errorf("selector %q yields %T, expected a list of listings", selector, selected)
	}

	props := make([]Property, 0, len(objects))
	for i, o := range objects {
		obj, ok := o.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("listing %d: got %T, expected an object", i+1, o)
		}
		fields := make(map[string]any, len(obj))
		for k, v := range obj {
			fields[normalizeColumn(k)] = v
		}
		get := func(col string) (string, bool) {
			v, ok := fields[col]
			if !ok || v == nil {
				return "", false
			}
			var s string
			switch v := v.(type) {
			case string:
				s = strings.TrimSpace(v)
			case float64:
				s = strconv.FormatFloat(v, 'f', -1, 64)
			case bool:
				s = strconv.FormatBool(v)
			default:
				s = fmt.Sprint(v)
			}
			return s, s != ""
		}
		p, err := parseProperty(get, currency)
		if err != nil {
			return nil, fmt.Errorf("listing %d: %w", i+1, err)
		}
		props = append(props, p)
	}
	return props, nil
}

func normalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// parseProperty builds a Property from raw cells. Only malformed numbers are
// errors here, absent required fields are reported by Derive.
func parseProperty(get cellGetter, currency string) (Property, error) {
	var p Property
	p.Address, _ = get(ColAddress)

	parseAmount := func(col string) (Optional[Money], error) {
		s, ok := get(col)
		if !ok {
			return Optional[Money]{}, nil
		}
		m, err := ParseMoney(s, currency)
		if err != nil {
			return Optional[Money]{}, fmt.Errorf("column %q: invalid amount %q: %w", col, s, err)
		}
		return Some(m), nil
	}
	parseRate := func(col string) (Optional[float64], error) {
		s, ok := get(col)
		if !ok {
			return Optional[float64]{}, nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Optional[float64]{}, fmt.Errorf("column %q: invalid number %q: %w", col, s, err)
		}
		return Some(v), nil
	}

	var err error
	if p.Price, err = parseAmount(ColPrice); err != nil {
		return p, err
	}
	if p.WeeklyRent, err = parseAmount(ColWeeklyRent); err != nil {
		return p, err
	}
	for _, c := range []struct {
		col string
		dst *Money
	}{
		{ColCouncilRates, &p.CouncilRates},
		{ColStrataBodyCorp, &p.StrataBodyCorp},
		{ColInsurance, &p.Insurance},
		{ColLandTax, &p.LandTax},
		{ColOtherCosts, &p.OtherCosts},
	} {
		amount, err := parseAmount(c.col)
		if err != nil {
			return p, err
		}
		*c.dst = amount.Or(M(0, currency))
	}
	if p.InterestRate, err = parseRate(ColInterestRate); err != nil {
		return p, err
	}
	if p.LVR, err = parseRate(ColLVR); err != nil {
		return p, err
	}
	term, err := parseRate(ColLoanTermYears)
	if err != nil {
		return p, err
	}
	if years, ok := term.Get(); ok {
		// "30.0" is a valid term, "30.5" is not.
		if years != float64(int(years)) {
			return p, fmt.Errorf("column %q: %v is not a whole number of years", ColLoanTermYears, years)
		}
		p.LoanTermYears = Some(int(years))
	}
	return p, nil
}

// EncodeCSV writes results as the output table, header included.
//
// Rows that could not be scored keep their address, price and rent when
// known, leave the metrics blank and report the error in the signal column.
func EncodeCSV(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(OutputColumns); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}
	for _, r := range results {
		if err := cw.Write(resultCells(r)); err != nil {
			return fmt.Errorf("cannot write CSV row %d: %w", r.Row+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func resultCells(r Result) []string {
	if r.Scored != nil {
		return r.Scored.Cells()
	}
	cells := make([]string, len(OutputColumns))
	cells[0] = r.Property.Address
	if price, ok := r.Property.Price.Get(); ok {
		cells[1] = price.Plain()
	}
	if rent, ok := r.Property.WeeklyRent.Get(); ok {
		cells[2] = rent.Plain()
	}
	cells[len(cells)-1] = "ERROR: " + r.Err.Error()
	return cells
}

// EncodeJSONL writes one JSON object per result, with the OutputColumns keys
// in order. Undefined ratios are written as null.
func EncodeJSONL(w io.Writer, results []Result) error {
	for _, r := range results {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("cannot marshal row %d: %w", r.Row+1, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("cannot write JSONL: %w", err)
		}
	}
	return nil
}

// MarshalJSON writes the result as an ordered JSON object.
func (r Result) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("row", r.Row+1)
	w.Append(ColAddress, r.Property.Address)
	w.Optional(ColPrice, optionalMoney(r.Property.Price))
	w.Optional(ColWeeklyRent, optionalMoney(r.Property.WeeklyRent))
	if s := r.Scored; s != nil {
		w.Append(ColGrossYield, finite(float64(s.GrossYield)))
		w.Append(ColNetYield, finite(float64(s.NetYield)))
		w.Append(ColNOI, s.NOI)
		w.Append(ColLoanAmount, s.LoanAmount)
		w.Append(ColEquity, s.Equity)
		w.Append(ColStressRate, finite(s.StressRate))
		w.Append(ColDebtService, s.DebtService)
		w.Append(ColCashflow, s.Cashflow)
		w.Append(ColSCoC, finite(float64(s.SCoC)))
		w.Append(ColDSCR, finite(s.DSCR))
		w.Append(ColSignal, s.Signal)
	}
	if r.Err != nil {
		w.Append("error", r.Err.Error())
	}
	return w.MarshalJSON()
}

// optionalMoney returns nil for an absent amount, so that Optional skips it.
func optionalMoney(o Optional[Money]) any {
	if m, ok := o.Get(); ok {
		return m
	}
	return nil
}

// finite returns nil for values JSON cannot represent.
func finite(v float64) any {
	if !isFinite(v) {
		return nil
	}
	return v
}

// EncodeTemplate writes a blank input table: the header row only.
func EncodeTemplate(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(InputColumns); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// EncodeProperties writes properties as an input table.
func EncodeProperties(w io.Writer, props []Property) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(InputColumns); err != nil {
		return err
	}
	opt := func(o Optional[Money]) string {
		if m, ok := o.Get(); ok {
			return m.value.String()
		}
		return ""
	}
	rate := func(o Optional[float64]) string {
		if v, ok := o.Get(); ok {
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
		return ""
	}
	for _, p := range props {
		term := ""
		if years, ok := p.LoanTermYears.Get(); ok {
			term = strconv.Itoa(years)
		}
		record := []string{
			p.Address, opt(p.Price), opt(p.WeeklyRent),
			p.CouncilRates.value.String(), p.StrataBodyCorp.value.String(), p.Insurance.value.String(),
			p.LandTax.value.String(), p.OtherCosts.value.String(),
			rate(p.InterestRate), rate(p.LVR), term,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
