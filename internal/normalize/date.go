package normalize

import (
	"math"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"payment-reconciliation/internal/domain"
)

// maxSerial is 9999-12-31 in the 1900 date system.
const maxSerial = 2958465

// leapBugSerial is 1900-02-29, a day the 1900 date system counts but the calendar lacks.
const leapBugSerial = 60

// ParseLocalDate accepts a spreadsheet date serial, a "DD/MM/YYYY" string or an ISO-like
// "YYYY-MM-DD[Thh:mm[:ss]]" string. The time of day is discarded. Empty or unparseable
// input yields an absent date.
//
// Serials follow the 1900 date system used by spreadsheet applications: serial 1 is
// 1900-01-01 and serial 59 is 1900-02-28. Serial 60 stands for the non-existent 1900-02-29
// and yields an absent date. From serial 61 on the date is 1899-12-30 plus the serial in
// days. The fractional part (time of day) is dropped.
func ParseLocalDate(raw any) domain.LocalDate {
	switch v := raw.(type) {
	case nil:
		return domain.LocalDate{}
	case domain.LocalDate:
		return v
	case time.Time:
		return domain.DateOf(v)
	case float64:
		return fromSerial(v)
	case float32:
		return fromSerial(float64(v))
	case int:
		return fromSerial(float64(v))
	case int64:
		return fromSerial(float64(v))
	case []byte:
		return parseDateText(string(v))
	case string:
		return parseDateText(v)
	default:
		return domain.LocalDate{}
	}
}

func fromSerial(serial float64) domain.LocalDate {
	if math.IsNaN(serial) || math.IsInf(serial, 0) || serial < 1 || serial > maxSerial {
		return domain.LocalDate{}
	}
	days := math.Floor(serial)
	if days == leapBugSerial {
		return domain.LocalDate{}
	}
	t, err := excelize.ExcelDateToTime(days, false)
	if err != nil {
		return domain.LocalDate{}
	}
	if days < leapBugSerial {
		// excelize counts these from 1899-12-30 as well, one day short.
		t = t.AddDate(0, 0, 1)
	}
	return domain.DateOf(t)
}

func parseDateText(raw string) domain.LocalDate {
	s := strings.TrimSpace(strings.Trim(strings.TrimSpace(raw), `"'`))
	if s == "" {
		return domain.LocalDate{}
	}

	if strings.Contains(s, "/") {
		datePart, _, _ := strings.Cut(s, " ")
		t, err := time.Parse("2/1/2006", datePart)
		if err != nil {
			return domain.LocalDate{}
		}
		return domain.DateOf(t)
	}

	if len(s) < 10 {
		return domain.LocalDate{}
	}
	if len(s) > 10 && s[10] != 'T' && s[10] != ' ' {
		return domain.LocalDate{}
	}
	t, err := time.Parse("2006-01-02", s[:10])
	if err != nil {
		return domain.LocalDate{}
	}
	return domain.DateOf(t)
}
