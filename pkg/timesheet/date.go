package timesheet

// FormatDisplayDate converts a YYYY-MM-DD date into DD-MM-YY. Any other input,
// including the empty string, yields "".
func FormatDisplayDate(isoDate string) string {
	if !isISODate(isoDate) {
		return ""
	}
	year := isoDate[2:4]
	month := isoDate[5:7]
	day := isoDate[8:10]
	return day + "-" + month + "-" + year
}

func isISODate(value string) bool {
	if len(value) != 10 {
		return false
	}
	for i := 0; i < len(value); i++ {
		c := value[i]
		if i == 4 || i == 7 {
			if c != '-' {
				return false
			}
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
