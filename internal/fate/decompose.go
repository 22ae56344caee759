package fate

const (
	MinuteSeconds int64 = 60
	HourSeconds   int64 = 60 * MinuteSeconds
	DaySeconds    int64 = 24 * HourSeconds
	MonthSeconds  int64 = 30 * DaySeconds
	YearSeconds   int64 = 365 * DaySeconds
)

// Breakdown is a duration split into fixed-size units: 365-day years and
// 30-day months. It is not calendar accurate.
type Breakdown struct {
	Years   int64 `json:"years"`
	Months  int64 `json:"months"`
	Days    int64 `json:"days"`
	Hours   int64 `json:"hours"`
	Minutes int64 `json:"minutes"`
	Seconds int64 `json:"seconds"`
}

func (b Breakdown) IsZero() bool {
	return b == Breakdown{}
}

// TotalSeconds reassembles the breakdown with the same fixed unit sizes.
func (b Breakdown) TotalSeconds() int64 {
	return b.Years*YearSeconds +
		b.Months*MonthSeconds +
		b.Days*DaySeconds +
		b.Hours*HourSeconds +
		b.Minutes*MinuteSeconds +
		b.Seconds
}

// Decompose splits totalSeconds by chained floor/modulo. The five days a
// 365-day year holds beyond twelve 30-day months are folded into month
// 11 / day 29, so months < 12 and days < 30 always hold and the
// reassembled value never exceeds the input.
func Decompose(totalSeconds int64) Breakdown {
	if totalSeconds <= 0 {
		return Breakdown{}
	}

	var b Breakdown
	rest := totalSeconds

	b.Years = rest / YearSeconds
	rest %= YearSeconds

	b.Months = min(rest/MonthSeconds, 11)
	rest -= b.Months * MonthSeconds

	b.Days = min(rest/DaySeconds, 29)
	rest %= DaySeconds

	b.Hours = rest / HourSeconds
	rest %= HourSeconds

	b.Minutes = rest / MinuteSeconds
	b.Seconds = rest % MinuteSeconds

	return b
}
