package calendar

// wektuRanges partitions the day into half-open [from, to) minute ranges.
// Tengah Wengi wraps around midnight.
var wektuRanges = []struct {
	from, to int
	label    string
}{
	{1*60 + 0, 3*60 + 30, "Lingsir Wengi"},
	{3*60 + 30, 4*60 + 30, "Fajar"},
	{4*60 + 30, 5*60 + 30, "Saput Lemah"},
	{5*60 + 30, 6*60 + 30, "Byar"},
	{6*60 + 30, 9 * 60, "Enjing"},
	{9 * 60, 11 * 60, "Gumatel"},
	{11 * 60, 12 * 60, "Tengange"},
	{12 * 60, 13 * 60, "Bedhug"},
	{13 * 60, 15 * 60, "Lingsir Kulon"},
	{15 * 60, 16*60 + 30, "Ngasar"},
	{16*60 + 30, 17*60 + 30, "Tunggang Gunung"},
	{17*60 + 30, 18*60 + 30, "Surup"},
	{18*60 + 30, 19*60 + 30, "Bakda Maghrib"},
	{19*60 + 30, 21 * 60, "Isya"},
	{21 * 60, 23 * 60, "Sirep Bocah"},
}

const tengahWengi = "Tengah Wengi"

func wektuOf(hour, minute int) string {
	v := hour*60 + minute
	for _, r := range wektuRanges {
		if v >= r.from && v < r.to {
			return r.label
		}
	}
	return tengahWengi
}

// WektuLabels returns the sixteen wektu names in order starting after midnight.
func WektuLabels() []string {
	labels := make([]string, 0, len(wektuRanges)+1)
	for _, r := range wektuRanges {
		labels = append(labels, r.label)
	}
	return append(labels, tengahWengi)
}
