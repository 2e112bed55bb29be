package calendar

import (
	"reflect"
	"testing"
	"time"

	"golang.org/x/text/language"
)

func TestValidMonthKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want bool
	}{
		{name: "valid january", key: "2025-01", want: true},
		{name: "valid december", key: "1999-12", want: true},
		{name: "month zero", key: "2025-00", want: false},
		{name: "month thirteen", key: "2025-13", want: false},
		{name: "single digit month", key: "2025-1", want: false},
		{name: "full date", key: "2025-01-05", want: false},
		{name: "empty", key: "", want: false},
		{name: "garbage", key: "enero", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidMonthKey(tt.key); got != tt.want {
				t.Errorf("ValidMonthKey(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestMonthKeyFromDate(t *testing.T) {
	tests := []struct {
		name   string
		date   string
		want   string
		wantOK bool
	}{
		{name: "normal date", date: "2025-03-17", want: "2025-03", wantOK: true},
		{name: "first of month", date: "2024-12-01", want: "2024-12", wantOK: true},
		{name: "missing day", date: "2025-03", wantOK: false},
		{name: "bad month", date: "2025-13-01", wantOK: false},
		{name: "empty", date: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MonthKeyFromDate(tt.date)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("MonthKeyFromDate(%q) = (%q, %v), want (%q, %v)", tt.date, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDayOfMonth(t *testing.T) {
	if d, ok := DayOfMonth("2025-02-09"); !ok || d != 9 {
		t.Errorf("DayOfMonth = (%d, %v), want (9, true)", d, ok)
	}
	if _, ok := DayOfMonth("not-a-date"); ok {
		t.Error("DayOfMonth accepted malformed input")
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		key  string
		want int
	}{
		{key: "2025-01", want: 31},
		{key: "2025-02", want: 28},
		{key: "2024-02", want: 29},
		{key: "2025-04", want: 30},
	}

	for _, tt := range tests {
		got, ok := DaysInMonth(tt.key)
		if !ok || got != tt.want {
			t.Errorf("DaysInMonth(%q) = (%d, %v), want (%d, true)", tt.key, got, ok, tt.want)
		}
	}

	if _, ok := DaysInMonth("2025-1"); ok {
		t.Error("DaysInMonth accepted invalid key")
	}
}

func TestShiftMonthKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		n    int
		want string
	}{
		{name: "forward within year", key: "2025-03", n: 2, want: "2025-05"},
		{name: "backward within year", key: "2025-03", n: -2, want: "2025-01"},
		{name: "backward across year", key: "2025-01", n: -1, want: "2024-12"},
		{name: "forward across year", key: "2024-11", n: 3, want: "2025-02"},
		{name: "zero shift", key: "2025-06", n: 0, want: "2025-06"},
		{name: "many months back", key: "2025-01", n: -13, want: "2023-12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ShiftMonthKey(tt.key, tt.n)
			if !ok || got != tt.want {
				t.Errorf("ShiftMonthKey(%q, %d) = (%q, %v), want (%q, true)", tt.key, tt.n, got, ok, tt.want)
			}
		})
	}

	if _, ok := ShiftMonthKey("bad", 1); ok {
		t.Error("ShiftMonthKey accepted invalid key")
	}
}

func TestLastNMonthKeys(t *testing.T) {
	got := LastNMonthKeys("2025-02", 4)
	want := []string{"2024-11", "2024-12", "2025-01", "2025-02"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LastNMonthKeys = %v, want %v", got, want)
	}

	if keys := LastNMonthKeys("2025-02", 0); keys != nil {
		t.Errorf("LastNMonthKeys with n=0 = %v, want nil", keys)
	}
	if keys := LastNMonthKeys("", 3); keys != nil {
		t.Errorf("LastNMonthKeys with bad anchor = %v, want nil", keys)
	}
}

func TestYearToDateKeys(t *testing.T) {
	got := YearToDateKeys("2025-03")
	want := []string{"2025-01", "2025-02", "2025-03"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("YearToDateKeys = %v, want %v", got, want)
	}

	got = YearToDateKeys("2025-01")
	if len(got) != 1 || got[0] != "2025-01" {
		t.Errorf("YearToDateKeys in january = %v, want [2025-01]", got)
	}
}

func TestMonthKeyOf(t *testing.T) {
	ts := time.Date(2025, 8, 29, 15, 0, 0, 0, time.UTC)
	if got := MonthKeyOf(ts); got != "2025-08" {
		t.Errorf("MonthKeyOf = %q, want 2025-08", got)
	}
}

func TestMonthLabel(t *testing.T) {
	tests := []struct {
		name string
		key  string
		lang language.Tag
		want string
	}{
		{name: "spanish", key: "2025-01", lang: language.Spanish, want: "ene 2025"},
		{name: "english", key: "2025-01", lang: language.English, want: "Jan 2025"},
		{name: "regional spanish", key: "2024-12", lang: language.MustParse("es-AR"), want: "dic 2024"},
		{name: "invalid key", key: "2025", lang: language.Spanish, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthLabel(tt.key, tt.lang); got != tt.want {
				t.Errorf("MonthLabel(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}
