package dateutil

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLayout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  string
		want    string
		wantErr error
	}{
		{name: "year", format: "YYYY", want: "2006"},
		{name: "short year", format: "YY", want: "06"},
		{name: "month name", format: "MMMM", want: "January"},
		{name: "short month name", format: "MMM", want: "Jan"},
		{name: "padded month", format: "MM", want: "01"},
		{name: "month", format: "M", want: "1"},
		{name: "padded day", format: "DD", want: "02"},
		{name: "day", format: "D", want: "2"},
		{name: "card heading", format: "MM/DD", want: "01/02"},
		{name: "chinese", format: "YYYY年M月D日", want: "2006年1月2日"},
		{name: "bracket literal", format: "[Day] D", want: "Day 2"},
		{name: "bracket keeps tokens literal", format: "[MM]-MM", want: "MM-01"},
		{name: "empty", format: "", wantErr: ErrInvalidDateFormat},
		{name: "too long", format: strings.Repeat("D", MaxDateFormatLength+1), wantErr: ErrInvalidDateFormat},
		{name: "unclosed bracket", format: "DD [day", wantErr: ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Layout(tt.format)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Layout(%q) error = %v, want %v", tt.format, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Layout(%q) unexpected error: %v", tt.format, err)
			}
			if got != tt.want {
				t.Errorf("Layout(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestExpand(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 22, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		value   string
		want    string
		wantErr error
	}{
		{name: "plain text passes through", value: "03/22", want: "03/22"},
		{name: "empty passes through", value: "", want: ""},
		{name: "word starting with keyword", value: "todays quote", want: "todays quote"},
		{name: "keyword", value: "today", want: "03/22"},
		{name: "keyword ignores case", value: "Today", want: "03/22"},
		{name: "custom format", value: "today:DD.MM.YY", want: "22.03.26"},
		{name: "iso preset", value: "today:iso", want: "2026-03-22"},
		{name: "long preset", value: "today:LONG", want: "March 22, 2026"},
		{name: "cn preset", value: "today:cn", want: "2026年3月22日"},
		{name: "empty format", value: "today:", wantErr: ErrInvalidDateFormat},
		{name: "bad format", value: "today:[MM", wantErr: ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Expand(tt.value, now)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expand(%q) error = %v, want %v", tt.value, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expand(%q) unexpected error: %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("Expand(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
