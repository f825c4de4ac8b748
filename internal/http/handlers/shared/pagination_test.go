package shared

import "testing"

func TestParseOptionalFloat(t *testing.T) {
	cases := []struct {
		raw     string
		wantNil bool
		want    float64
		wantErr bool
	}{
		{raw: "", wantNil: true},
		{raw: "12.5", want: 12.5},
		{raw: "-3", want: -3},
		{raw: "abc", wantErr: true},
		{raw: "NaN", wantErr: true},
		{raw: "nan", wantErr: true},
		{raw: "Inf", wantErr: true},
		{raw: "-Infinity", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseOptionalFloat(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%q: want error got %v", tc.raw, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tc.raw, err)
		}
		if tc.wantNil {
			if got != nil {
				t.Fatalf("%q: want nil got %v", tc.raw, *got)
			}
			continue
		}
		if got == nil || *got != tc.want {
			t.Fatalf("%q: want %v got %v", tc.raw, tc.want, got)
		}
	}
}

func TestNormalizePagination(t *testing.T) {
	page, size := NormalizePagination(0, 0)
	if page != 1 || size <= 0 {
		t.Fatalf("defaults want page=1 size>0 got %d %d", page, size)
	}
}
