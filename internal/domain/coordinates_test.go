package domain

import (
	"errors"
	"testing"
)

func TestParseCoordinates(t *testing.T) {
	cases := []struct {
		in      string
		want    Coordinates
		wantErr bool
	}{
		{in: "-112.074,33.448", want: Coordinates{Lon: -112.074, Lat: 33.448}},
		{in: "  -87.6 , 41.88  ", want: Coordinates{Lon: -87.6, Lat: 41.88}},
		{in: "+8,47.", want: Coordinates{Lon: 8, Lat: 47}},
		{in: "Phoenix, AZ", wantErr: true},
		{in: "", wantErr: true},
		{in: "-112.074", wantErr: true},
		{in: "200,10", wantErr: true},
		{in: "10,95", wantErr: true},
		{in: "12, 3 Elm Street, Springfield", wantErr: true},
		{in: "-112.074,33.448,500", wantErr: true},
	}

	for _, tc := range cases {
		got, err := ParseCoordinates(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidCoordinates) {
				t.Errorf("ParseCoordinates(%q) err = %v, want ErrInvalidCoordinates", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCoordinates(%q) unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseCoordinates(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestCoordinatesMidpoint(t *testing.T) {
	m := Coordinates{Lon: -100, Lat: 30}.Midpoint(Coordinates{Lon: -90, Lat: 40})
	if m != (Coordinates{Lon: -95, Lat: 35}) {
		t.Fatalf("midpoint = %+v", m)
	}
}
