package request

import (
	"strings"
	"testing"

	"github.com/urbanreach/routing-gateway/trip"
)

func TestValidateDefaults(t *testing.T) {
	req, err := Validate(Raw{From: "60.1686,24.9316", To: "60.1988,24.9336"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Format != trip.FormatNormalized {
		t.Errorf("format must default to normalized, got %s", req.Format)
	}
	if len(req.Modes) == 0 {
		t.Error("modes must default to public transit plus walk")
	}
	if req.LeaveAt != nil || req.ArriveBy != nil {
		t.Error("unset times must stay nil")
	}
	if req.From.Lat != 60.1686 || req.To.Lon != 24.9336 {
		t.Errorf("coordinates not coerced: %+v", req)
	}
}

func TestValidateMissingFields(t *testing.T) {
	tests := []struct {
		name    string
		raw     Raw
		mention []string
	}{
		{
			name:    "missing to",
			raw:     Raw{From: "60.1,24.9"},
			mention: []string{"to"},
		},
		{
			name:    "missing from",
			raw:     Raw{To: "60.1,24.9"},
			mention: []string{"from"},
		},
		{
			name:    "missing both",
			raw:     Raw{},
			mention: []string{"from", "to"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(tt.raw)
			if err == nil {
				t.Fatal("expected validation error")
			}
			for _, field := range tt.mention {
				if !strings.Contains(err.Error(), field) {
					t.Errorf("error %q does not name field %q", err.Error(), field)
				}
			}
		})
	}
}

func TestValidateConflictingTimes(t *testing.T) {
	_, err := Validate(Raw{
		From:     "60.1,24.9",
		To:       "60.2,24.9",
		LeaveAt:  "1752570000000",
		ArriveBy: "1752580000000",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "leaveAt") || !strings.Contains(msg, "arriveBy") {
		t.Errorf("conflict message must name both fields, got %q", msg)
	}
}

func TestValidateMalformedCoordinates(t *testing.T) {
	tests := []struct {
		name string
		from string
	}{
		{name: "not a pair", from: "60.1"},
		{name: "letters", from: "abc,def"},
		{name: "latitude out of range", from: "95.0,24.9"},
		{name: "longitude out of range", from: "60.1,200.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(Raw{From: tt.from, To: "60.2,24.9"})
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), "from") {
				t.Errorf("error %q does not name the from field", err.Error())
			}
		})
	}
}

func TestValidateStringCoercion(t *testing.T) {
	req, err := Validate(Raw{
		From:    " 60.1686 , 24.9316 ",
		To:      "60.1988,24.9336",
		LeaveAt: "1752570000000",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.LeaveAt == nil || *req.LeaveAt != 1752570000000 {
		t.Errorf("leaveAt not coerced: %v", req.LeaveAt)
	}
}

func TestValidateBadFormat(t *testing.T) {
	_, err := Validate(Raw{From: "60.1,24.9", To: "60.2,24.9", Format: "yaml"})
	if err == nil {
		t.Fatal("expected validation error for unknown format")
	}
}

func TestValidateModesNormalized(t *testing.T) {
	req, err := Validate(Raw{From: "60.1,24.9", To: "60.2,24.9", Modes: "train, bus"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(req.Modes) != 2 || req.Modes[0] != trip.ModeRail || req.Modes[1] != trip.ModeBus {
		t.Errorf("modes not normalized: %v", req.Modes)
	}
}
