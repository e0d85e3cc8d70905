package request

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/urbanreach/routing-gateway/trip"
)

// Raw is the wire-level trip planning request.
type Raw struct {
	From     string `json:"from" form:"from" validate:"required"`
	To       string `json:"to" form:"to" validate:"required"`
	Provider string `json:"provider" form:"provider"`
	LeaveAt  string `json:"leaveAt" form:"leaveAt"`
	ArriveBy string `json:"arriveBy" form:"arriveBy"`
	Modes    string `json:"modes" form:"modes"`
	Format   string `json:"format" form:"format" validate:"omitempty,oneof=normalized original"`
}

// ValidationError reports bad, missing, or conflicting request input. It is
// always the caller's fault and never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var validate = validator.New()

// Validate turns a raw wire request into a trip.Request, applying schema
// defaults. All field problems are collected into one ValidationError.
func Validate(raw Raw) (trip.Request, error) {
	var problems []string

	if err := validate.Struct(raw); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				switch fe.Tag() {
				case "required":
					problems = append(problems, "missing required field: "+strings.ToLower(fe.Field()))
				case "oneof":
					problems = append(problems, fmt.Sprintf("invalid %s: %q", strings.ToLower(fe.Field()), fe.Value()))
				default:
					problems = append(problems, "invalid field: "+strings.ToLower(fe.Field()))
				}
			}
		} else {
			return trip.Request{}, &ValidationError{Message: err.Error()}
		}
	}

	if raw.LeaveAt != "" && raw.ArriveBy != "" {
		problems = append(problems, "leaveAt and arriveBy are mutually exclusive")
	}

	req := trip.Request{
		Provider: strings.TrimSpace(raw.Provider),
		Format:   trip.FormatNormalized,
	}
	if raw.Format != "" {
		req.Format = trip.Format(raw.Format)
	}

	if raw.From != "" {
		from, err := ParseCoordinate(raw.From)
		if err != nil {
			problems = append(problems, "malformed coordinate in from: "+err.Error())
		} else {
			req.From = from
		}
	}
	if raw.To != "" {
		to, err := ParseCoordinate(raw.To)
		if err != nil {
			problems = append(problems, "malformed coordinate in to: "+err.Error())
		} else {
			req.To = to
		}
	}

	if raw.LeaveAt != "" {
		ms, err := parseEpochMS(raw.LeaveAt)
		if err != nil {
			problems = append(problems, "malformed leaveAt: "+err.Error())
		} else {
			req.LeaveAt = &ms
		}
	}
	if raw.ArriveBy != "" {
		ms, err := parseEpochMS(raw.ArriveBy)
		if err != nil {
			problems = append(problems, "malformed arriveBy: "+err.Error())
		} else {
			req.ArriveBy = &ms
		}
	}

	if raw.Modes == "" {
		req.Modes = trip.DefaultModes()
	} else {
		for _, m := range strings.Split(raw.Modes, ",") {
			if m = strings.TrimSpace(m); m != "" {
				req.Modes = append(req.Modes, trip.NormalizeMode(m))
			}
		}
	}

	if len(problems) > 0 {
		return trip.Request{}, &ValidationError{Message: strings.Join(problems, "; ")}
	}
	return req, nil
}

// ParseCoordinate parses a "lat,lon" string. The transport layer delivers
// coordinates as strings, so both parts are coerced to numbers here.
func ParseCoordinate(s string) (trip.Coordinate, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return trip.Coordinate{}, fmt.Errorf("expected \"lat,lon\", got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return trip.Coordinate{}, fmt.Errorf("latitude %q is not a number", parts[0])
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return trip.Coordinate{}, fmt.Errorf("longitude %q is not a number", parts[1])
	}
	if lat < -90 || lat > 90 {
		return trip.Coordinate{}, fmt.Errorf("latitude %v out of range", lat)
	}
	if lon < -180 || lon > 180 {
		return trip.Coordinate{}, fmt.Errorf("longitude %v out of range", lon)
	}
	return trip.Coordinate{Lat: lat, Lon: lon}, nil
}

func parseEpochMS(s string) (int64, error) {
	ms, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not an epoch-ms timestamp", s)
	}
	if ms < 0 {
		return 0, fmt.Errorf("timestamp %d is negative", ms)
	}
	return ms, nil
}
