package analytics

import (
	"delphi/internal/domain/analytics"
	"delphi/pkg/errors"
)

// window builds the half-open [now-daysBack, now) range every operation is
// restricted to. Pure given the service clock.
func (s *Service) window(daysBack int) (analytics.Window, error) {
	if daysBack <= 0 {
		return analytics.Window{}, errors.NewValidationError("days_back", "must be a positive integer", daysBack)
	}

	end := s.now().UTC()
	return analytics.Window{
		Start: end.AddDate(0, 0, -daysBack),
		End:   end,
	}, nil
}

// splitWindow cuts the range into two adjacent halves [start, mid) and
// [mid, end) for momentum. The midpoint lands on a whole day, so an odd day
// count gives the earlier half the extra day.
func (s *Service) splitWindow(daysBack int) (first, second analytics.Window, err error) {
	full, err := s.window(daysBack)
	if err != nil {
		return analytics.Window{}, analytics.Window{}, err
	}

	mid := full.End.AddDate(0, 0, -daysBack/2)
	first = analytics.Window{Start: full.Start, End: mid}
	second = analytics.Window{Start: mid, End: full.End}
	return first, second, nil
}

// checkInterval validates the timeline bucket width.
func checkInterval(interval analytics.Interval) error {
	if !interval.Valid() {
		return errors.NewValidationError("interval", "must be one of hour, day, week, month", interval)
	}
	return nil
}
