package model

// RefreshMode selects how a frame is pushed to the bistable panel. Partial
// refreshes are fast but accumulate ghosting; a full refresh cycles the pixel
// polarity and clears it.
type RefreshMode int

const (
	RefreshPartial RefreshMode = iota
	RefreshFull
)

func (m RefreshMode) String() string {
	switch m {
	case RefreshPartial:
		return "partial"
	case RefreshFull:
		return "full"
	default:
		return "unknown"
	}
}
