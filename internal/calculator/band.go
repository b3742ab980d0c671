package calculator

import "DowntimeIncome/internal/model"

// CriticalMargin is how far a check must beat or miss the difficulty to land
// in a critical band. The boundary belongs to the critical band.
const CriticalMargin = 10

// Classify derives the band from a check total and a difficulty.
func Classify(checkTotal, difficulty int) model.Band {
	diff := checkTotal - difficulty
	switch {
	case diff >= CriticalMargin:
		return model.BandCriticalSuccess
	case diff >= 0:
		return model.BandSuccess
	case diff <= -CriticalMargin:
		return model.BandCriticalFailure
	default:
		return model.BandFailure
	}
}

// ClassifySelection accepts a band the user picked directly. It reports false
// when nothing valid was selected.
func ClassifySelection(selected model.Band) (model.Band, bool) {
	if !selected.Valid() {
		return model.BandUnknown, false
	}
	return selected, true
}
