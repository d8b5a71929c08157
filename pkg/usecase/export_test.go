package usecase

import "time"

// SetClockForTest replaces the clock used for session idle tracking
func (uc *SessionUseCase) SetClockForTest(now func() time.Time) {
	uc.now = now
}
