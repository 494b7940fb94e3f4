package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionType_Validate(t *testing.T) {
	valid := SessionType{
		Name:            "Йога для начинающих",
		MinParticipants: 2,
		MaxParticipants: 12,
		PricePerPerson:  500,
		DurationMinutes: 60,
	}

	tests := []struct {
		name    string
		modify  func(*SessionType)
		wantErr error
	}{
		{
			name:   "valid type",
			modify: func(*SessionType) {},
		},
		{
			name:    "empty name",
			modify:  func(st *SessionType) { st.Name = "" },
			wantErr: ErrEmptyTypeName,
		},
		{
			name:    "min participants below one",
			modify:  func(st *SessionType) { st.MinParticipants = 0 },
			wantErr: ErrInvalidMinParticipants,
		},
		{
			name:    "max below min",
			modify:  func(st *SessionType) { st.MaxParticipants = 1 },
			wantErr: ErrInvalidMaxParticipants,
		},
		{
			name:    "duration too short",
			modify:  func(st *SessionType) { st.DurationMinutes = 10 },
			wantErr: ErrInvalidDuration,
		},
		{
			name:    "duration over a day",
			modify:  func(st *SessionType) { st.DurationMinutes = MaxSessionDurationMinutes + 1 },
			wantErr: ErrInvalidDuration,
		},
		{
			name:   "duration exactly a day",
			modify: func(st *SessionType) { st.DurationMinutes = MaxSessionDurationMinutes },
		},
		{
			name:    "negative price",
			modify:  func(st *SessionType) { st.PricePerPerson = -1 },
			wantErr: ErrNegativePrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := valid
			tt.modify(&st)

			err := st.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSessionType_Duration(t *testing.T) {
	st := SessionType{DurationMinutes: 90}
	assert.Equal(t, 90*time.Minute, st.Duration())
}
