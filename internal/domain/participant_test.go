package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroupSessionService/pkg/ptr"
)

func TestIdentity_Validate(t *testing.T) {
	tests := []struct {
		name     string
		identity Identity
		wantErr  bool
	}{
		{
			name:     "customer reference",
			identity: Identity{CustomerID: ptr.Ptr(int64(42))},
		},
		{
			name:     "walk-in with name",
			identity: Identity{Name: "Иван Петров", Phone: ptr.Ptr("+79990001122")},
		},
		{
			name:     "empty identity",
			identity: Identity{},
			wantErr:  true,
		},
		{
			name:     "non-positive customer id",
			identity: Identity{CustomerID: ptr.Ptr(int64(0))},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.identity.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMissingIdentity)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestIdentity_IsWalkIn(t *testing.T) {
	walkIn := Identity{Name: "Мария"}
	assert.True(t, walkIn.IsWalkIn())

	customer := Identity{CustomerID: ptr.Ptr(int64(7))}
	assert.False(t, customer.IsWalkIn())
}

func TestParticipant_IsFinalized(t *testing.T) {
	tests := []struct {
		status ParticipantStatus
		want   bool
	}{
		{ParticipantStatusConfirmed, false},
		{ParticipantStatusCheckedIn, true},
		{ParticipantStatusNoShow, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			p := &Participant{Status: tt.status}
			assert.Equal(t, tt.want, p.IsFinalized())
		})
	}
}

func TestWaitlistEntry_ToParticipant(t *testing.T) {
	entry := &WaitlistEntry{
		ID:         15,
		TenantID:   1,
		SessionID:  100,
		CustomerID: ptr.Ptr(int64(42)),
		Name:       "Анна",
		Email:      ptr.Ptr("anna@example.com"),
		Position:   3,
	}

	p := entry.ToParticipant()

	require.NotNil(t, p)
	assert.Zero(t, p.ID)
	assert.Equal(t, int64(1), p.TenantID)
	assert.Equal(t, int64(100), p.SessionID)
	assert.Equal(t, entry.CustomerID, p.CustomerID)
	assert.Equal(t, "Анна", p.Name)
	assert.Equal(t, ParticipantStatusConfirmed, p.Status)
	assert.False(t, p.Paid)
}
