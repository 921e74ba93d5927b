package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int { return &n }

func TestActionValidate(t *testing.T) {
	tests := []struct {
		name    string
		action  Action
		wantErr error
	}{
		{
			name:   "occurrence without count",
			action: Action{CompletionMode: CompletionOccurrence, TimeRange: NoDeadline()},
		},
		{
			name:    "occurrence with count",
			action:  Action{CompletionMode: CompletionOccurrence, RequiredCount: intPtr(2), TimeRange: NoDeadline()},
			wantErr: ErrRequiredCountForbidden,
		},
		{
			name:   "counter with count",
			action: Action{CompletionMode: CompletionCounter, RequiredCount: intPtr(3), TimeRange: NoDeadline()},
		},
		{
			name:    "counter without count",
			action:  Action{CompletionMode: CompletionCounter, TimeRange: NoDeadline()},
			wantErr: ErrRequiredCountMissing,
		},
		{
			name:    "counter with zero count",
			action:  Action{CompletionMode: CompletionCounter, RequiredCount: intPtr(0), TimeRange: NoDeadline()},
			wantErr: ErrRequiredCountMissing,
		},
		{
			name:    "unknown mode",
			action:  Action{CompletionMode: "SOMETIMES", TimeRange: NoDeadline()},
			wantErr: ErrInvalidCompletionMode,
		},
		{
			name:    "invalid time range surfaces",
			action:  Action{CompletionMode: CompletionOccurrence, TimeRange: TimeRange{Kind: TimeRangeAbsolute}},
			wantErr: ErrInvalidTimeRange,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.action.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestActionRequired(t *testing.T) {
	assert.Equal(t, 0, Action{CompletionMode: CompletionOccurrence}.Required())
	assert.Equal(t, 3, Action{CompletionMode: CompletionCounter, RequiredCount: intPtr(3)}.Required())
}

func TestReminderValidate(t *testing.T) {
	assert.NoError(t, Reminder{Channel: ChannelPush, Frequency: FrequencyOnce}.Validate())
	assert.NoError(t, Reminder{Channel: ChannelEmail, Frequency: FrequencyEveryXDays, FrequencyDays: 3}.Validate())

	assert.ErrorIs(t, Reminder{Channel: "CARRIER_PIGEON", Frequency: FrequencyOnce}.Validate(), ErrInvalidReminder)
	assert.ErrorIs(t, Reminder{Channel: ChannelPush, Frequency: FrequencyEveryXDays}.Validate(), ErrInvalidReminder)
	assert.ErrorIs(t, Reminder{Channel: ChannelPush, Frequency: "HOURLY"}.Validate(), ErrInvalidReminder)
}

func TestChannelSilent(t *testing.T) {
	assert.False(t, ChannelPush.Silent())
	assert.False(t, ChannelEmail.Silent())
	assert.True(t, ChannelTrainer.Silent())
	assert.True(t, ChannelWebhook.Silent())
}
