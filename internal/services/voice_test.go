package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/ecotrack-backend/internal/logger"
	"github.com/yungbote/ecotrack-backend/internal/rollup"
	"github.com/yungbote/ecotrack-backend/internal/types"
)

type fakeActivities struct {
	ActivityService
	lastInput LogActivityInput
	fail      bool
}

func (f *fakeActivities) Log(ctx context.Context, userID uuid.UUID, input LogActivityInput) (*LogActivityResult, error) {
	if f.fail {
		return nil, gorm.ErrInvalidDB
	}
	f.lastInput = input
	grams := 0
	if input.CarbonEmitted != nil {
		grams = *input.CarbonEmitted
	}
	return &LogActivityResult{
		Log:           &types.DailyLog{ID: uuid.New(), UserID: userID, CarbonEmitted: grams},
		CarbonEmitted: grams,
		PointsEarned:  ActivityPoints(grams),
		Streak:        1,
	}, nil
}

type fakeSummaries struct {
	SummaryService
	daily  rollup.DailySummary
	weekly rollup.WeeklySummary
}

func (f *fakeSummaries) Daily(ctx context.Context, userID uuid.UUID, now time.Time) (rollup.DailySummary, error) {
	return f.daily, nil
}

func (f *fakeSummaries) Weekly(ctx context.Context, userID uuid.UUID, now time.Time) (rollup.WeeklySummary, error) {
	return f.weekly, nil
}

type fakeLeaderboard struct {
	LeaderboardService
	standing rollup.Standing
}

func (f *fakeLeaderboard) Standing(ctx context.Context, userID uuid.UUID) (rollup.Standing, error) {
	return f.standing, nil
}

type fakeConversations struct {
	saved []*types.VoiceConversation
}

func (f *fakeConversations) Create(ctx context.Context, tx *gorm.DB, c *types.VoiceConversation) (*types.VoiceConversation, error) {
	f.saved = append(f.saved, c)
	return c, nil
}

func testVoice(t *testing.T, activities ActivityService, summaries SummaryService, board LeaderboardService, conversations *fakeConversations) VoiceService {
	t.Helper()
	log, err := logger.New("development")
	require.NoError(t, err)
	if conversations == nil {
		conversations = &fakeConversations{}
	}
	return NewVoiceService(log, activities, summaries, board, conversations)
}

func callPayload(userID string, name string, params map[string]any) VoicePayload {
	payload := VoicePayload{
		Message: &VoiceMessage{
			Type:         "function-call",
			FunctionCall: &VoiceFunctionCall{Name: name, Parameters: params},
		},
	}
	if userID != "" {
		payload.Call = &VoiceCall{}
		payload.Call.AssistantOverrides.Metadata.UserID = userID
	}
	return payload
}

func resultMap(t *testing.T, response map[string]any) map[string]any {
	t.Helper()
	result, ok := response["result"].(map[string]any)
	require.True(t, ok, "result = %v", response["result"])
	return result
}

func TestVoiceRejectsMissingMessage(t *testing.T) {
	svc := testVoice(t, &fakeActivities{}, &fakeSummaries{}, &fakeLeaderboard{}, nil)
	_, err := svc.HandleWebhook(context.Background(), VoicePayload{})
	require.Error(t, err)
}

func TestVoiceUnknownIdentity(t *testing.T) {
	svc := testVoice(t, &fakeActivities{}, &fakeSummaries{}, &fakeLeaderboard{}, nil)
	response, err := svc.HandleWebhook(context.Background(), callPayload("", "getDailySummary", nil))
	require.NoError(t, err)
	require.Equal(t, msgUnknownIdentity, response["result"])

	response, err = svc.HandleWebhook(context.Background(), callPayload("not-a-uuid", "getDailySummary", nil))
	require.NoError(t, err)
	require.Equal(t, msgUnknownIdentity, response["result"])
}

func TestVoiceUnknownFunction(t *testing.T) {
	svc := testVoice(t, &fakeActivities{}, &fakeSummaries{}, &fakeLeaderboard{}, nil)
	response, err := svc.HandleWebhook(context.Background(), callPayload(uuid.NewString(), "orderPizza", nil))
	require.NoError(t, err)
	require.Equal(t, msgUnknownFunction, response["result"])
}

func TestVoiceLogActivityAwardsPoints(t *testing.T) {
	activities := &fakeActivities{}
	svc := testVoice(t, activities, &fakeSummaries{}, &fakeLeaderboard{}, nil)

	// quantity arrives as a string, as the voice platform often sends it
	response, err := svc.HandleWebhook(context.Background(), callPayload(uuid.NewString(), "logCarbonActivity", map[string]any{
		"category":      "transport",
		"activityType":  "car",
		"quantity":      "10",
		"carbonEmitted": float64(1920),
	}))
	require.NoError(t, err)

	result := resultMap(t, response)
	require.Equal(t, true, result["success"])
	require.Equal(t, 6, result["pointsEarned"])
	require.Equal(t, "1.92kg", result["carbonFormatted"])
	require.Contains(t, result["message"], "You earned 6 points!")
	require.Equal(t, types.LogSourceVoice, activities.lastInput.Source)
	require.Equal(t, 10.0, activities.lastInput.Quantity)
}

func TestVoiceLogActivityFailureIsSpoken(t *testing.T) {
	svc := testVoice(t, &fakeActivities{fail: true}, &fakeSummaries{}, &fakeLeaderboard{}, nil)
	response, err := svc.HandleWebhook(context.Background(), callPayload(uuid.NewString(), "logCarbonActivity", map[string]any{
		"carbonEmitted": float64(500),
	}))
	require.NoError(t, err)
	require.Equal(t, msgLogFailed, response["result"])
}

func TestVoiceDailySummaryToneBreakpoints(t *testing.T) {
	cases := []struct {
		name  string
		total int
		want  string
	}{
		{"low", 4999, "great job keeping it green"},
		{"medium", 5000, "Not bad at all"},
		{"high", 10000, "could cut back"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			summaries := &fakeSummaries{daily: rollup.DailySummary{
				TotalEmissions: tc.total,
				ByCategory:     map[string]int{"transport": tc.total},
				TopCategory:    "transport",
				ActivityCount:  2,
			}}
			svc := testVoice(t, &fakeActivities{}, summaries, &fakeLeaderboard{}, nil)
			response, err := svc.HandleWebhook(context.Background(), callPayload(uuid.NewString(), "getDailySummary", nil))
			require.NoError(t, err)
			message := resultMap(t, response)["message"].(string)
			require.Contains(t, message, tc.want)
		})
	}
}

func TestVoiceDailySummaryEmptyDay(t *testing.T) {
	svc := testVoice(t, &fakeActivities{}, &fakeSummaries{}, &fakeLeaderboard{}, nil)
	response, err := svc.HandleWebhook(context.Background(), callPayload(uuid.NewString(), "getDailySummary", nil))
	require.NoError(t, err)
	message := resultMap(t, response)["message"].(string)
	require.Contains(t, message, "haven't logged anything today")
}

func TestVoiceWeeklySummaryMessage(t *testing.T) {
	summaries := &fakeSummaries{weekly: rollup.WeeklySummary{
		TotalEmissions: 7000,
		AvgDaily:       1000,
		DaysLogged:     3,
		ByDate:         map[string]int{"2026-03-11": 500},
		BestDay:        "2026-03-11",
	}}
	svc := testVoice(t, &fakeActivities{}, summaries, &fakeLeaderboard{}, nil)
	response, err := svc.HandleWebhook(context.Background(), callPayload(uuid.NewString(), "getWeeklySummary", nil))
	require.NoError(t, err)
	message := resultMap(t, response)["message"].(string)
	require.Contains(t, message, "7.00kg of CO₂ across 3 days")
	require.Contains(t, message, "average of 1.00kg per day")
	require.Contains(t, message, "Wednesday")
}

func TestVoiceLeaderboardMessages(t *testing.T) {
	cases := []struct {
		name     string
		standing rollup.Standing
		want     string
	}{
		{"top three", rollup.Standing{Position: 2, Points: 120, TotalUsers: 40, PointsBehind: 15}, "top 3"},
		{"top ten", rollup.Standing{Position: 7, Points: 60, TotalUsers: 40, PointsBehind: 5}, "Top 10 is within reach"},
		{"further back", rollup.Standing{Position: 22, Points: 10, TotalUsers: 40, PointsBehind: 3}, "Keep logging to climb up"},
		{"unranked", rollup.Standing{Position: 0, TotalUsers: 40}, "not on the leaderboard yet"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := testVoice(t, &fakeActivities{}, &fakeSummaries{}, &fakeLeaderboard{standing: tc.standing}, nil)
			response, err := svc.HandleWebhook(context.Background(), callPayload(uuid.NewString(), "getLeaderboardPosition", nil))
			require.NoError(t, err)
			message := resultMap(t, response)["message"].(string)
			require.Contains(t, message, tc.want)
			if tc.standing.Position > 3 {
				require.Contains(t, message, "points behind")
			}
		})
	}
}

func TestVoiceSetReminderAcknowledges(t *testing.T) {
	svc := testVoice(t, &fakeActivities{}, &fakeSummaries{}, &fakeLeaderboard{}, nil)
	response, err := svc.HandleWebhook(context.Background(), callPayload(uuid.NewString(), "setReminder", map[string]any{
		"reminderText": "bike to class",
	}))
	require.NoError(t, err)
	message := resultMap(t, response)["message"].(string)
	require.True(t, strings.Contains(message, `"bike to class"`))
	require.Contains(t, message, "soon")
}

func TestVoiceEndOfCallSavesTranscript(t *testing.T) {
	conversations := &fakeConversations{}
	svc := testVoice(t, &fakeActivities{}, &fakeSummaries{}, &fakeLeaderboard{}, conversations)

	userID := uuid.New()
	payload := VoicePayload{
		Message: &VoiceMessage{
			Type:       "end-of-call-report",
			Transcript: "logged a bus ride",
			Call:       &VoiceCall{Duration: 42},
		},
	}
	payload.Message.Call.AssistantOverrides.Metadata.UserID = userID.String()

	response, err := svc.HandleWebhook(context.Background(), payload)
	require.NoError(t, err)
	require.Equal(t, true, response["success"])
	require.Len(t, conversations.saved, 1)
	require.Equal(t, userID, conversations.saved[0].UserID)
	require.Equal(t, "logged a bus ride", conversations.saved[0].Transcript)
	require.Equal(t, 42, conversations.saved[0].Duration)
}

func TestVoiceUnknownMessageTypeAcks(t *testing.T) {
	svc := testVoice(t, &fakeActivities{}, &fakeSummaries{}, &fakeLeaderboard{}, nil)
	response, err := svc.HandleWebhook(context.Background(), VoicePayload{Message: &VoiceMessage{Type: "speech-update"}})
	require.NoError(t, err)
	require.Equal(t, true, response["success"])
}
