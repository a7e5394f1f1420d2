package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/ecotrack-backend/internal/aijson"
	"github.com/yungbote/ecotrack-backend/internal/logger"
	"github.com/yungbote/ecotrack-backend/internal/repos"
	"github.com/yungbote/ecotrack-backend/internal/types"
)

// Voice webhook payload shapes. The voice platform posts loosely-typed JSON;
// everything optional stays a pointer so absence is distinguishable.

type VoiceFunctionCall struct {
	Name       string         `json:"name"`
	Parameters map[string]any `json:"parameters"`
}

type VoiceCallMetadata struct {
	UserID string `json:"userId"`
}

type VoiceCallOverrides struct {
	Metadata VoiceCallMetadata `json:"metadata"`
}

type VoiceCall struct {
	Duration           int                `json:"duration"`
	AssistantOverrides VoiceCallOverrides `json:"assistantOverrides"`
}

type VoiceMessage struct {
	Type         string             `json:"type"`
	FunctionCall *VoiceFunctionCall `json:"functionCall,omitempty"`
	Summary      string             `json:"summary,omitempty"`
	Transcript   string             `json:"transcript,omitempty"`
	Call         *VoiceCall         `json:"call,omitempty"`
}

type VoicePayload struct {
	Message *VoiceMessage `json:"message"`
	Call    *VoiceCall    `json:"call,omitempty"`
}

// canned responses; the voice layer must always get something speakable
const (
	msgUnknownIdentity = "I couldn't identify your account. Please make sure you're signed in and try again."
	msgUnknownFunction = "I'm not sure how to handle that request. Try asking me to log an activity or check your progress!"
	msgLogFailed       = "I had trouble saving that activity. Could you try again?"
	msgDailyFailed     = "I couldn't fetch your daily summary right now. Try again in a moment!"
	msgWeeklyFailed    = "I couldn't fetch your weekly summary right now. Try again!"
	msgBoardFailed     = "I couldn't check the leaderboard right now. Try again!"
)

type VoiceService interface {
	// HandleWebhook routes one voice-platform message. It never returns an
	// error for dispatch problems; the voice UX gets a spoken fallback
	// instead. The only error is a payload with no message at all.
	HandleWebhook(ctx context.Context, payload VoicePayload) (map[string]any, error)
}

type voiceService struct {
	log              *logger.Logger
	activities       ActivityService
	summaries        SummaryService
	leaderboard      LeaderboardService
	conversationRepo repos.VoiceConversationRepo
}

func NewVoiceService(
	log *logger.Logger,
	activities ActivityService,
	summaries SummaryService,
	leaderboard LeaderboardService,
	conversationRepo repos.VoiceConversationRepo,
) VoiceService {
	return &voiceService{
		log:              log.With("service", "VoiceService"),
		activities:       activities,
		summaries:        summaries,
		leaderboard:      leaderboard,
		conversationRepo: conversationRepo,
	}
}

// voiceCarbon formats grams for speech: no tonne band, no unit suffix. The
// templates around it carry the CO₂ wording.
func voiceCarbon(grams int) string {
	if grams < 1000 {
		return fmt.Sprintf("%dg", grams)
	}
	return fmt.Sprintf("%.2fkg", float64(grams)/1000)
}

func (s *voiceService) HandleWebhook(ctx context.Context, payload VoicePayload) (map[string]any, error) {
	if payload.Message == nil {
		return nil, fmt.Errorf("no message provided")
	}

	switch payload.Message.Type {
	case "function-call":
		return s.dispatch(ctx, payload), nil
	case "end-of-call-report":
		s.saveTranscript(ctx, payload)
		return map[string]any{"success": true}, nil
	case "assistant-request":
		return map[string]any{"assistant": map[string]any{}}, nil
	default:
		return map[string]any{"success": true}, nil
	}
}

func (s *voiceService) userID(payload VoicePayload) (uuid.UUID, bool) {
	call := payload.Call
	if call == nil && payload.Message != nil {
		call = payload.Message.Call
	}
	if call == nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(call.AssistantOverrides.Metadata.UserID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (s *voiceService) dispatch(ctx context.Context, payload VoicePayload) map[string]any {
	fc := payload.Message.FunctionCall
	if fc == nil {
		return map[string]any{"result": msgUnknownFunction}
	}

	userID, ok := s.userID(payload)
	if !ok {
		return map[string]any{"result": msgUnknownIdentity}
	}

	s.log.Info("Voice function called", "function", fc.Name, "user_id", userID)

	switch fc.Name {
	case "logCarbonActivity":
		return s.handleLogActivity(ctx, userID, fc.Parameters)
	case "getDailySummary":
		return s.handleDailySummary(ctx, userID)
	case "getWeeklySummary":
		return s.handleWeeklySummary(ctx, userID)
	case "getLeaderboardPosition":
		return s.handleLeaderboard(ctx, userID)
	case "setReminder":
		return s.handleSetReminder(fc.Parameters)
	default:
		return map[string]any{"result": msgUnknownFunction}
	}
}

func (s *voiceService) handleLogActivity(ctx context.Context, userID uuid.UUID, params map[string]any) map[string]any {
	quantity, ok := aijson.Float(params["quantity"])
	if !ok || quantity <= 0 {
		quantity = 1
	}
	grams, ok := aijson.Int(params["carbonEmitted"])
	if !ok || grams < 0 {
		return map[string]any{"result": msgLogFailed}
	}
	activityType := aijson.Str(params["activityType"])
	unit := aijson.Str(params["unit"])
	if unit == "" {
		unit = "units"
	}
	notes := aijson.Str(params["description"])
	if notes == "" {
		notes = fmt.Sprintf("%v %s logged via voice", quantity, activityType)
	}

	result, err := s.activities.Log(ctx, userID, LogActivityInput{
		Category:      aijson.Str(params["category"]),
		ActivityType:  activityType,
		Quantity:      quantity,
		Unit:          unit,
		Notes:         notes,
		CarbonEmitted: &grams,
		Source:        types.LogSourceVoice,
	})
	if err != nil {
		s.log.Warn("Voice activity log failed", "user_id", userID, "error", err)
		return map[string]any{"result": msgLogFailed}
	}

	return map[string]any{
		"result": map[string]any{
			"success":         true,
			"activityId":      result.Log.ID,
			"carbonEmitted":   result.CarbonEmitted,
			"carbonFormatted": voiceCarbon(result.CarbonEmitted),
			"pointsEarned":    result.PointsEarned,
			"message": fmt.Sprintf("Logged! %v %s = %s CO₂. You earned %d points!",
				quantity, activityType, voiceCarbon(result.CarbonEmitted), result.PointsEarned),
		},
	}
}

func (s *voiceService) handleDailySummary(ctx context.Context, userID uuid.UUID) map[string]any {
	summary, err := s.summaries.Daily(ctx, userID, time.Now())
	if err != nil {
		s.log.Warn("Voice daily summary failed", "user_id", userID, "error", err)
		return map[string]any{"result": msgDailyFailed}
	}

	var message string
	if summary.ActivityCount == 0 {
		message = "You haven't logged anything today yet. Tell me about your day - any car rides, meals, or purchases?"
	} else {
		message = fmt.Sprintf("Today you've logged %d activities totaling %s of CO₂. ",
			summary.ActivityCount, voiceCarbon(summary.TotalEmissions))
		if summary.TopCategory != "" {
			message += fmt.Sprintf("Your biggest category was %s at %s. ",
				summary.TopCategory, voiceCarbon(summary.ByCategory[summary.TopCategory]))
		}
		switch {
		case summary.TotalEmissions < 5000:
			message += "That's really low - great job keeping it green!"
		case summary.TotalEmissions < 10000:
			message += "Not bad at all!"
		default:
			message += "See any areas you could cut back?"
		}
	}

	return map[string]any{
		"result": map[string]any{
			"totalCarbon":          summary.TotalEmissions,
			"totalCarbonFormatted": voiceCarbon(summary.TotalEmissions),
			"activityCount":        summary.ActivityCount,
			"categoryBreakdown":    summary.ByCategory,
			"message":              message,
		},
	}
}

func (s *voiceService) handleWeeklySummary(ctx context.Context, userID uuid.UUID) map[string]any {
	summary, err := s.summaries.Weekly(ctx, userID, time.Now())
	if err != nil {
		s.log.Warn("Voice weekly summary failed", "user_id", userID, "error", err)
		return map[string]any{"result": msgWeeklyFailed}
	}

	message := fmt.Sprintf("This week you've tracked %s of CO₂ across %d days. ",
		voiceCarbon(summary.TotalEmissions), summary.DaysLogged)
	message += fmt.Sprintf("That's an average of %s per day. ", voiceCarbon(summary.AvgDaily))
	if summary.BestDay != "" {
		if day, err := time.Parse("2006-01-02", summary.BestDay); err == nil {
			message += fmt.Sprintf("Your greenest day was %s with only %s!",
				day.Weekday(), voiceCarbon(summary.ByDate[summary.BestDay]))
		}
	}

	return map[string]any{
		"result": map[string]any{
			"totalCarbon":          summary.TotalEmissions,
			"totalCarbonFormatted": voiceCarbon(summary.TotalEmissions),
			"avgDaily":             voiceCarbon(summary.AvgDaily),
			"daysLogged":           summary.DaysLogged,
			"dailyTotals":          summary.ByDate,
			"message":              message,
		},
	}
}

func (s *voiceService) handleLeaderboard(ctx context.Context, userID uuid.UUID) map[string]any {
	standing, err := s.leaderboard.Standing(ctx, userID)
	if err != nil {
		s.log.Warn("Voice leaderboard lookup failed", "user_id", userID, "error", err)
		return map[string]any{"result": msgBoardFailed}
	}

	nearby := ""
	if standing.Position > 1 {
		nearby = fmt.Sprintf("You're only %d points behind #%d!", standing.PointsBehind, standing.Position-1)
	}

	var message string
	switch {
	case standing.Position == 0:
		message = "You're not on the leaderboard yet. Log an activity or scan a receipt to earn your first points!"
	case standing.Position <= 3:
		message = fmt.Sprintf("Amazing! You're #%d on the leaderboard with %d points! You're in the top 3! 🏆",
			standing.Position, standing.Points)
	case standing.Position <= 10:
		message = fmt.Sprintf("You're #%d out of %d students with %d points! Top 10 is within reach! %s",
			standing.Position, standing.TotalUsers, standing.Points, nearby)
	default:
		message = fmt.Sprintf("You're #%d out of %d students with %d points. %s Keep logging to climb up!",
			standing.Position, standing.TotalUsers, standing.Points, nearby)
	}

	return map[string]any{
		"result": map[string]any{
			"position":   standing.Position,
			"points":     standing.Points,
			"totalUsers": standing.TotalUsers,
			"message":    message,
		},
	}
}

func (s *voiceService) handleSetReminder(params map[string]any) map[string]any {
	reminderText := aijson.Str(params["reminderText"])
	timeDescription := aijson.Str(params["timeDescription"])
	if timeDescription == "" {
		timeDescription = "soon"
	}
	// Reminders are acknowledged but not yet scheduled.
	return map[string]any{
		"result": map[string]any{
			"success": true,
			"message": fmt.Sprintf("Got it! I'll remind you to %q %s. Just a heads up - reminders are coming in a future update, but I've noted this down!",
				reminderText, timeDescription),
		},
	}
}

func (s *voiceService) saveTranscript(ctx context.Context, payload VoicePayload) {
	userID, ok := s.userID(payload)
	if !ok {
		return
	}
	transcript := payload.Message.Transcript
	if transcript == "" {
		transcript = payload.Message.Summary
	}
	duration := 0
	if payload.Message.Call != nil {
		duration = payload.Message.Call.Duration
	} else if payload.Call != nil {
		duration = payload.Call.Duration
	}
	conversation := &types.VoiceConversation{
		ID:         uuid.New(),
		UserID:     userID,
		Transcript: transcript,
		Duration:   duration,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := s.conversationRepo.Create(ctx, nil, conversation); err != nil {
		s.log.Warn("Failed to save voice transcript", "user_id", userID, "error", err)
	}
}
