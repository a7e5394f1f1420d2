package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/ecotrack-backend/internal/aijson"
	"github.com/yungbote/ecotrack-backend/internal/apperr"
	"github.com/yungbote/ecotrack-backend/internal/carbon"
	"github.com/yungbote/ecotrack-backend/internal/clients/gemini"
	"github.com/yungbote/ecotrack-backend/internal/logger"
	"github.com/yungbote/ecotrack-backend/internal/repos"
	"github.com/yungbote/ecotrack-backend/internal/types"
)

type TipsService interface {
	// Daily generates personalized reduction tips from today's logged
	// activities. A day with no logs yields ErrInvalidInput so the caller can
	// prompt the user to log something first.
	Daily(ctx context.Context, userID uuid.UUID, now time.Time) ([]string, error)
}

type tipsService struct {
	log          *logger.Logger
	model        gemini.Client
	dailyLogRepo repos.DailyLogRepo
}

func NewTipsService(log *logger.Logger, model gemini.Client, dailyLogRepo repos.DailyLogRepo) TipsService {
	return &tipsService{
		log:          log.With("service", "TipsService"),
		model:        model,
		dailyLogRepo: dailyLogRepo,
	}
}

// TipsPrompt builds the advisor prompt from one day's logs.
func TipsPrompt(logs []*types.DailyLog) string {
	total := 0
	byCategory := map[string]int{}
	for _, log := range logs {
		total += log.CarbonEmitted
		byCategory[log.Category] += log.CarbonEmitted
	}

	var b strings.Builder
	b.WriteString("You are an environmental advisor. A student has logged the following carbon footprint activities today:\n")
	fmt.Fprintf(&b, "Total emissions: %s\n\n", carbon.FormatEmission(total))
	b.WriteString("Breakdown by category:\n")
	for _, log := range logs {
		if grams, ok := byCategory[log.Category]; ok {
			fmt.Fprintf(&b, "- %s: %s\n", log.Category, carbon.FormatEmission(grams))
			delete(byCategory, log.Category)
		}
	}
	b.WriteString("\nActivities:\n")
	for _, log := range logs {
		fmt.Fprintf(&b, "- %s: %s\n", log.ActivityType, carbon.FormatEmission(log.CarbonEmitted))
	}
	b.WriteString(`
Provide 3 specific, actionable, beginner-friendly tips to help reduce their carbon footprint. Keep it positive, encouraging, and practical for a student. Format as JSON:
{
  "tips": [
    "tip 1 text here",
    "tip 2 text here",
    "tip 3 text here"
  ]
}`)
	return b.String()
}

func (s *tipsService) Daily(ctx context.Context, userID uuid.UUID, now time.Time) ([]string, error) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	logs, err := s.dailyLogRepo.ListByUserBetween(ctx, nil, userID, start, start.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, fmt.Errorf("%w: no activities logged today", apperr.ErrInvalidInput)
	}

	raw, err := s.model.GenerateText(ctx, TipsPrompt(logs))
	if err != nil {
		s.log.Error("Tips generation call failed", "error", err)
		return nil, err
	}
	obj, err := aijson.ExtractObject(raw)
	if err != nil {
		s.log.Warn("Tips response unusable", "error", err)
		return nil, err
	}
	values, ok := aijson.Array(obj["tips"])
	if !ok {
		return nil, &aijson.ValidationError{Field: "tips", Reason: "missing or not an array"}
	}
	tips := make([]string, 0, len(values))
	for _, v := range values {
		tip := strings.TrimSpace(aijson.Str(v))
		if tip != "" {
			tips = append(tips, tip)
		}
	}
	if len(tips) == 0 {
		return nil, &aijson.ValidationError{Field: "tips", Reason: "empty"}
	}
	return tips, nil
}
