package quiz

import (
	"context"
	"time"

	"github.com/tahfiz/tahfiz/internal/events"
	"github.com/tahfiz/tahfiz/internal/player"
	"github.com/tahfiz/tahfiz/internal/progression"
)

// Summary is the result handed to the caller after finalization. When
// NeedsReview is set the caller is expected to show the error-review flow
// before the plain result screen.
type Summary struct {
	SessionID      string
	Score          int
	TotalQuestions int
	XPEarned       int
	Duration       time.Duration
	IsPerfect      bool
	ErrorLog       []ErrorEntry
	LevelUp        *progression.LevelUp
	FinalLevel     int
	NeedsReview    bool
}

// Finalize closes a fully answered session: updates the player's cumulative
// counters, applies bonuses and session XP, computes level-up, dispatches
// the terminal events in order, and persists.
//
// Persistence failures are logged and do not roll back the in-memory
// reward mutations; the summary is returned regardless.
func (e *Engine) Finalize(ctx context.Context, s *Session) (*Summary, error) {
	if s.Phase != PhaseScored || s.Index < s.TotalQuestions {
		return nil, ErrSessionNotFinished
	}

	rules := e.opts.Calc.Rules()
	duration := e.opts.Now().Sub(s.StartTime)
	p := s.player
	isPerfect := s.Score == s.TotalQuestions

	p.TotalQuizzesCompleted++
	p.TotalPlayTimeSeconds += int(duration.Seconds())
	p.TotalCorrectAnswers += s.Score
	p.TotalQuestionsAnswered += s.TotalQuestions

	if isPerfect {
		s.XPEarned += rules.XPBonusAllCorrect
		if s.Mode.Type == ModeLiveEvent {
			p.Diamonds += s.Mode.BonusDiamonds
		}
		if s.PageNumber > 0 {
			if e.opts.Results != nil {
				if err := e.opts.Results.RecordMastery(ctx, s.PageNumber, int(duration.Seconds())); err != nil {
					e.opts.Logf("quiz: record mastery for page %d: %v", s.PageNumber, err)
				}
			}
			e.opts.Bus.Dispatch(events.Event{Kind: events.KindMasteryCheck})
		}
	}

	oldXP := p.XP
	p.GrantXP(s.XPEarned)

	levelUp := e.opts.Calc.CheckLevelUp(oldXP, p.XP)
	if levelUp != nil {
		p.Diamonds += levelUp.RewardDiamonds
		e.opts.Bus.Dispatch(events.Event{
			Kind: events.KindLevelUp,
			Meta: map[string]any{"new_level": levelUp.NewLevel},
		})
	}

	e.opts.Bus.Dispatch(events.Event{
		Kind: events.KindQuizCompleted,
		Meta: map[string]any{"is_perfect": isPerfect, "page": s.PageNumber},
	})
	if isPerfect {
		e.opts.Bus.Dispatch(events.Event{Kind: events.KindPerfectQuiz})
	}
	if s.XPEarned > 0 {
		e.opts.Bus.Dispatch(events.Event{Kind: events.KindXPEarned, Amount: s.XPEarned})
	}
	if s.Mode.Type == ModeLiveEvent {
		e.opts.Bus.Dispatch(events.Event{
			Kind: events.KindLiveEventCompleted,
			Meta: map[string]any{"event_id": s.Mode.EventID},
		})
	}

	if e.opts.Players != nil {
		if err := e.opts.Players.Save(ctx, p); err != nil {
			e.opts.Logf("quiz: save player %s: %v", p.ID, err)
		}
	}
	if s.PageNumber > 0 && e.opts.Results != nil {
		rec := ResultRecord{
			SessionID:      s.ID,
			PageNumber:     s.PageNumber,
			Score:          s.Score,
			TotalQuestions: s.TotalQuestions,
			XPEarned:       s.XPEarned,
			DurationSecs:   int(duration.Seconds()),
			ErrorLog:       s.ErrorLog,
		}
		if err := e.opts.Results.AppendResult(ctx, rec); err != nil {
			e.opts.Logf("quiz: append result for session %s: %v", s.ID, err)
		}
	}

	s.Phase = PhaseCompleted

	return &Summary{
		SessionID:      s.ID,
		Score:          s.Score,
		TotalQuestions: s.TotalQuestions,
		XPEarned:       s.XPEarned,
		Duration:       duration,
		IsPerfect:      isPerfect,
		ErrorLog:       s.ErrorLog,
		LevelUp:        levelUp,
		FinalLevel:     e.opts.Calc.LevelFor(p.XP),
		NeedsReview:    len(s.ErrorLog) > 0,
	}, nil
}

// Player returns the progression record bound to this session.
func (s *Session) Player() *player.State {
	return s.player
}
