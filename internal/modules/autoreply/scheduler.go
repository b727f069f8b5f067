package autoreply

import (
	"context"
	"errors"
	"log"
	"time"

	"reviewloop/internal/domain"
)

const (
	// DefaultInterItemDelay spaces out generation calls. A fixed pause,
	// not a retry/backoff mechanism: the external API has no documented
	// concurrent-request budget.
	DefaultInterItemDelay = time.Second

	DefaultGenerateTimeout = 30 * time.Second
)

type Scheduler struct {
	settings  AISettingsStore
	reviews   ReviewStore
	stores    StoreLookup
	generator ReplyGenerator
	events    EventSink

	interItemDelay  time.Duration
	generateTimeout time.Duration
	now             func() time.Time
}

func NewScheduler(settings AISettingsStore, reviews ReviewStore, stores StoreLookup, generator ReplyGenerator, events EventSink, interItemDelay time.Duration) *Scheduler {
	return &Scheduler{
		settings:        settings,
		reviews:         reviews,
		stores:          stores,
		generator:       generator,
		events:          events,
		interItemDelay:  interItemDelay,
		generateTimeout: DefaultGenerateTimeout,
		now:             time.Now,
	}
}

// SetGenerateTimeout overrides the per-generation timeout.
func (s *Scheduler) SetGenerateTimeout(d time.Duration) {
	if d > 0 {
		s.generateTimeout = d
	}
}

// Run executes one auto-reply batch over the user's unreplied reviews.
// Reviews are processed sequentially; one review's failure is recorded
// in its result entry and never aborts the rest of the batch.
func (s *Scheduler) Run(ctx context.Context, userID int64, storeID *int64, force bool) (*BatchResult, error) {
	if userID <= 0 {
		return nil, ErrInvalidRequest
	}

	cfg, err := s.settings.Get(ctx, userID, storeID)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, ErrSettingsMissing
	}

	now := s.now()

	if !cfg.AutoReplyEnabled && !force {
		return &BatchResult{SkipReason: "auto-reply is disabled", Results: []ReplyResult{}}, nil
	}
	if cfg.AutoReplyBusinessHoursOnly && !force {
		if !WithinBusinessHours(now, cfg.BusinessHoursStart, cfg.BusinessHoursEnd) {
			return &BatchResult{SkipReason: "outside business hours", Results: []ReplyResult{}}, nil
		}
	}

	unreplied, err := s.reviews.ListUnreplied(ctx, userID, storeID)
	if err != nil {
		return nil, err
	}

	eligible := make([]domain.Review, 0, len(unreplied))
	for _, rv := range unreplied {
		if IsEligible(rv, *cfg, now, force) {
			eligible = append(eligible, rv)
		}
	}

	res := &BatchResult{Total: len(eligible), Results: make([]ReplyResult, 0, len(eligible))}
	for i, rv := range eligible {
		if i > 0 {
			if err := s.wait(ctx); err != nil {
				log.Printf("autoreply run aborted user_id=%d reason=%v processed=%d", userID, err, res.Processed)
				break
			}
		}

		reply, err := s.replyOne(ctx, rv, cfg)
		if err != nil {
			log.Printf("autoreply review failed user_id=%d review_id=%d error=%q", userID, rv.ID, err.Error())
			res.Results = append(res.Results, ReplyResult{ReviewID: rv.ID, Error: err.Error()})
			continue
		}
		res.Processed++
		res.Results = append(res.Results, ReplyResult{ReviewID: rv.ID, Success: true, Reply: reply})
	}

	if s.events != nil {
		s.events.AutoReplyCompleted(userID, res.Processed, res.Total)
	}
	return res, nil
}

func (s *Scheduler) replyOne(ctx context.Context, rv domain.Review, cfg *domain.AISettings) (string, error) {
	storeName, err := s.stores.GetDisplayName(ctx, rv.StoreID)
	if err != nil {
		// the prompt falls back to a generic label
		storeName = ""
	}
	prompt := RenderPrompt(SelectPromptTemplate(rv, *cfg), storeName)

	gctx, cancel := context.WithTimeout(ctx, s.generateTimeout)
	defer cancel()
	reply, err := s.generator.Generate(gctx, prompt, rv.Text, rv.Rating)
	if err != nil {
		return "", err
	}

	ok, err := s.reviews.MarkReplied(ctx, rv.ID, reply)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errors.New("review already replied")
	}
	return reply, nil
}

func (s *Scheduler) wait(ctx context.Context) error {
	if s.interItemDelay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.interItemDelay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
