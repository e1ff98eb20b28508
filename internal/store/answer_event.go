package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/rsarkar/bayestutor/ent"
	"github.com/rsarkar/bayestutor/ent/answerevent"
	"github.com/rsarkar/bayestutor/ent/predicate"
)

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("allocate sequence: %w", err)
	}

	_, err = r.client.AnswerEvent.Create().
		SetSequence(seq).
		SetSessionID(data.SessionID).
		SetTopicID(data.TopicID).
		SetLevel(data.Level).
		SetCorrect(data.Correct).
		SetAlpha(data.Alpha).
		SetBeta(data.Beta).
		SetExpectedLambda(data.ExpectedLambda).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAnswerEvents(ctx context.Context, opts QueryOpts) ([]AnswerEvent, error) {
	q := r.client.AnswerEvent.Query().
		Where(answerEventPredicates(opts)...).
		Order(ent.Desc(answerevent.FieldSequence))
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	rows, err := q.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}

	events := make([]AnswerEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, AnswerEvent{
			ID:             row.ID,
			Sequence:       row.Sequence,
			Timestamp:      row.Timestamp,
			SessionID:      row.SessionID,
			TopicID:        row.TopicID,
			Level:          row.Level,
			Correct:        row.Correct,
			Alpha:          row.Alpha,
			Beta:           row.Beta,
			ExpectedLambda: row.ExpectedLambda,
		})
	}
	return events, nil
}

func answerEventPredicates(opts QueryOpts) []predicate.AnswerEvent {
	var preds []predicate.AnswerEvent
	if opts.After > 0 {
		preds = append(preds, answerevent.SequenceGT(opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, answerevent.SequenceLT(opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, answerevent.TimestampGTE(opts.From))
	}
	if !opts.To.IsZero() {
		preds = append(preds, answerevent.TimestampLTE(opts.To))
	}
	return preds
}

func (r *eventRepo) AnswerTotalsByTopic(ctx context.Context) ([]TopicTotals, error) {
	rows, err := r.client.AnswerEvent.Query().All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query answer totals: %w", err)
	}

	byTopic := make(map[string]*TopicTotals)
	for _, row := range rows {
		t, ok := byTopic[row.TopicID]
		if !ok {
			t = &TopicTotals{TopicID: row.TopicID}
			byTopic[row.TopicID] = t
		}
		t.Total++
		if row.Correct {
			t.Correct++
		}
	}

	totals := make([]TopicTotals, 0, len(byTopic))
	for _, t := range byTopic {
		totals = append(totals, *t)
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].TopicID < totals[j].TopicID
	})
	return totals, nil
}

func (r *eventRepo) AnswerTotalsByLevel(ctx context.Context) ([]LevelTotals, error) {
	rows, err := r.client.AnswerEvent.Query().All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query answer totals: %w", err)
	}

	byLevel := make(map[int]*LevelTotals)
	for _, row := range rows {
		t, ok := byLevel[row.Level]
		if !ok {
			t = &LevelTotals{Level: row.Level}
			byLevel[row.Level] = t
		}
		t.Total++
		if row.Correct {
			t.Correct++
		}
	}

	totals := make([]LevelTotals, 0, len(byLevel))
	for _, t := range byLevel {
		totals = append(totals, *t)
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Level < totals[j].Level
	})
	return totals, nil
}
