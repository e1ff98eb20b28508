package store

import (
	"context"
	"fmt"
)

func (r *eventRepo) AppendLessonEvent(ctx context.Context, data LessonEventData) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("allocate sequence: %w", err)
	}

	_, err = r.client.LessonEvent.Create().
		SetSequence(seq).
		SetSessionID(data.SessionID).
		SetTopicID(data.TopicID).
		SetTitle(data.Title).
		SetSource(data.Source).
		SetPracticeAttempted(data.PracticeAttempted).
		SetPracticeCorrect(data.PracticeCorrect).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save lesson event: %w", err)
	}
	return nil
}
