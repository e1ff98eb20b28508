package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rsarkar/bayestutor/ent"
	"github.com/rsarkar/bayestutor/ent/snapshot"
)

// snapshotRepo is the ent-backed SnapshotRepo.
type snapshotRepo struct {
	client *ent.Client
	seq    *sequenceCounter
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	kind := snap.Kind
	if kind == "" {
		kind = SnapshotKindBeliefs
	}

	seq := snap.Sequence
	if seq == 0 {
		var err error
		seq, err = r.seq.Next(ctx)
		if err != nil {
			return fmt.Errorf("allocate sequence: %w", err)
		}
	}

	dataMap, err := encodeSnapshotData(snap.Data)
	if err != nil {
		return fmt.Errorf("marshal snapshot data: %w", err)
	}

	_, err = r.client.Snapshot.Create().
		SetKind(kind).
		SetSequence(seq).
		SetTimestamp(snap.Timestamp).
		SetData(dataMap).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context, kind string) (*Snapshot, error) {
	s, err := r.client.Snapshot.Query().
		Where(snapshot.Kind(kind)).
		Order(ent.Desc(snapshot.FieldTimestamp)).
		First(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	return decodeSnapshot(s)
}

func (r *snapshotRepo) Prune(ctx context.Context, kind string, keep int) error {
	// The keep-th most recent snapshot of this kind marks the cutoff;
	// everything at or before its timestamp goes.
	cutoff, err := r.client.Snapshot.Query().
		Where(snapshot.Kind(kind)).
		Order(ent.Desc(snapshot.FieldTimestamp)).
		Offset(keep).
		Limit(1).
		All(ctx)
	if err != nil {
		return fmt.Errorf("find prune cutoff: %w", err)
	}
	if len(cutoff) == 0 {
		// Nothing beyond the keep window yet.
		return nil
	}

	_, err = r.client.Snapshot.Delete().
		Where(snapshot.Kind(kind), snapshot.TimestampLTE(cutoff[0].Timestamp)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

// encodeSnapshotData renders SnapshotData as the map form ent stores in
// the JSON column.
func encodeSnapshotData(data SnapshotData) (map[string]any, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// decodeSnapshot maps an ent row back onto the repo's Snapshot type.
func decodeSnapshot(s *ent.Snapshot) (*Snapshot, error) {
	b, err := json.Marshal(s.Data)
	if err != nil {
		return nil, fmt.Errorf("marshal ent data: %w", err)
	}
	var data SnapshotData
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot data: %w", err)
	}
	return &Snapshot{
		ID:        s.ID,
		Kind:      s.Kind,
		Sequence:  s.Sequence,
		Timestamp: s.Timestamp,
		Data:      data,
	}, nil
}
