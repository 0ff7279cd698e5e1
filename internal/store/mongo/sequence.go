package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type counter struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

// nextSequence hands out int64 ids per collection. The bump runs outside any
// caller transaction so that bookings on different rooms do not contend on
// the counter document. Aborted transactions leave gaps.
func (s *Store) nextSequence(ctx context.Context, name string) (int64, error) {
	ctx, cancel := s.withTimeout(detached{ctx}, s.opts.WriteTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var c counter
	err := s.counters.FindOneAndUpdate(ctx, bson.M{"_id": name}, bson.M{"$inc": bson.M{"seq": int64(1)}}, opts).Decode(&c)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate %s id: %w", name, err)
	}
	return c.Seq, nil
}

// detached keeps the deadline and cancellation of a context but hides its
// values, including any mongo session.
type detached struct {
	context.Context
}

func (detached) Value(any) any {
	return nil
}
