package repository

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	bCtx "github.com/Mohit8269/Action-House/base/ctx"
	"github.com/Mohit8269/Action-House/domain"
	"github.com/Mohit8269/Action-House/domain/statistic"
	"github.com/Mohit8269/Action-House/service/query"
)

type repo struct {
	q query.Mongo
}

func New(q query.Mongo) statistic.Repo {
	return &repo{q}
}

func (r *repo) AggregateByState(ctx bCtx.Ctx) ([]statistic.StateBucket, error) {
	// terminal auctions carry exactly one of claimed or cancelled, so the
	// switch partitions the table
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$switch": bson.M{
				"branches": bson.A{
					bson.M{"case": "$cancelled", "then": statistic.StateCancelled},
					bson.M{"case": "$claimed", "then": statistic.StateSettled},
				},
				"default": statistic.StateOpen,
			}},
			"count":  bson.M{"$sum": 1},
			"volume": bson.M{"$sum": "$currentBid"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	iter, close, err := r.q.Pipe(ctx, domain.TableAuctions, pipeline)
	if err != nil {
		ctx.WithField("err", err).Error("q.Pipe failed")
		return nil, err
	}
	defer close()

	res := []statistic.StateBucket{}
	if err := iter.All(ctx, &res); err != nil {
		ctx.WithField("err", err).Error("iter.All failed")
		return nil, err
	}

	return res, nil
}
