package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/Mohit8269/Action-House/base/ctx"
	"github.com/Mohit8269/Action-House/base/log"
	"github.com/Mohit8269/Action-House/domain"
	"github.com/Mohit8269/Action-House/domain/auction"
	"github.com/Mohit8269/Action-House/service/query"
)

type eventRepoImpl struct {
	q query.Mongo
}

func NewEventRepo(q query.Mongo) auction.EventRepo {
	return &eventRepoImpl{q}
}

func (im *eventRepoImpl) Insert(ctx ctx.Ctx, event *auction.Event) error {
	if err := im.q.Insert(ctx, domain.TableAuctionEvents, event); err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"auctionId": event.AuctionId,
			"type":      event.Type,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *eventRepoImpl) makeQuery(opts ...auction.FindEventsOptionsFunc) (bson.M, auction.FindEventsOptions, error) {
	options, err := auction.GetFindEventsOptions(opts...)
	if err != nil {
		return nil, options, err
	}
	query := bson.M{}

	if options.AuctionId != nil {
		query["auctionId"] = *options.AuctionId
	}

	if options.Account != nil {
		query["account"] = *options.Account
	}

	if len(options.Types) > 0 {
		query["type"] = bson.M{"$in": options.Types}
	}

	if options.TimeGTE != nil {
		query["time"] = bson.M{"$gte": *options.TimeGTE}
	}

	return query, options, nil
}

func (im *eventRepoImpl) FindAll(ctx ctx.Ctx, opts ...auction.FindEventsOptionsFunc) ([]auction.Event, error) {
	query, options, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return nil, err
	}

	offset := 0
	limit := defaultLimit
	if options.Offset != nil {
		offset = int(*options.Offset)
	}
	if options.Limit != nil {
		limit = int(*options.Limit)
	}

	res := []auction.Event{}
	if err := im.q.Search(ctx, domain.TableAuctionEvents, offset, limit, "time", query, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}
