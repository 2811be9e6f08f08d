package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/Mohit8269/Action-House/base/ctx"
	"github.com/Mohit8269/Action-House/base/database/mongoclient"
	"github.com/Mohit8269/Action-House/base/log"
	"github.com/Mohit8269/Action-House/domain"
	"github.com/Mohit8269/Action-House/domain/auction"
	"github.com/Mohit8269/Action-House/service/query"
)

const (
	counterAuctions = "auctions"

	defaultSort  = "auctionId"
	defaultLimit = 100
)

type counter struct {
	Name string `bson:"name"`
	Seq  int64  `bson:"seq"`
}

type auctionRepoImpl struct {
	q query.Mongo
}

func NewAuctionRepo(q query.Mongo) auction.Repo {
	return &auctionRepoImpl{q}
}

func (im *auctionRepoImpl) NextId(ctx ctx.Ctx) (domain.AuctionId, error) {
	res := counter{}
	selector := bson.M{"name": counterAuctions}
	if err := im.q.Increment(ctx, domain.TableCounters, selector, &res, "seq", int64(1)); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to q.Increment")
		return 0, err
	}

	// seq holds the count of allocated ids, so ids start at 0
	return domain.AuctionId(res.Seq - 1), nil
}

func (im *auctionRepoImpl) Insert(ctx ctx.Ctx, a *auction.Auction) error {
	if err := im.q.Insert(ctx, domain.TableAuctions, a); err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"auctionId": a.AuctionId,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *auctionRepoImpl) FindOne(ctx ctx.Ctx, id domain.AuctionId) (*auction.Auction, error) {
	res := &auction.Auction{}
	if err := im.q.FindOne(ctx, domain.TableAuctions, bson.M{"auctionId": id}, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"auctionId": id,
		}).Error("failed to q.FindOne")
		return nil, err
	}
	return res, nil
}

func (im *auctionRepoImpl) makeQuery(opts ...auction.FindAllOptionsFunc) (bson.M, auction.FindAllOptions, error) {
	options, err := auction.GetFindAllOptions(opts...)
	if err != nil {
		return nil, options, err
	}
	query := bson.M{}

	if options.Seller != nil {
		query["seller"] = *options.Seller
	}

	if options.CurrentBidder != nil {
		query["currentBidder"] = *options.CurrentBidder
	}

	if options.Active != nil {
		query["active"] = *options.Active
	}

	if options.Claimed != nil {
		query["claimed"] = *options.Claimed
	}

	if options.Cancelled != nil {
		query["cancelled"] = *options.Cancelled
	}

	endTimeQuery := bson.M{}
	if options.EndTimeGT != nil {
		endTimeQuery["$gt"] = *options.EndTimeGT
	}

	if options.EndTimeLT != nil {
		endTimeQuery["$lt"] = *options.EndTimeLT
	}

	if len(endTimeQuery) > 0 {
		query["endTime"] = endTimeQuery
	}

	priceQuery := bson.M{}
	if options.PriceGTE != nil {
		priceQuery["$gte"] = *options.PriceGTE
	}

	if options.PriceLTE != nil {
		priceQuery["$lte"] = *options.PriceLTE
	}

	if len(priceQuery) > 0 {
		query["currentBid"] = priceQuery
	}

	if options.NameContains != nil {
		query["itemName"] = bson.M{"$regex": *options.NameContains, "$options": "i"}
	}

	return query, options, nil
}

func (im *auctionRepoImpl) FindAll(ctx ctx.Ctx, opts ...auction.FindAllOptionsFunc) ([]*auction.Auction, error) {
	query, options, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return nil, err
	}

	offset := 0
	limit := defaultLimit
	sort := defaultSort
	if options.Offset != nil {
		offset = int(*options.Offset)
	}
	if options.Limit != nil {
		limit = int(*options.Limit)
	}
	if options.SortBy != nil {
		sort = *options.SortBy
	}

	res := []*auction.Auction{}
	if err := im.q.Search(ctx, domain.TableAuctions, offset, limit, sort, query, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *auctionRepoImpl) Count(ctx ctx.Ctx, opts ...auction.FindAllOptionsFunc) (int, error) {
	query, _, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return 0, err
	}

	cnt, err := im.q.Count(ctx, domain.TableAuctions, query)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("failed to q.Count")
		return 0, err
	}

	return cnt, nil
}

func (im *auctionRepoImpl) Update(ctx ctx.Ctx, id domain.AuctionId, patchable auction.Patchable) error {
	updater, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"patchable": patchable,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	if len(updater) == 0 {
		return nil
	}

	if err := im.q.Patch(ctx, domain.TableAuctions, bson.M{"auctionId": id}, updater); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"auctionId": id,
		}).Error("failed to q.Patch")
		return err
	}

	return nil
}
