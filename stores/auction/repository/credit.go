package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/Mohit8269/Action-House/base/ctx"
	"github.com/Mohit8269/Action-House/base/log"
	"github.com/Mohit8269/Action-House/domain"
	"github.com/Mohit8269/Action-House/domain/auction"
	"github.com/Mohit8269/Action-House/service/query"
)

type creditRepoImpl struct {
	q query.Mongo
}

func NewCreditRepo(q query.Mongo) auction.CreditRepo {
	return &creditRepoImpl{q}
}

func (im *creditRepoImpl) selector(id auction.CreditId) bson.M {
	return bson.M{
		"auctionId": id.AuctionId,
		"account":   id.Account.ToLower(),
	}
}

func (im *creditRepoImpl) Add(ctx ctx.Ctx, id auction.CreditId, amount domain.Amount) error {
	updater := bson.M{"$inc": bson.M{"balance": amount}}
	if err := im.q.CustomPatch(ctx, domain.TableCredits, im.selector(id), updater, true); err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"auctionId": id.AuctionId,
			"account":   id.Account,
		}).Error("failed to q.CustomPatch")
		return err
	}
	return nil
}

func (im *creditRepoImpl) FindOne(ctx ctx.Ctx, id auction.CreditId) (*auction.Credit, error) {
	res := &auction.Credit{}
	if err := im.q.FindOne(ctx, domain.TableCredits, im.selector(id), res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"auctionId": id.AuctionId,
			"account":   id.Account,
		}).Error("failed to q.FindOne")
		return nil, err
	}
	return res, nil
}

func (im *creditRepoImpl) FindAll(ctx ctx.Ctx, account domain.Account) ([]*auction.Credit, error) {
	res := []*auction.Credit{}
	selector := bson.M{"account": account.ToLower()}
	if err := im.q.Search(ctx, domain.TableCredits, 0, 0, "auctionId", selector, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"account": account,
		}).Error("failed to q.Search")
		return nil, err
	}
	return res, nil
}

func (im *creditRepoImpl) Drain(ctx ctx.Ctx, id auction.CreditId) (domain.Amount, error) {
	selector := im.selector(id)
	selector["balance"] = bson.M{"$gt": 0}
	updater := bson.M{"$set": bson.M{"balance": domain.Amount(0)}}

	// decode the pre-update document so the drained amount is exact even
	// under concurrent withdraw attempts
	prev := &auction.Credit{}
	if err := im.q.FindOneAndPatch(ctx, domain.TableCredits, selector, updater, prev); err == query.ErrNotFound {
		return 0, domain.ErrNoCredit
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"auctionId": id.AuctionId,
			"account":   id.Account,
		}).Error("failed to q.FindOneAndPatch")
		return 0, err
	}

	return prev.Balance, nil
}
