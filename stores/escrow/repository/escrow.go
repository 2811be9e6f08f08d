package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/Mohit8269/Action-House/base/ctx"
	"github.com/Mohit8269/Action-House/base/log"
	"github.com/Mohit8269/Action-House/domain"
	"github.com/Mohit8269/Action-House/domain/escrow"
	"github.com/Mohit8269/Action-House/service/query"
)

const (
	// balanceName keys the single running-total document
	balanceName = "custody"
)

type escrowRepoImpl struct {
	q query.Mongo
}

func NewEscrowRepo(q query.Mongo) escrow.Repo {
	return &escrowRepoImpl{q}
}

func (im *escrowRepoImpl) Credit(ctx ctx.Ctx, entry *escrow.Entry) error {
	if err := im.q.Insert(ctx, domain.TableCustody, entry); err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"auctionId": entry.AuctionId,
		}).Error("failed to q.Insert")
		return err
	}

	selector := bson.M{"name": balanceName}
	updater := bson.M{"$inc": bson.M{"total": entry.Amount}}
	if err := im.q.CustomPatch(ctx, domain.TableCustody, selector, updater, true); err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"amount": entry.Amount,
		}).Error("failed to q.CustomPatch")
		return err
	}

	return nil
}

func (im *escrowRepoImpl) Debit(ctx ctx.Ctx, entry *escrow.Entry) error {
	// the guard on total keeps the running balance from going negative;
	// a missing balance document fails the same way
	selector := bson.M{"name": balanceName, "total": bson.M{"$gte": entry.Amount}}
	updater := bson.M{"$inc": bson.M{"total": -entry.Amount}}
	if err := im.q.CustomPatch(ctx, domain.TableCustody, selector, updater, false); err == query.ErrNotFound {
		return domain.ErrInsufficientCustody
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"amount": entry.Amount,
		}).Error("failed to q.CustomPatch")
		return err
	}

	if err := im.q.Insert(ctx, domain.TableCustody, entry); err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"auctionId": entry.AuctionId,
		}).Error("failed to q.Insert")
		return err
	}

	return nil
}

func (im *escrowRepoImpl) Total(ctx ctx.Ctx) (domain.Amount, error) {
	res := escrow.Balance{}
	if err := im.q.FindOne(ctx, domain.TableCustody, bson.M{"name": balanceName}, &res); err == query.ErrNotFound {
		return 0, nil
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to q.FindOne")
		return 0, err
	}
	return res.Total, nil
}

func (im *escrowRepoImpl) FindEntries(ctx ctx.Ctx, auctionId domain.AuctionId) ([]escrow.Entry, error) {
	res := []escrow.Entry{}
	selector := bson.M{"auctionId": auctionId, "type": bson.M{"$exists": true}}
	if err := im.q.Search(ctx, domain.TableCustody, 0, 0, "time", selector, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"auctionId": auctionId,
		}).Error("failed to q.Search")
		return nil, err
	}
	return res, nil
}
