package usecase

import (
	"github.com/Mohit8269/Action-House/base/ctx"
	hcdomain "github.com/Mohit8269/Action-House/domain/healthcheck"
)

type impl struct {
	repo hcdomain.Repo
}

func New(repo hcdomain.Repo) hcdomain.UseCase {
	return &impl{
		repo: repo,
	}
}

func (im *impl) Check(context ctx.Ctx) error {
	return im.repo.PingDB(context)
}
