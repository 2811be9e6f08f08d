package query

/*
	Package query provides the interface for querying mongo. It is a thin
	wrap of https://github.com/mongodb/mongo-go-driver; see the driver
	documentation for the semantics of each underlying call.
*/

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/Mohit8269/Action-House/base/ctx"
	"github.com/Mohit8269/Action-House/domain"
)

var (
	// ErrNotFound is mongo document not found error
	ErrNotFound = fmt.Errorf("document not found")

	// ErrDuplicateKey is an error when violating unique index
	ErrDuplicateKey = fmt.Errorf("duplicate key")
)

type patchOp struct {
	patchMany bool
}

// PatchOp is an alias for functional argument
type PatchOp func(*patchOp)

// WithPatchMany patches all entries selected instead of one.
func WithPatchMany(patchMany bool) PatchOp {
	return func(o *patchOp) {
		o.patchMany = patchMany
	}
}

// Mongo abstracts the mongo layer.
type Mongo interface {
	// Insert inserts a new document to the table
	Insert(context ctx.Ctx, table domain.Table, insert interface{}) error

	// FindOne gets data from the table
	FindOne(context ctx.Ctx, table domain.Table, query, result interface{}) error

	// Count returns the count of matched entries in the table
	Count(context ctx.Ctx, table domain.Table, selector interface{}) (n int, err error)

	// Upsert updates an entry if the selector already exists, inserts otherwise
	Upsert(context ctx.Ctx, table domain.Table, selector, update interface{}) error

	// Search sorts by `sort` ("field" ascending, "-field" descending);
	// when sort is "" the result order is unspecified
	Search(context ctx.Ctx, table domain.Table, offset, limit int, sort string, query, results interface{}) error

	// Remove removes one entry; ErrNotFound if the selector matches nothing
	Remove(context ctx.Ctx, table domain.Table, selector interface{}) error

	// RemoveAll removes all entries matching the selector
	RemoveAll(context ctx.Ctx, table domain.Table, selector interface{}) (removedCnt int64, err error)

	// Patch patches an entry; ErrNotFound if the selector matches nothing.
	// To patch all entries selected, set WithPatchMany(true).
	Patch(context ctx.Ctx, table domain.Table, selector, update interface{}, ops ...PatchOp) error

	// CustomPatch patches with a caller-composed mongo update document
	CustomPatch(context ctx.Ctx, table domain.Table, selector, update bson.M, upsert bool) error

	// Increment atomically increases a field, inserting the entry when it
	// does not exist, and decodes the post-increment document into result
	Increment(context ctx.Ctx, table domain.Table, selector, result interface{}, field string, inc interface{}) error

	// FindOneAndPatch atomically patches the entry matched by selector and
	// decodes the pre-patch document into result; ErrNotFound when the
	// selector matches nothing
	FindOneAndPatch(context ctx.Ctx, table domain.Table, selector interface{}, update bson.M, result interface{}) error

	// Pipe runs an aggregation pipeline. Caller needs to call fnClose after
	// all iterations.
	Pipe(context ctx.Ctx, table domain.Table, pipeline interface{}) (p *Iter, fnClose func(), err error)

	// RunWithTransaction runs fn inside one mongo transaction: every write
	// issued through the passed-in ctx commits or aborts as a unit
	RunWithTransaction(context ctx.Ctx, run func(ctx.Ctx) error) error
}
