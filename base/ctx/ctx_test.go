package ctx

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type testsuite struct {
	suite.Suite
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestWithValue() {
	bg := Background()
	ctx := WithValue(bg, "foo", "bar")
	ts.Equal("bar", ctx.Value("foo"))
}

func (ts *testsuite) TestWithValues() {
	bg := Background()
	ctx := WithValues(bg, map[string]interface{}{
		"a": "b",
		"c": "d",
	})
	ts.Equal("b", ctx.Value("a"))
	ts.Equal("d", ctx.Value("c"))
}

func (ts *testsuite) TestWithRequestId() {
	bg := Background()
	ctx := WithRequestId(bg, "req-1")
	ts.Equal("req-1", ctx.Value(RequestIdKey))
}

func (ts *testsuite) TestWithCancel() {
	bg := Background()
	ctx, cancel := WithCancel(bg)
	defer cancel()
	waits := func(ctx context.Context) bool {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(100 * time.Millisecond):
			return true
		}
	}
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	ts.Equal(false, waits(ctx))
}

func (ts *testsuite) TestTimeout() {
	bg := Background()
	ctx, cancel := WithTimeout(bg, 10*time.Millisecond)
	defer cancel()
	waits := func(ctx context.Context) bool {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(100 * time.Millisecond):
			return true
		}
	}
	ts.Equal(false, waits(ctx))
	ts.Equal("context deadline exceeded", ctx.Err().Error())
}
